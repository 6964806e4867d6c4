package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the login credentials.
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// UserInfo is the user detail returned with tokens and by CurrentUser.
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	MSCode      string    `json:"ms_code"`
}

// LoginResult contains the issued tokens and user info.
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput carries the refresh token to exchange.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the new token pair.
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}
