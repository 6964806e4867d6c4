package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/auth"
	"github.com/orderdesk/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(repo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-bytes!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "orderdesk-test",
	})
	cfg := AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: 15 * time.Minute}
	return NewAuthService(repo, jwtService, cfg, zap.NewNop())
}

func newActiveUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "operator1", password, "MS-ACME")
	require.NoError(t, err)
	return user
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestLogin(t *testing.T) {
	t.Run("successful login returns tokens and user info", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")

		repo.On("FindByUsername", mock.Anything, "operator1").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		result, err := svc.Login(context.Background(), LoginInput{
			Username: "operator1",
			Password: "s3cret-pass!",
			IP:       "203.0.113.10",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, user.CompanyID, result.User.CompanyID)
		assert.Equal(t, "MS-ACME", result.User.MSCode)
		assert.Equal(t, "operator1", result.User.DisplayName, "display name falls back to username")
		assert.Equal(t, "203.0.113.10", user.LastLoginIP)
		repo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever-pass"})

		assertDomainCode(t, err, "INVALID_CREDENTIALS")
		repo.AssertExpectations(t)
	})

	t.Run("wrong password records a failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")

		repo.On("FindByUsername", mock.Anything, "operator1").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		_, err := svc.Login(context.Background(), LoginInput{Username: "operator1", Password: "wrong-pass!!"})

		assertDomainCode(t, err, "INVALID_CREDENTIALS")
		assert.Equal(t, 1, user.FailedAttempts)
		repo.AssertExpectations(t)
	})

	t.Run("account locks after max failed attempts", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")
		user.FailedAttempts = 2

		repo.On("FindByUsername", mock.Anything, "operator1").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		_, err := svc.Login(context.Background(), LoginInput{Username: "operator1", Password: "wrong-pass!!"})

		assertDomainCode(t, err, "ACCOUNT_LOCKED")
		assert.True(t, user.IsLocked())
		repo.AssertExpectations(t)
	})

	t.Run("locked account is rejected before password check", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")
		user.Lock(15 * time.Minute)

		repo.On("FindByUsername", mock.Anything, "operator1").Return(user, nil)

		_, err := svc.Login(context.Background(), LoginInput{Username: "operator1", Password: "s3cret-pass!"})

		assertDomainCode(t, err, "ACCOUNT_LOCKED")
		repo.AssertExpectations(t)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")
		user.Status = identity.UserStatusDeactivated

		repo.On("FindByUsername", mock.Anything, "operator1").Return(user, nil)

		_, err := svc.Login(context.Background(), LoginInput{Username: "operator1", Password: "s3cret-pass!"})

		assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
		repo.AssertExpectations(t)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("valid refresh token produces a new pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")

		pair, err := svc.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Username: user.Username,
		})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		result, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		repo.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})

		assertDomainCode(t, err, "TOKEN_INVALID")
	})

	t.Run("access token cannot be used as refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		pair, err := svc.jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.AccessToken})

		assertDomainCode(t, err, "TOKEN_INVALID")
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		userID := uuid.New()

		pair, err := svc.jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})

		assertDomainCode(t, err, "USER_NOT_FOUND")
		repo.AssertExpectations(t)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")
		user.Status = identity.UserStatusDeactivated

		pair, err := svc.jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})

		assertDomainCode(t, err, "ACCOUNT_INACTIVE")
		repo.AssertExpectations(t)
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("returns user info", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newActiveUser(t, "s3cret-pass!")
		user.DisplayName = "Operator One"

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		info, err := svc.CurrentUser(context.Background(), user.ID)

		require.NoError(t, err)
		assert.Equal(t, "Operator One", info.DisplayName)
		assert.Equal(t, user.CompanyID, info.CompanyID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		userID := uuid.New()

		repo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := svc.CurrentUser(context.Background(), userID)

		assertDomainCode(t, err, "USER_NOT_FOUND")
		repo.AssertExpectations(t)
	})
}
