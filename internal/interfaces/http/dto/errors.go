package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Authentication
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	ErrCodeRateLimited:    http.StatusTooManyRequests,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	// Resources
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	"USER_NOT_FOUND":     http.StatusNotFound,
	"COMPANY_NOT_FOUND":  http.StatusNotFound,

	// Input validation
	ErrCodeValidation:       http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_CUSTOMER_CODE": http.StatusBadRequest,
	"UNSUPPORTED_DOCUMENT":  http.StatusUnsupportedMediaType,
	"FILE_TOO_LARGE":        http.StatusRequestEntityTooLarge,

	// Business rules
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"EMPTY_ORDER":        http.StatusUnprocessableEntity,
	"NO_ITEMS_EXTRACTED": http.StatusUnprocessableEntity,
	"COMPANY_INACTIVE":   http.StatusForbidden,

	// Upstream systems
	"UPSTREAM_ERROR":          http.StatusBadGateway,
	"EXTRACTION_FAILED":       http.StatusBadGateway,
	"ENDPOINT_NOT_CONFIGURED": http.StatusUnprocessableEntity,
	"UPLOAD_FAILED":           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when
// the code is unknown.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
