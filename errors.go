package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords
// so responses never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrAccountDisabled is returned for disabled accounts before any attempt
// counter is touched.
var ErrAccountDisabled = errors.New("account disabled", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("ACCOUNT_DISABLED")

// ErrAccountLocked is returned while an account lockout window is active.
var ErrAccountLocked = errors.New("account temporarily locked", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("ACCOUNT_LOCKED")

// ErrTokenExpired is the validation error for tokens past their expiry.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers signature mismatches, issuer mismatches, and
// inputs that are not tokens at all.
var ErrTokenMalformed = errors.New("invalid token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsUnauthorizedError reports whether err should surface as HTTP 401.
func IsUnauthorizedError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
