package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore is the persistence contract the Authenticator consumes.
// Implementations must apply UpdateLoginState as a single-row atomic write
// so concurrent attempts against one account cannot lose counter updates.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	UpdateLoginState(ctx context.Context, account *Account) error
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password string, client ClientInfo) (*LoginResult, error)
}

// TokenService issues and validates signed session tokens.
type TokenService interface {
	Issue(subject string, roles []string) (string, error)
	Validate(tokenString string) (AuthClaims, error)
	TTL() time.Duration
}

// TokenValidator validates tokens and extracts claims without tying callers
// to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenTTL() int
	GetIssuer() string
	GetContextKey() string
	GetAuthScheme() string
}

// LoginResult is the payload returned on successful authentication.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	// RefreshToken stays nil until refresh rotation ships.
	RefreshToken *string          `json:"refreshToken"`
	ExpiresIn    int64            `json:"expiresIn"`
	Identity     *IdentitySummary `json:"identitySummary"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
