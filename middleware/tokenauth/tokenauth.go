// Package tokenauth is the bearer-token middleware: it extracts the
// Authorization header, validates the token, and attaches the resulting
// claims to the request. Requests without a usable token pass through
// unauthenticated; rejecting them is a downstream authorization concern.
package tokenauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrTokenMissingOrMalformed = errors.New("missing or malformed bearer token")

// AuthClaims mirrors the claims surface of the auth package without
// importing it, avoiding an import cycle.
type AuthClaims interface {
	Subject() string
	Roles() []string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// TokenValidator mirrors auth.TokenService.Validate.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// ValidatorFunc adapts a function into a TokenValidator.
type ValidatorFunc func(tokenString string) (AuthClaims, error)

// Validate satisfies the TokenValidator interface.
func (f ValidatorFunc) Validate(tokenString string) (AuthClaims, error) {
	if f == nil {
		return nil, ErrTokenMissingOrMalformed
	}
	return f(tokenString)
}

type Config struct {
	// Filter skips the middleware entirely when it returns true, e.g. for
	// the public /auth/login route.
	Filter func(*fiber.Ctx) bool
	// Validator is required for token validation
	Validator TokenValidator
	// ContextKey is the fiber locals key claims are stored under.
	ContextKey string
	// AuthScheme is the expected Authorization scheme prefix.
	AuthScheme string
	// ContextEnricher propagates claims into the standard Go context. If
	// provided, it is called after successful token validation.
	ContextEnricher func(ctx context.Context, claims AuthClaims) context.Context
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: token middleware configuration: Validator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "claims"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// New returns the middleware handler. Validation failures, malformed
// headers, and even panics inside the validator all degrade to an
// unauthenticated pass-through; this layer never fails a request.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		if claims, ok := resolveClaims(c, cfg); ok {
			c.Locals(cfg.ContextKey, claims)
			if cfg.ContextEnricher != nil {
				c.SetUserContext(cfg.ContextEnricher(c.UserContext(), claims))
			}
		}

		return c.Next()
	}
}

// resolveClaims validates the bearer token, swallowing every fault.
func resolveClaims(c *fiber.Ctx, cfg Config) (claims AuthClaims, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			claims, ok = nil, false
		}
	}()

	raw, err := TokenFromHeader(c, cfg.AuthScheme)
	if err != nil {
		return nil, false
	}

	claims, err = cfg.Validator.Validate(raw)
	if err != nil || claims == nil {
		return nil, false
	}

	return claims, true
}

// TokenFromHeader extracts the raw token from the Authorization header.
func TokenFromHeader(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrTokenMissingOrMalformed
	}

	prefix := authScheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrTokenMissingOrMalformed
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrTokenMissingOrMalformed
	}

	return token, nil
}

// FromContext returns the claims attached by New, if any.
func FromContext(c *fiber.Ctx, contextKey string) (AuthClaims, bool) {
	if contextKey == "" {
		contextKey = "claims"
	}
	raw := c.Locals(contextKey)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// RequireAuthenticated guards protected routes: requests that reached this
// point without validated claims get a 401 in the service's error shape.
func RequireAuthenticated(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := FromContext(c, contextKey); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"status":    fiber.StatusUnauthorized,
				"error":     "Unauthorized",
				"message":   "authentication required",
			})
		}
		return c.Next()
	}
}
