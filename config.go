package auth

import (
	"os"
	"strconv"
)

// AuthConfig is the concrete Config loaded once at process startup. The
// signing key never appears in logs or responses.
type AuthConfig struct {
	SigningKey string
	TokenTTL   int
	Issuer     string
	ContextKey string
	AuthScheme string
}

// Verify interface compliance
var _ Config = (*AuthConfig)(nil)

// NewConfigFromEnv reads the process environment:
//
//	AUTH_SIGNING_KEY  base64 or raw key material (required in production)
//	AUTH_TOKEN_TTL    token lifetime in seconds, default 1800
//	AUTH_ISSUER       issuer claim, default "avatargamer"
func NewConfigFromEnv() *AuthConfig {
	cfg := &AuthConfig{
		SigningKey: os.Getenv("AUTH_SIGNING_KEY"),
		TokenTTL:   int(DefaultTokenTTL.Seconds()),
		Issuer:     DefaultIssuer,
		ContextKey: "claims",
		AuthScheme: "Bearer",
	}

	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if ttl, err := strconv.Atoi(raw); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	if issuer := os.Getenv("AUTH_ISSUER"); issuer != "" {
		cfg.Issuer = issuer
	}

	return cfg
}

func (c *AuthConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AuthConfig) GetTokenTTL() int {
	return c.TokenTTL
}

func (c *AuthConfig) GetIssuer() string {
	return c.Issuer
}

func (c *AuthConfig) GetContextKey() string {
	return c.ContextKey
}

func (c *AuthConfig) GetAuthScheme() string {
	return c.AuthScheme
}
