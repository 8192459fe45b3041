package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenTTL matches the original deployment default of 30 minutes.
const DefaultTokenTTL = 1800 * time.Second

// DefaultIssuer is the issuer claim stamped on and required of every token.
const DefaultIssuer = "avatargamer"

// DecodeSigningKey turns configured key material into raw bytes. Base64 is
// attempted first; configuration strings that do not decode are used as raw
// bytes, so both encodings work deterministically.
func DecodeSigningKey(secret string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	logger     Logger
	timeNow    func() time.Time
}

// NewTokenService creates a new TokenService instance. The signing key is
// read once and never logged.
func NewTokenService(signingKey []byte, ttl time.Duration, issuer string, logger Logger) *TokenServiceImpl {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     issuer,
		logger:     logger,
		timeNow:    time.Now,
	}
}

// WithTimeSource overrides the clock, mostly for expiry boundary tests.
func (ts *TokenServiceImpl) WithTimeSource(now func() time.Time) *TokenServiceImpl {
	if now != nil {
		ts.timeNow = now
	}
	return ts
}

// TTL returns the configured token lifetime.
func (ts *TokenServiceImpl) TTL() time.Duration {
	return ts.ttl
}

// Issue creates a signed token with subject and role claims. The roles
// claim is always present, defaulting to an empty list.
func (ts *TokenServiceImpl) Issue(subject string, roles []string) (string, error) {
	now := ts.timeNow()
	if roles == nil {
		roles = []string{}
	}

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		RoleNames: roles,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary session claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *SessionClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// Signature mismatch, expiry, issuer mismatch, and non-token input all fail
// with an auth-category error; nothing here panics on malformed input.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithIssuer(ts.issuer), jwt.WithTimeFunc(ts.timeNow))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeUnauthorized)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
