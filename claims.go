package auth

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents validated session-token claims.
type AuthClaims interface {
	Subject() string
	Roles() []string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// RoleList is the roles claim. Decoding tolerates two encodings seen in the
// wild: a native JSON array of strings, or a JSON string that itself
// contains such an array. Anything else decodes to an empty list rather
// than failing token verification.
type RoleList []string

// UnmarshalJSON implements the tolerant decoding rules above.
func (r *RoleList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*r = direct
		return nil
	}

	var nested string
	if err := json.Unmarshal(data, &nested); err == nil {
		var inner []string
		if err := json.Unmarshal([]byte(nested), &inner); err == nil {
			*r = inner
			return nil
		}
	}

	*r = RoleList{}
	return nil
}

// SessionClaims is the concrete implementation of AuthClaims carried inside
// issued tokens.
type SessionClaims struct {
	jwt.RegisteredClaims
	RoleNames RoleList `json:"roles"`
}

// Verify interface compliance
var _ AuthClaims = (*SessionClaims)(nil)

// Subject returns the subject claim (the username).
func (c *SessionClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Roles returns the role claim, never nil.
func (c *SessionClaims) Roles() []string {
	if c.RoleNames == nil {
		return []string{}
	}
	return c.RoleNames
}

// HasRole checks if the subject carries a specific role.
func (c *SessionClaims) HasRole(role string) bool {
	for _, r := range c.RoleNames {
		if r == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
