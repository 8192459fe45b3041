package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the credential record behind a username.
//
// FailedAttempts and LockedUntil move only as a pair, driven by
// LockoutPolicy: incremented/armed on failure, fully reset on success.
type Account struct {
	bun.BaseModel  `bun:"table:accounts,alias:acc"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	Enabled        bool       `bun:"enabled,notnull" json:"enabled,omitempty"`
	FailedAttempts int        `bun:"failed_attempts,notnull" json:"failed_attempts,omitempty"`
	LockedUntil    *time.Time `bun:"locked_until,nullzero" json:"locked_until,omitempty"`
	Roles          []string   `bun:"roles,type:jsonb" json:"roles,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// IsLocked reports whether the account lockout window is still active.
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}

// IdentitySummary is the client-facing projection of an Account.
type IdentitySummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

// Summary builds the identity payload embedded in login and /auth/me
// responses. Roles is never nil so clients always see an array.
func (a *Account) Summary() *IdentitySummary {
	roles := a.Roles
	if roles == nil {
		roles = []string{}
	}
	return &IdentitySummary{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Roles:    roles,
	}
}

// SecurityLog is one append-only audit record. Rows are written once per
// authentication attempt outcome and never updated.
type SecurityLog struct {
	bun.BaseModel `bun:"table:security_log,alias:slog"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string            `bun:"username,notnull" json:"username,omitempty"`
	EventType     SecurityEventType `bun:"event_type,notnull" json:"event_type,omitempty"`
	IP            string            `bun:"ip" json:"ip,omitempty"`
	UserAgent     string            `bun:"user_agent" json:"user_agent,omitempty"`
	CreatedAt     time.Time         `bun:"created_at,notnull" json:"created_at,omitempty"`
	Metadata      map[string]any    `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
}
