package auth

import (
	"context"
	"time"
)

// SecurityEventType enumerates the audited authentication outcomes.
type SecurityEventType string

const (
	EventLoginSuccess  SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure  SecurityEventType = "LOGIN_FAILURE"
	EventAccountLocked SecurityEventType = "ACCOUNT_LOCKED"
)

// SecurityEvent captures audit information about one authentication attempt.
// Username is the attempted identity, recorded even when authentication
// fails.
type SecurityEvent struct {
	Username   string
	EventType  SecurityEventType
	IP         string
	UserAgent  string
	Metadata   map[string]any
	OccurredAt time.Time
}

// AuditSink consumes security events for forensic review.
type AuditSink interface {
	Record(ctx context.Context, event SecurityEvent) error
}

// AuditSinkFunc adapts a function to the AuditSink interface.
type AuditSinkFunc func(ctx context.Context, event SecurityEvent) error

// Record implements AuditSink.
func (f AuditSinkFunc) Record(ctx context.Context, event SecurityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopAuditSink struct{}

func (noopAuditSink) Record(context.Context, SecurityEvent) error {
	return nil
}

func normalizeAuditSink(s AuditSink) AuditSink {
	if s == nil {
		return noopAuditSink{}
	}
	return s
}
