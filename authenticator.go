package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Auther orchestrates credential verification: account lookup, lockout
// evaluation, password comparison, state persistence, audit emission, and
// token issuance.
type Auther struct {
	store     CredentialStore
	tokens    TokenService
	policy    LockoutPolicy
	passwords PasswordAuthenticator
	audit     AuditSink
	logger    Logger
	timeNow   func() time.Time
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, tokens TokenService) *Auther {
	return &Auther{
		store:     store,
		tokens:    tokens,
		policy:    NewLockoutPolicy(),
		passwords: bcryptAuthenticator{},
		audit:     noopAuditSink{},
		logger:    defLogger{},
		timeNow:   time.Now,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithAuditSink configures an AuditSink for recording security events.
func (s *Auther) WithAuditSink(sink AuditSink) *Auther {
	s.audit = normalizeAuditSink(sink)
	return s
}

// WithLockoutPolicy overrides the default 5-attempt/15-minute policy.
func (s *Auther) WithLockoutPolicy(policy LockoutPolicy) *Auther {
	s.policy = policy
	return s
}

// WithPasswordAuthenticator overrides the bcrypt comparison, mostly for
// tests asserting that locked accounts never reach password verification.
func (s *Auther) WithPasswordAuthenticator(passwords PasswordAuthenticator) *Auther {
	if passwords != nil {
		s.passwords = passwords
	}
	return s
}

// WithTimeSource overrides the clock used for lockout windows.
func (s *Auther) WithTimeSource(now func() time.Time) *Auther {
	if now != nil {
		s.timeNow = now
	}
	return s
}

// Login authenticates a username/password pair and issues a session token.
//
// The checks short-circuit in a fixed order: lookup, enabled flag, lockout
// window, password. The lockout check runs before the password comparison
// so locked accounts never expose a verification timing difference. Every
// attempt that reaches the lockout stage leaves exactly one audit record.
func (s *Auther) Login(ctx context.Context, username, password string, client ClientInfo) (*LoginResult, error) {
	account, err := s.store.FindByUsername(ctx, username)
	if err != nil || account == nil {
		s.logger.Info("Login unknown identity", "username", username)
		return nil, ErrInvalidCredentials
	}

	if !account.Enabled {
		// Matches upstream behavior: disabled attempts consume no counter
		// and leave no audit record.
		s.logger.Info("Login blocked, account disabled", "username", username)
		return nil, ErrAccountDisabled
	}

	now := s.timeNow()
	if decision := s.policy.Evaluate(account, now); decision.Locked {
		s.emitEvent(ctx, username, EventAccountLocked, client, map[string]any{
			"lockedUntil": decision.Until.Format(time.RFC3339),
		})
		return nil, ErrAccountLocked
	}

	if err := s.passwords.ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		return nil, s.handleFailedPassword(ctx, account, now, client)
	}

	s.policy.Reset(account)
	if err := s.store.UpdateLoginState(ctx, account); err != nil {
		// Granting a token while the lockout reset is lost would corrupt
		// the account invariant, so this one is fatal for the request.
		s.logger.Error("Login failed to persist state reset", "username", username, "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist login state")
	}

	s.emitEvent(ctx, username, EventLoginSuccess, client, nil)

	token, err := s.tokens.Issue(account.Username, account.Roles)
	if err != nil {
		s.logger.Error("Login token issuance failed", "username", username, "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue session token")
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL() / time.Second),
		Identity:    account.Summary(),
	}, nil
}

func (s *Auther) handleFailedPassword(ctx context.Context, account *Account, now time.Time, client ClientInfo) error {
	lockTriggered := s.policy.RecordFailure(account, now)

	if err := s.store.UpdateLoginState(ctx, account); err != nil {
		// Best-effort: the caller gets the same unauthorized answer either
		// way, and under-counting only delays the lock.
		s.logger.Error("Login failed to persist attempt counter",
			"username", account.Username, "error", err)
	}

	if lockTriggered {
		s.emitEvent(ctx, account.Username, EventAccountLocked, client, map[string]any{
			"afterFailedAttempts": account.FailedAttempts,
		})
	} else {
		s.emitEvent(ctx, account.Username, EventLoginFailure, client, nil)
	}

	return ErrInvalidCredentials
}

func (s *Auther) emitEvent(ctx context.Context, username string, eventType SecurityEventType, client ClientInfo, metadata map[string]any) {
	sink := normalizeAuditSink(s.audit)
	event := SecurityEvent{
		Username:   username,
		EventType:  eventType,
		IP:         client.IP,
		UserAgent:  client.UserAgent,
		Metadata:   metadata,
		OccurredAt: s.timeNow(),
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("audit sink record error", "event", eventType, "error", err)
	}
}
