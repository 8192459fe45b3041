package auth

import "time"

const (
	// DefaultMaxAttempts is the consecutive-failure count that arms a lock.
	DefaultMaxAttempts = 5
	// DefaultLockDuration is how long an armed lock refuses authentication.
	DefaultLockDuration = 15 * time.Minute
)

// LockDecision is the result of evaluating an account's lock state.
type LockDecision struct {
	Locked bool
	Until  time.Time
}

// LockoutPolicy decides whether authentication may proceed and how failed
// attempts mutate the account's (failed_attempts, locked_until) pair.
//
// Evaluate must run before any password comparison: a locked account never
// gets its password verified, so there is no timing oracle on a correct
// password against a locked account.
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration
}

// NewLockoutPolicy returns the production policy: 5 attempts, 15 minutes.
func NewLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{
		MaxAttempts:  DefaultMaxAttempts,
		LockDuration: DefaultLockDuration,
	}
}

// Evaluate reports whether the account is currently refusing logins.
func (p LockoutPolicy) Evaluate(account *Account, now time.Time) LockDecision {
	if account.IsLocked(now) {
		return LockDecision{Locked: true, Until: *account.LockedUntil}
	}
	return LockDecision{}
}

// RecordFailure bumps the failure counter and arms the lock once the
// counter reaches MaxAttempts. It reports true only on the attempt that
// triggered the lock; that attempt is audited as ACCOUNT_LOCKED instead of
// LOGIN_FAILURE.
func (p LockoutPolicy) RecordFailure(account *Account, now time.Time) bool {
	account.FailedAttempts++
	if account.FailedAttempts >= p.MaxAttempts {
		until := now.Add(p.LockDuration)
		account.LockedUntil = &until
		return true
	}
	return false
}

// Reset clears the failure counter and any lock, regardless of prior state.
func (p LockoutPolicy) Reset(account *Account) {
	account.FailedAttempts = 0
	account.LockedUntil = nil
}
