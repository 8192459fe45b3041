// Package auth implements the avatargamer authentication service core:
// credential verification, brute-force lockout, signed session tokens, and
// a persisted security audit trail.
//
// Lockout:
//   - Accounts carry failed_attempts and locked_until columns that are only
//     mutated as a pair through LockoutPolicy. Five consecutive failures
//     lock the account for fifteen minutes; a successful login resets both.
//   - The lock check runs before the password is ever compared, so a locked
//     account never leaks a success/failure timing difference.
//
// Audit sinks:
//   - AuditSink is a light-weight emitter consumed by the Authenticator to
//     describe login success, login failure, and account-lock events. Sinks
//     run best-effort (errors are logged) so you can forward events to a
//     database or queue without blocking authentication.
//
// Tokens:
//   - TokenService issues and validates HMAC-SHA256 JWTs carrying subject
//     and role claims. The signing key is decoded once at startup (base64
//     first, raw bytes as fallback) and is immutable afterwards.
package auth
