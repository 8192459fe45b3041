package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	auth "github.com/avatargamer/go-auth"
)

// MockCredentialStore implements auth.CredentialStore for testing
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (*auth.Account, error) {
	args := m.Called(ctx, username)
	if acc := args.Get(0); acc != nil {
		return acc.(*auth.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) UpdateLoginState(ctx context.Context, account *auth.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockAuditSink implements auth.AuditSink and remembers every event
type MockAuditSink struct {
	mock.Mock
	Events []auth.SecurityEvent
}

func (m *MockAuditSink) Record(ctx context.Context, event auth.SecurityEvent) error {
	m.Events = append(m.Events, event)
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPasswordAuthenticator lets tests assert whether password comparison
// was ever reached.
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordAuthenticator) ComparePasswordAndHash(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
