package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/model"
)

// MockBackend is a scripted Backend. Unset functions answer as if the
// server were down.
type MockBackend struct {
	LoginFunc       func(ctx context.Context, credentials model.StrongCredentials) (backend.LoginResult, error)
	RegisterFunc    func(ctx context.Context, registration backend.Registration) (backend.RegisterResult, error)
	ExistsNamedFunc func(ctx context.Context, username model.Username) (bool, error)

	mu            sync.Mutex
	logins        []model.StrongCredentials
	registrations []backend.Registration
	existsChecks  []model.Username
}

// Ensure MockBackend implements Backend
var _ backend.Backend = (*MockBackend)(nil)

// NewMockBackend creates a backend with nothing scripted
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// ErrMockBackendDown is returned by unscripted calls
var ErrMockBackendDown = fmt.Errorf("%w: mock backend is down", backend.ErrUnavailable)

func (b *MockBackend) Login(ctx context.Context, credentials model.StrongCredentials) (backend.LoginResult, error) {
	b.mu.Lock()
	b.logins = append(b.logins, credentials)
	fn := b.LoginFunc
	b.mu.Unlock()

	if fn == nil {
		return backend.LoginResult{}, ErrMockBackendDown
	}
	return fn(ctx, credentials)
}

func (b *MockBackend) Register(ctx context.Context, registration backend.Registration) (backend.RegisterResult, error) {
	b.mu.Lock()
	b.registrations = append(b.registrations, registration)
	fn := b.RegisterFunc
	b.mu.Unlock()

	if fn == nil {
		return backend.RegisterResult{}, ErrMockBackendDown
	}
	return fn(ctx, registration)
}

func (b *MockBackend) ExistsNamed(ctx context.Context, username model.Username) (bool, error) {
	b.mu.Lock()
	b.existsChecks = append(b.existsChecks, username)
	fn := b.ExistsNamedFunc
	b.mu.Unlock()

	if fn == nil {
		return false, ErrMockBackendDown
	}
	return fn(ctx, username)
}

// LoginAnswers makes every login answer with result
func (b *MockBackend) LoginAnswers(result backend.LoginResult) {
	b.LoginFunc = func(context.Context, model.StrongCredentials) (backend.LoginResult, error) {
		return result, nil
	}
}

// RegisterAnswers makes every registration answer with result
func (b *MockBackend) RegisterAnswers(result backend.RegisterResult) {
	b.RegisterFunc = func(context.Context, backend.Registration) (backend.RegisterResult, error) {
		return result, nil
	}
}

// ExistsAnswers makes every existence check answer with exists
func (b *MockBackend) ExistsAnswers(exists bool) {
	b.ExistsNamedFunc = func(context.Context, model.Username) (bool, error) {
		return exists, nil
	}
}

// Logins lists the credentials of every login call
func (b *MockBackend) Logins() []model.StrongCredentials {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.StrongCredentials(nil), b.logins...)
}

// Registrations lists every registration call
func (b *MockBackend) Registrations() []backend.Registration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backend.Registration(nil), b.registrations...)
}

// ExistsChecks lists the usernames of every existence check
func (b *MockBackend) ExistsChecks() []model.Username {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Username(nil), b.existsChecks...)
}

// MockBackendLogger records logged backend failures
type MockBackendLogger struct {
	mu     sync.Mutex
	errors []error
}

// Ensure MockBackendLogger implements Logger
var _ backend.Logger = (*MockBackendLogger)(nil)

// NewMockBackendLogger creates a logger with nothing recorded
func NewMockBackendLogger() *MockBackendLogger {
	return &MockBackendLogger{}
}

func (l *MockBackendLogger) LogBackendIsNotWorking(_ context.Context, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

// Errors lists the logged errors in order
func (l *MockBackendLogger) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.errors...)
}
