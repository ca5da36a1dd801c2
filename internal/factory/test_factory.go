package factory

import (
	"time"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/dependencies/mocks"
	"github.com/mcoot/aqua-access/internal/services/registration"
	"github.com/mcoot/aqua-access/internal/storage/memory"
	"github.com/mcoot/aqua-access/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Pass nil to script the backend through a MockBackend.
func NewTestApp(b backend.Backend) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	if b == nil {
		b = mocks.NewMockBackend()
	}

	app := newWithDependencies(memory.NewCaches(), b, mockClock, mockRandom, registration.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// NewTestAppWithServer wires the real HTTP client to the server at baseURL
func NewTestAppWithServer(baseURL string) *TestApp {
	mockRandom := mocks.NewMockRandom()
	app := NewTestApp(backend.NewHTTPClient(baseURL, mockRandom, testutil.NopLogger()))
	app.MockRandom = mockRandom
	app.Random = mockRandom
	return app
}

// MockBackend returns the scripted backend, or nil when a real one is wired
func (t *TestApp) MockBackend() *mocks.MockBackend {
	b, _ := t.Backend.(*mocks.MockBackend)
	return b
}
