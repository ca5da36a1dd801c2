package testutil

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/mcoot/aqua-access/internal/stubserver"
)

// StartStubBackend runs a stub account server on a test HTTP server that
// is closed with the test
func StartStubBackend(t testing.TB, logger *slog.Logger) (*stubserver.Stub, *httptest.Server) {
	t.Helper()
	stub := stubserver.NewStub()
	server := httptest.NewServer(stub.Router(logger))
	t.Cleanup(server.Close)
	return stub, server
}
