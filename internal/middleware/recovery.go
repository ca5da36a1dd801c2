package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrBackendDown is the panic value of a simulated outage
var ErrBackendDown = errors.New("backend is down")

type errorDetail struct {
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

var notWorkingBody = map[string][]errorDetail{
	"detail": {{Msg: "need to try after some time", Type: "BackendIsNotWorkingError"}},
}

// Recovery turns a panicking handler into the 500 BackendIsNotWorkingError
// answer the real server gives when its storage is unreachable
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				attrs := []any{
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", r.Header.Get(RequestIDHeader)),
				}
				if err, ok := recovered.(error); ok && errors.Is(err, ErrBackendDown) {
					logger.Warn("answering as unavailable", attrs...)
				} else {
					logger.Error("handler panicked", append(attrs, slog.Any("panic", recovered))...)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(notWorkingBody)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
