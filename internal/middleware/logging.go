package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestIDHeader is the header clients use to tag a request
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLog logs every user API call with the id the client tagged it
// with. Calls without an id are logged as warnings since the Aqua client
// always sends one.
func RequestLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			attrs := []any{
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.Int("status", recorder.status),
				slog.Duration("took", time.Since(start)),
			}

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				logger.Warn("user api call without request id", attrs...)
				return
			}
			logger.Info("user api call", append(attrs, slog.String("request_id", requestID))...)
		})
	}
}
