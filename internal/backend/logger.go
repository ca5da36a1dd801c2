package backend

import (
	"context"
	"log/slog"
)

// Logger records backend failures the user only sees as "try again later"
type Logger interface {
	LogBackendIsNotWorking(ctx context.Context, err error)
}

// SlogLogger writes backend failures to a slog.Logger
type SlogLogger struct {
	logger *slog.Logger
}

// Ensure SlogLogger implements Logger
var _ Logger = (*SlogLogger)(nil)

// NewSlogLogger creates a Logger on top of logger
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) LogBackendIsNotWorking(ctx context.Context, err error) {
	l.logger.ErrorContext(ctx, "backend is not working", slog.Any("error", err))
}
