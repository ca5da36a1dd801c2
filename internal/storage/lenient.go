package storage

import (
	"context"
	"log/slog"

	"github.com/mcoot/aqua-access/internal/model"
)

// Lenient is the view of Caches the use cases work with. The caches only
// save round trips, so a failed lookup counts as a miss and a failed write
// is logged and forgotten.
type Lenient struct {
	caches Caches
	logger *slog.Logger
}

// NewLenient wraps caches, logging failures to logger
func NewLenient(caches Caches, logger *slog.Logger) Lenient {
	return Lenient{caches: caches, logger: logger}
}

// IsRegistered reports whether the username is known to be taken
func (l Lenient) IsRegistered(ctx context.Context, username model.Username) bool {
	return l.contains(ctx, "registered", l.caches.RegisteredUsernames, username)
}

// IsUnregistered reports whether the username is known to be free
func (l Lenient) IsUnregistered(ctx context.Context, username model.Username) bool {
	return l.contains(ctx, "unregistered", l.caches.UnregisteredUsernames, username)
}

// IsRejected reports whether the exact pair was refused before
func (l Lenient) IsRejected(ctx context.Context, credentials model.Credentials) bool {
	found, err := l.caches.InvalidCredentials.Contains(ctx, credentials)
	if err != nil {
		l.logger.WarnContext(ctx, "invalid credentials lookup failed", slog.Any("error", err))
		return false
	}
	return found
}

// MarkRegistered records a taken username and drops it from the free ones
func (l Lenient) MarkRegistered(ctx context.Context, username model.Username) {
	if err := l.caches.RegisteredUsernames.Add(ctx, username); err != nil {
		l.logWrite(ctx, "add registered username", username, err)
	}
	l.ForgetUnregistered(ctx, username)
}

// MarkUnregistered records a free username
func (l Lenient) MarkUnregistered(ctx context.Context, username model.Username) {
	if err := l.caches.UnregisteredUsernames.Add(ctx, username); err != nil {
		l.logWrite(ctx, "add unregistered username", username, err)
	}
}

// ForgetUnregistered drops a username from the free ones
func (l Lenient) ForgetUnregistered(ctx context.Context, username model.Username) {
	if err := l.caches.UnregisteredUsernames.Remove(ctx, username); err != nil {
		l.logWrite(ctx, "remove unregistered username", username, err)
	}
}

// MarkRejected records credentials the backend refused
func (l Lenient) MarkRejected(ctx context.Context, credentials model.Credentials) {
	if err := l.caches.InvalidCredentials.Add(ctx, credentials); err != nil {
		l.logger.WarnContext(ctx, "failed to add rejected credentials",
			slog.String("username", credentials.Username.Text),
			slog.Any("error", err),
		)
	}
}

func (l Lenient) contains(ctx context.Context, set string, names Usernames, username model.Username) bool {
	found, err := names.Contains(ctx, username)
	if err != nil {
		l.logger.WarnContext(ctx, "username lookup failed",
			slog.String("set", set),
			slog.String("username", username.Text()),
			slog.Any("error", err),
		)
		return false
	}
	return found
}

func (l Lenient) logWrite(ctx context.Context, op string, username model.Username, err error) {
	l.logger.WarnContext(ctx, "failed to "+op,
		slog.String("username", username.Text()),
		slog.Any("error", err),
	)
}
