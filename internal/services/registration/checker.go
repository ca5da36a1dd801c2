package registration

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
	"github.com/mcoot/aqua-access/internal/timeout"
	"github.com/mcoot/aqua-access/internal/views"
)

// State is where the availability check of the username field stands
type State int

const (
	Idle State = iota
	PendingCheck
	SettledInvalid
	SettledTaken
	SettledAvailable
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingCheck:
		return "pending_check"
	case SettledInvalid:
		return "settled_invalid"
	case SettledTaken:
		return "settled_taken"
	case SettledAvailable:
		return "settled_available"
	default:
		return "unknown"
	}
}

// UsernameChecker validates the username field as it is edited and asks
// the backend whether the name is free once editing pauses
type UsernameChecker struct {
	caches    storage.Lenient
	backend   backend.Backend
	failures  backend.Logger
	scheduler timeout.Scheduler
	delay     time.Duration
	logger    *slog.Logger

	mu sync.Mutex
	// generation increases with every edit; a backend answer for an older
	// generation is dropped
	generation uint64
	state      State
}

// NewUsernameChecker creates a checker that waits delay after the last
// edit before asking the backend
func NewUsernameChecker(
	caches storage.Lenient,
	b backend.Backend,
	failures backend.Logger,
	scheduler timeout.Scheduler,
	delay time.Duration,
	logger *slog.Logger,
) *UsernameChecker {
	return &UsernameChecker{
		caches:    caches,
		backend:   b,
		failures:  failures,
		scheduler: scheduler,
		delay:     delay,
		logger:    logger,
	}
}

// State returns the current state
func (c *UsernameChecker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Prepare handles an edit of the username field
func (c *UsernameChecker) Prepare(ctx context.Context, form views.RegistrationForm, text string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	parsed := model.UsernameWith(text)
	username, ok := parsed.Username()
	if !ok {
		c.scheduler.DoNothing()
		form.Username.RedrawNeutral()
		form.Notification.Show(views.Of(views.InvalidUsername))
		c.state = SettledInvalid
		return c.state
	}

	if c.caches.IsRegistered(ctx, username) {
		c.scheduler.DoNothing()
		form.Username.RedrawNeutral()
		form.Notification.Show(views.Of(views.UsernameTaken))
		c.state = SettledTaken
		return c.state
	}

	form.Username.RedrawOk()
	form.Notification.Hide()

	if c.caches.IsUnregistered(ctx, username) {
		c.scheduler.DoNothing()
		c.state = SettledAvailable
		return c.state
	}

	generation := c.generation
	checkCtx := context.WithoutCancel(ctx)
	c.scheduler.DoAfter(c.delay, func() {
		c.check(checkCtx, form, username, generation)
	})
	c.state = PendingCheck
	return c.state
}

// check asks the backend and applies the answer unless the field was
// edited in the meantime
func (c *UsernameChecker) check(ctx context.Context, form views.RegistrationForm, username model.Username, generation uint64) {
	exists, err := c.backend.ExistsNamed(ctx, username)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.failures.LogBackendIsNotWorking(ctx, err)
		if generation == c.generation {
			c.state = Idle
		}
		return
	}

	if generation != c.generation {
		c.logger.DebugContext(ctx, "dropping stale username check",
			slog.String("username", username.Text()),
		)
		return
	}

	if exists {
		c.caches.MarkRegistered(ctx, username)
		form.Username.RedrawNeutral()
		form.Notification.Show(views.Of(views.UsernameTaken))
		c.state = SettledTaken
		return
	}

	c.caches.MarkUnregistered(ctx, username)
	c.state = SettledAvailable
}

// Cancel drops any pending check
func (c *UsernameChecker) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.scheduler.DoNothing()
	if c.state == PendingCheck {
		c.state = Idle
	}
}
