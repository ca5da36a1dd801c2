package registration

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/dependencies/clock"
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
	"github.com/mcoot/aqua-access/internal/timeout"
	"github.com/mcoot/aqua-access/internal/views"
)

// Outcome is what a submission of the registration form ended with
type Outcome int

const (
	Created Outcome = iota
	Rejected
	UsernameTaken
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Rejected:
		return "rejected"
	case UsernameTaken:
		return "username_taken"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Config holds the delays of the registration form
type Config struct {
	// AvailabilityDelay is how long editing must pause before the
	// username is checked with the backend
	AvailabilityDelay time.Duration

	// PulseDuration is how long the submit control stays bad
	PulseDuration time.Duration

	// RedirectDelay is how long the account-created notice is shown
	// before moving on
	RedirectDelay time.Duration
}

// DefaultConfig returns the default delays
func DefaultConfig() Config {
	return Config{
		AvailabilityDelay: 2500 * time.Millisecond,
		PulseDuration:     3000 * time.Millisecond,
		RedirectDelay:     3000 * time.Millisecond,
	}
}

// Service drives one registration form. Its timers belong to that form,
// so every form gets its own Service.
type Service struct {
	caches   storage.Lenient
	backend  backend.Backend
	failures backend.Logger
	logger   *slog.Logger
	cfg      Config

	checker  *UsernameChecker
	pulse    *timeout.Timeout
	redirect *timeout.Timeout
}

// New creates a registration Service
func New(
	caches storage.Caches,
	b backend.Backend,
	failures backend.Logger,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Service {
	defaults := DefaultConfig()
	if cfg.AvailabilityDelay == 0 {
		cfg.AvailabilityDelay = defaults.AvailabilityDelay
	}
	if cfg.PulseDuration == 0 {
		cfg.PulseDuration = defaults.PulseDuration
	}
	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = defaults.RedirectDelay
	}

	lenient := storage.NewLenient(caches, logger)
	return &Service{
		caches:   lenient,
		backend:  b,
		failures: failures,
		logger:   logger,
		cfg:      cfg,
		checker:  NewUsernameChecker(lenient, b, failures, timeout.New(clk), cfg.AvailabilityDelay, logger),
		pulse:    timeout.New(clk),
		redirect: timeout.New(clk),
	}
}

// PrepareUsername handles an edit of the username field
func (s *Service) PrepareUsername(ctx context.Context, form views.RegistrationForm, fields Fields) State {
	return s.checker.Prepare(ctx, form, fields.Username)
}

// UsernameState returns where the availability check stands
func (s *Service) UsernameState() State {
	return s.checker.State()
}

// CreateAccount validates every field again and submits the form. Local
// rejections only pulse the submit control.
func (s *Service) CreateAccount(ctx context.Context, form views.RegistrationForm, fields Fields) Outcome {
	credentials := model.CredentialsWith(fields.Username, fields.Password)

	strong, err := credentials.Strong()
	if err != nil {
		s.pulseBad(form)
		return Rejected
	}

	if s.caches.IsRegistered(ctx, strong.Username) {
		s.pulseBad(form)
		return Rejected
	}

	registration, ok := registrationOf(strong, fields.amounts())
	if !ok {
		s.pulseBad(form)
		return Rejected
	}

	result, err := s.backend.Register(ctx, registration)
	if err != nil {
		s.pulseBad(form)
		s.failures.LogBackendIsNotWorking(ctx, err)
		form.Notification.Show(views.Of(views.TryAgainLater))
		return Unavailable
	}

	switch result.Outcome {
	case backend.AlreadyRegistered:
		s.caches.MarkRegistered(ctx, strong.Username)
		form.Username.RedrawNeutral()
		s.pulseBad(form)
		form.Notification.Show(views.Of(views.UsernameTaken))
		return UsernameTaken

	case backend.Registered:
		s.checker.Cancel()
		s.caches.MarkRegistered(ctx, strong.Username)
		s.logger.InfoContext(ctx, "account created",
			slog.String("user_id", string(result.Account.ID)),
			slog.String("username", result.Account.Username.Text()),
			slog.Int("target_ml", result.User.TargetWaterBalance.Water.Milliliters()),
		)

		form.Notification.Show(views.Of(views.AccountCreated))
		form.Submit.RedrawOk()
		s.pulse.DoNothing()
		s.redirect.DoAfter(s.cfg.RedirectDelay, form.Window.RedrawForMainInteractions)
		return Created

	default:
		s.pulseBad(form)
		s.failures.LogBackendIsNotWorking(ctx, backend.ErrUnavailable)
		form.Notification.Show(views.Of(views.TryAgainLater))
		return Unavailable
	}
}

// registrationOf builds the request, refusing invalid amounts and a
// missing target that cannot be derived from the weight
func registrationOf(credentials model.StrongCredentials, a amounts) (backend.Registration, bool) {
	registration := backend.Registration{Credentials: credentials}

	if a.weight != nil {
		weight, ok := a.weight.Weight()
		if !ok {
			return backend.Registration{}, false
		}
		registration.Weight = &weight
	}

	if a.target != nil {
		balance, ok := a.target.WaterBalance()
		if !ok {
			return backend.Registration{}, false
		}
		registration.TargetWaterBalance = &balance
	} else if a.weight == nil || a.weight.Kind != model.WeightForTarget {
		return backend.Registration{}, false
	}

	if a.glass != nil {
		glass, ok := a.glass.Glass()
		if !ok {
			return backend.Registration{}, false
		}
		registration.Glass = &glass
	}

	return registration, true
}

// pulseBad shows the submit control as bad for a while
func (s *Service) pulseBad(form views.RegistrationForm) {
	form.Submit.RedrawBad()
	s.pulse.DoAfter(s.cfg.PulseDuration, form.Submit.RedrawNeutral)
}
