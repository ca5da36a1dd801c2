package login

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
	"github.com/mcoot/aqua-access/internal/views"
)

// ErrInvalidPriority is the panic value for a Priority outside the enum
var ErrInvalidPriority = errors.New("invalid validation priority")

// Priority picks which field's problem is reported when both are invalid
type Priority int

const (
	ForUsername Priority = iota
	ForPassword
)

// Outcome is what a login attempt ended with
type Outcome int

const (
	LoggedIn Outcome = iota
	InvalidUsername
	WeakPassword
	PreviouslyRejected
	WrongPassword
	NoSuchUser
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case LoggedIn:
		return "logged_in"
	case InvalidUsername:
		return "invalid_username"
	case WeakPassword:
		return "weak_password"
	case PreviouslyRejected:
		return "previously_rejected"
	case WrongPassword:
		return "wrong_password"
	case NoSuchUser:
		return "no_such_user"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Service validates the login form as it is edited and performs logins
type Service struct {
	caches   storage.Lenient
	backend  backend.Backend
	failures backend.Logger
	logger   *slog.Logger
}

// New creates a login Service
func New(caches storage.Caches, b backend.Backend, failures backend.Logger, logger *slog.Logger) *Service {
	return &Service{
		caches:   storage.NewLenient(caches, logger),
		backend:  b,
		failures: failures,
		logger:   logger,
	}
}

// Prepare redraws the form for the current field texts and reports whether
// the form may be submitted. Only one problem is shown at a time: the
// prioritised field's.
func (s *Service) Prepare(ctx context.Context, form views.LoginForm, usernameText, passwordText string, priority Priority) bool {
	if priority != ForUsername && priority != ForPassword {
		panic(ErrInvalidPriority)
	}

	credentials := model.CredentialsWith(usernameText, passwordText)

	if s.caches.IsRejected(ctx, credentials) {
		form.Notification.Show(views.Of(views.PreviouslyRejectedCredentials))
		form.Username.RedrawNeutral()
		form.Password.RedrawNeutral()
		return false
	}

	first, second := s.prepareUsername, s.preparePassword
	if priority == ForPassword {
		first, second = second, first
	}

	if !first(ctx, form, credentials) || !second(ctx, form, credentials) {
		return false
	}

	form.Notification.Hide()
	return true
}

func (s *Service) prepareUsername(ctx context.Context, form views.LoginForm, credentials model.Credentials) bool {
	username, ok := credentials.Username.Username()
	if !ok {
		form.Notification.Show(views.Of(views.InvalidUsername))
		form.Username.RedrawNeutral()
		return false
	}

	if s.caches.IsUnregistered(ctx, username) {
		form.Notification.Show(views.Of(views.PreviouslyNoSuchUser))
		form.Username.RedrawNeutral()
		return false
	}

	form.Username.RedrawOk()
	return true
}

func (s *Service) preparePassword(_ context.Context, form views.LoginForm, credentials model.Credentials) bool {
	if credentials.Password.IsWeak() {
		form.Notification.Show(views.Notification{
			Notice:   views.InvalidPassword,
			Weakness: credentials.Password.Power.Reasons(),
		})
		form.Password.RedrawNeutral()
		return false
	}

	form.Password.RedrawOk()
	return true
}

// Login submits the credentials. Invalid input never reaches the backend.
func (s *Service) Login(ctx context.Context, form views.LoginForm, usernameText, passwordText string) Outcome {
	credentials := model.CredentialsWith(usernameText, passwordText)

	username, ok := credentials.Username.Username()
	if !ok {
		form.Notification.Show(views.Of(views.InvalidUsername))
		return InvalidUsername
	}

	strong, err := credentials.Strong()
	if err != nil {
		form.Notification.Show(views.Notification{
			Notice:   views.InvalidPassword,
			Weakness: credentials.Password.Power.Reasons(),
		})
		return WeakPassword
	}

	if s.caches.IsRejected(ctx, credentials) {
		form.Notification.Show(views.Of(views.PreviouslyRejectedCredentials))
		form.Username.RedrawNeutral()
		form.Password.RedrawNeutral()
		return PreviouslyRejected
	}

	result, err := s.backend.Login(ctx, strong)
	if err != nil {
		s.failures.LogBackendIsNotWorking(ctx, err)
		form.Notification.Show(views.Of(views.TryAgainLater))
		return Unavailable
	}

	switch result.Outcome {
	case backend.LoginIncorrectPassword:
		// The user exists after all
		if s.caches.IsUnregistered(ctx, username) {
			s.caches.ForgetUnregistered(ctx, username)
		}
		s.caches.MarkRejected(ctx, credentials)
		form.Notification.Show(views.Of(views.WrongPassword))
		form.Username.RedrawNeutral()
		form.Password.RedrawNeutral()
		return WrongPassword

	case backend.LoginNoUser:
		s.caches.MarkUnregistered(ctx, username)
		form.Notification.Show(views.Of(views.NoSuchUser))
		form.Username.RedrawNeutral()
		return NoSuchUser

	case backend.LoginSucceeded:
		s.logger.InfoContext(ctx, "logged in", slog.String("user_id", string(result.UserID)))
		form.Window.RedrawForMainInteractions()
		return LoggedIn

	default:
		s.failures.LogBackendIsNotWorking(ctx, backend.ErrUnavailable)
		form.Notification.Show(views.Of(views.TryAgainLater))
		return Unavailable
	}
}
