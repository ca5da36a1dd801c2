package registration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/dependencies/mocks"
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
	"github.com/mcoot/aqua-access/internal/storage/memory"
	"github.com/mcoot/aqua-access/internal/testutil"
	"github.com/mcoot/aqua-access/internal/views"
)

type ServiceSuite struct {
	suite.Suite
	caches   storage.Caches
	clock    *mocks.MockClock
	backend  *mocks.MockBackend
	failures *mocks.MockBackendLogger
	form     *mocks.MockRegistrationForm
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.caches = memory.NewCaches()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.backend = mocks.NewMockBackend()
	s.failures = mocks.NewMockBackendLogger()
	s.form = mocks.NewMockRegistrationForm()
	s.service = New(s.caches, s.backend, s.failures, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) username(text string) model.Username {
	username, err := model.NewUsername(text)
	s.Require().NoError(err)
	return username
}

func (s *ServiceSuite) current() views.Notification {
	current, visible := s.form.Notification.Current()
	s.Require().True(visible, "notification is hidden")
	return current
}

func (s *ServiceSuite) registered() backend.RegisterResult {
	username := s.username("alice")
	water, err := model.NewWater(2000)
	s.Require().NoError(err)
	capacity, err := model.NewWater(200)
	s.Require().NoError(err)
	return backend.RegisterResult{
		Outcome: backend.Registered,
		User: model.User{
			ID:                 "user-1",
			TargetWaterBalance: model.WaterBalance{Water: water},
			Glass:              model.Glass{Capacity: capacity},
		},
		Account: model.Account{ID: "user-1", Username: username},
	}
}

func validFields() Fields {
	return Fields{Username: "alice", Password: "Secret12", Weight: "70"}
}

// PreparePassword tests

func (s *ServiceSuite) TestPreparePasswordWeak() {
	s.service.PreparePassword(s.form.Views(), Fields{Password: "secret"})

	s.Equal(mocks.StateNeutral, s.form.Password.State())
	current := s.current()
	s.Equal(views.InvalidPassword, current.Notice)
	s.True(current.Weakness.Has(model.NoDigits))
}

func (s *ServiceSuite) TestPreparePasswordStrong() {
	s.service.PreparePassword(s.form.Views(), Fields{Password: "Secret12"})

	s.Equal(mocks.StateOk, s.form.Password.State())
	s.False(s.form.Notification.Visible())
}

// PrepareWeight tests

func (s *ServiceSuite) TestPrepareWeightForTargetWithoutTarget() {
	s.service.PrepareWeight(s.form.Views(), Fields{Weight: "70"})

	s.Equal(mocks.StateOk, s.form.Weight.State())
	s.Equal(mocks.StateOk, s.form.Target.State())
	current := s.current()
	s.Equal(views.ValidWeightWithoutTargetHint, current.Notice)
	s.Require().NotNil(current.SuggestedTarget)
	s.Equal(2000, current.SuggestedTarget.Water.Milliliters())
}

func (s *ServiceSuite) TestPrepareWeightOutOfRangeWithoutTarget() {
	s.service.PrepareWeight(s.form.Views(), Fields{Weight: "200"})

	s.Equal(mocks.StateNeutral, s.form.Weight.State())
	s.Equal(mocks.StateNeutral, s.form.Target.State())
	s.Equal(views.InvalidWeightWithoutTargetHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareWeightMissingWithoutTarget() {
	s.service.PrepareWeight(s.form.Views(), Fields{})

	s.Equal(mocks.StateNeutral, s.form.Weight.State())
	s.Equal(views.InvalidWeightWithoutTargetHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareWeightWithTarget() {
	s.service.PrepareWeight(s.form.Views(), Fields{Weight: "200", Target: "2500"})

	s.Equal(mocks.StateOk, s.form.Weight.State())
	s.Equal(mocks.StateUntouched, s.form.Target.State())
	s.Equal(views.ValidWeightWithTargetHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareWeightInvalidWithTarget() {
	s.service.PrepareWeight(s.form.Views(), Fields{Weight: "70.5", Target: "2500"})

	s.Equal(mocks.StateNeutral, s.form.Weight.State())
	s.Equal(views.InvalidWeightWithTargetHint, s.current().Notice)
}

// PrepareTarget tests

func (s *ServiceSuite) TestPrepareTargetValidWithWeightForTarget() {
	s.service.PrepareTarget(s.form.Views(), Fields{Target: "2500", Weight: "70"})

	s.Equal(mocks.StateOk, s.form.Target.State())
	s.Equal(mocks.StateOk, s.form.Weight.State())
	s.Equal(views.ValidTargetWithWeightHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareTargetValidWithPlainWeight() {
	s.service.PrepareTarget(s.form.Views(), Fields{Target: "2500", Weight: "200"})

	s.Equal(mocks.StateOk, s.form.Weight.State())
	s.Equal(views.ValidTargetWithoutWeightHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareTargetValidWithInvalidWeight() {
	s.service.PrepareTarget(s.form.Views(), Fields{Target: "2500", Weight: "-3"})

	s.Equal(mocks.StateOk, s.form.Target.State())
	s.Equal(mocks.StateNeutral, s.form.Weight.State())
	s.Equal(views.ValidTargetWithoutWeightHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareTargetMissingWithWeightForTarget() {
	s.service.PrepareTarget(s.form.Views(), Fields{Weight: "70"})

	s.Equal(mocks.StateOk, s.form.Target.State())
	s.Equal(views.ValidTargetWithWeightHint, s.current().Notice)
}

func (s *ServiceSuite) TestPrepareTargetInvalidWithoutUsableWeight() {
	s.service.PrepareTarget(s.form.Views(), Fields{Target: "lots", Weight: "200"})

	s.Equal(mocks.StateNeutral, s.form.Target.State())
	s.Equal(mocks.StateNeutral, s.form.Weight.State())
	s.Equal(views.InvalidTargetWithoutWeightHint, s.current().Notice)
}

// PrepareGlass tests

func (s *ServiceSuite) TestPrepareGlass() {
	s.service.PrepareGlass(s.form.Views(), Fields{Glass: "250"})
	s.Equal(mocks.StateOk, s.form.Glass.State())
	s.Equal(views.ValidGlassHint, s.current().Notice)

	s.service.PrepareGlass(s.form.Views(), Fields{Glass: "-1"})
	s.Equal(mocks.StateNeutral, s.form.Glass.State())
	s.Equal(views.InvalidGlassHint, s.current().Notice)

	s.service.PrepareGlass(s.form.Views(), Fields{Glass: "  "})
	s.Equal(mocks.StateOk, s.form.Glass.State())
	s.False(s.form.Notification.Visible())
}

// CreateAccount tests

func (s *ServiceSuite) TestCreateAccountSucceeds() {
	s.backend.RegisterAnswers(s.registered())

	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), validFields())

	s.Equal(Created, outcome)
	s.Equal(views.AccountCreated, s.current().Notice)
	s.Equal(mocks.StateOk, s.form.Submit.State())

	registrations := s.backend.Registrations()
	s.Require().Len(registrations, 1)
	s.Nil(registrations[0].TargetWaterBalance)
	s.Require().NotNil(registrations[0].Weight)
	s.Equal(70, registrations[0].Weight.Kilograms())

	found, err := s.caches.RegisteredUsernames.Contains(s.ctx, s.username("alice"))
	s.Require().NoError(err)
	s.True(found)

	s.clock.Advance(2999 * time.Millisecond)
	s.Equal(mocks.LocationCurrent, s.form.Window.Location())
	s.clock.Advance(time.Millisecond)
	s.Equal(mocks.LocationMain, s.form.Window.Location())
}

func (s *ServiceSuite) TestCreateAccountSuccessCancelsPulseRevert() {
	s.service.CreateAccount(s.ctx, s.form.Views(), Fields{Username: "alice", Password: "weak"})
	s.Require().Equal(mocks.StateBad, s.form.Submit.State())

	s.backend.RegisterAnswers(s.registered())
	s.clock.Advance(time.Second)
	s.service.CreateAccount(s.ctx, s.form.Views(), validFields())
	s.clock.Advance(10 * time.Second)

	s.Equal(mocks.StateOk, s.form.Submit.State())
}

func (s *ServiceSuite) TestCreateAccountWeakCredentialsPulses() {
	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), Fields{Username: "alice", Password: "weak", Weight: "70"})

	s.Equal(Rejected, outcome)
	s.Equal(mocks.StateBad, s.form.Submit.State())
	s.Empty(s.backend.Registrations())

	s.clock.Advance(3 * time.Second)
	s.Equal(mocks.StateNeutral, s.form.Submit.State())
}

func (s *ServiceSuite) TestCreateAccountKnownTakenUsername() {
	s.Require().NoError(s.caches.RegisteredUsernames.Add(s.ctx, s.username("alice")))

	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), validFields())

	s.Equal(Rejected, outcome)
	s.Empty(s.backend.Registrations())
}

func (s *ServiceSuite) TestCreateAccountNeedsTargetOrWeightForTarget() {
	fields := validFields()
	fields.Weight = "200"

	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), fields)

	s.Equal(Rejected, outcome)
	s.Empty(s.backend.Registrations())
}

func (s *ServiceSuite) TestCreateAccountRejectsInvalidAmounts() {
	for _, fields := range []Fields{
		{Username: "alice", Password: "Secret12", Target: "2000", Weight: "-1"},
		{Username: "alice", Password: "Secret12", Target: "20.5"},
		{Username: "alice", Password: "Secret12", Target: "2000", Glass: "abc"},
	} {
		s.Equal(Rejected, s.service.CreateAccount(s.ctx, s.form.Views(), fields), fields)
	}
	s.Empty(s.backend.Registrations())
}

func (s *ServiceSuite) TestCreateAccountRejectsAmountsTooLarge() {
	s.backend.RegisterAnswers(s.registered())

	for _, fields := range []Fields{
		{Username: "alice", Password: "Secret12", Target: "1e19", Glass: "1e19"},
		{Username: "alice", Password: "Secret12", Target: "2000", Glass: "1e19"},
		{Username: "alice", Password: "Secret12", Target: "1e400"},
		{Username: "alice", Password: "Secret12", Weight: "1e19"},
	} {
		s.Equal(Rejected, s.service.CreateAccount(s.ctx, s.form.Views(), fields), fields)
		s.Equal(mocks.StateBad, s.form.Submit.State())
	}
	s.Empty(s.backend.Registrations())
}

func (s *ServiceSuite) TestPrepareTargetTooLarge() {
	s.service.PrepareTarget(s.form.Views(), Fields{Target: "1e19"})

	s.Equal(mocks.StateNeutral, s.form.Target.State())
	s.Equal(views.InvalidTargetWithoutWeightHint, s.current().Notice)
}

func (s *ServiceSuite) TestCreateAccountSendsExplicitAmounts() {
	s.backend.RegisterAnswers(s.registered())

	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), Fields{
		Username: "alice", Password: "Secret12", Target: "2500", Weight: "200", Glass: "300",
	})

	s.Equal(Created, outcome)
	registration := s.backend.Registrations()[0]
	s.Equal(2500, registration.TargetWaterBalance.Water.Milliliters())
	s.Equal(200, registration.Weight.Kilograms())
	s.Equal(300, registration.Glass.Capacity.Milliliters())
}

func (s *ServiceSuite) TestCreateAccountAlreadyRegistered() {
	s.Require().NoError(s.caches.UnregisteredUsernames.Add(s.ctx, s.username("alice")))
	s.backend.RegisterAnswers(backend.RegisterResult{Outcome: backend.AlreadyRegistered})

	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), validFields())

	s.Equal(UsernameTaken, outcome)
	s.Equal(views.UsernameTaken, s.current().Notice)
	s.Equal(mocks.StateNeutral, s.form.Username.State())
	s.Equal(mocks.StateBad, s.form.Submit.State())

	found, err := s.caches.RegisteredUsernames.Contains(s.ctx, s.username("alice"))
	s.Require().NoError(err)
	s.True(found)
	found, err = s.caches.UnregisteredUsernames.Contains(s.ctx, s.username("alice"))
	s.Require().NoError(err)
	s.False(found)
}

func (s *ServiceSuite) TestCreateAccountBackendDown() {
	outcome := s.service.CreateAccount(s.ctx, s.form.Views(), validFields())

	s.Equal(Unavailable, outcome)
	s.Equal(views.TryAgainLater, s.current().Notice)
	s.Equal(mocks.StateBad, s.form.Submit.State())
	s.Len(s.failures.Errors(), 1)
}

func (s *ServiceSuite) TestCreateAccountCancelsPendingUsernameCheck() {
	s.backend.RegisterAnswers(s.registered())
	s.backend.ExistsAnswers(true)

	s.service.PrepareUsername(s.ctx, s.form.Views(), validFields())
	s.service.CreateAccount(s.ctx, s.form.Views(), validFields())
	s.clock.Advance(time.Minute)

	s.Empty(s.backend.ExistsChecks())
	s.Equal(views.AccountCreated, s.current().Notice)
}
