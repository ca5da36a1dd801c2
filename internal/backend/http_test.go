package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/dependencies/mocks"
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/stubserver"
	"github.com/mcoot/aqua-access/internal/testutil"
)

type HTTPClientSuite struct {
	suite.Suite
	stub   *stubserver.Stub
	server *httptest.Server
	random *mocks.MockRandom
	client *backend.HTTPClient
	ctx    context.Context
}

func TestHTTPClientSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientSuite))
}

func (s *HTTPClientSuite) SetupTest() {
	s.stub, s.server = testutil.StartStubBackend(s.T(), testutil.NopLogger())
	s.random = mocks.NewMockRandom()
	s.client = backend.NewHTTPClient(s.server.URL+"/", s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *HTTPClientSuite) strong(username, password string) model.StrongCredentials {
	credentials, err := model.CredentialsWith(username, password).Strong()
	s.Require().NoError(err)
	return credentials
}

func (s *HTTPClientSuite) username(text string) model.Username {
	username, err := model.NewUsername(text)
	s.Require().NoError(err)
	return username
}

// Login tests

func (s *HTTPClientSuite) TestLoginSucceeds() {
	id := s.stub.AddAccount("alice", "Secret12")

	result, err := s.client.Login(s.ctx, s.strong("alice", "Secret12"))
	s.Require().NoError(err)
	s.Equal(backend.LoginSucceeded, result.Outcome)
	s.Equal(model.UserID(id), result.UserID)
}

func (s *HTTPClientSuite) TestLoginNoUser() {
	result, err := s.client.Login(s.ctx, s.strong("alice", "Secret12"))
	s.Require().NoError(err)
	s.Equal(backend.LoginNoUser, result.Outcome)
}

func (s *HTTPClientSuite) TestLoginIncorrectPassword() {
	s.stub.AddAccount("alice", "Secret12")

	result, err := s.client.Login(s.ctx, s.strong("alice", "Secret34"))
	s.Require().NoError(err)
	s.Equal(backend.LoginIncorrectPassword, result.Outcome)
}

func (s *HTTPClientSuite) TestLoginServerDown() {
	s.stub.SetDown(true)

	_, err := s.client.Login(s.ctx, s.strong("alice", "Secret12"))
	s.ErrorIs(err, backend.ErrUnavailable)
}

func (s *HTTPClientSuite) TestLoginUnreachable() {
	s.server.Close()

	_, err := s.client.Login(s.ctx, s.strong("alice", "Secret12"))
	s.ErrorIs(err, backend.ErrUnavailable)
}

func (s *HTTPClientSuite) TestLoginRejectsNonStringUserID() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": 42}`))
	}))
	defer server.Close()
	client := backend.NewHTTPClient(server.URL, s.random, testutil.NopLogger())

	_, err := client.Login(s.ctx, s.strong("alice", "Secret12"))
	s.ErrorIs(err, backend.ErrUnavailable)
}

func (s *HTTPClientSuite) TestRequestsCarryRequestID() {
	s.random.QueueString("req0000000000001")

	_, err := s.client.ExistsNamed(s.ctx, s.username("alice"))
	s.Require().NoError(err)

	s.Equal([]string{"req0000000000001"}, s.stub.RequestIDs())
}

// Register tests

func (s *HTTPClientSuite) TestRegisterDerivesTargetFromWeight() {
	weight, err := model.NewWeight(70)
	s.Require().NoError(err)

	result, err := s.client.Register(s.ctx, backend.Registration{
		Credentials: s.strong("alice", "Secret12"),
		Weight:      &weight,
	})
	s.Require().NoError(err)

	s.Equal(backend.Registered, result.Outcome)
	s.Equal("alice", result.Account.Username.Text())
	s.Equal(result.Account.ID, result.User.ID)
	s.Equal(2000, result.User.TargetWaterBalance.Water.Milliliters())
	s.Equal(stubserver.DefaultGlassMilliliters, result.User.Glass.Capacity.Milliliters())
	s.Require().NotNil(result.User.Weight)
	s.Equal(70, result.User.Weight.Kilograms())
	s.True(s.stub.HasAccount("alice"))
}

func (s *HTTPClientSuite) TestRegisterWithExplicitAmounts() {
	water, err := model.NewWater(2500)
	s.Require().NoError(err)
	capacity, err := model.NewWater(300)
	s.Require().NoError(err)
	balance := model.WaterBalance{Water: water}
	glass := model.Glass{Capacity: capacity}

	result, err := s.client.Register(s.ctx, backend.Registration{
		Credentials:        s.strong("alice", "Secret12"),
		TargetWaterBalance: &balance,
		Glass:              &glass,
	})
	s.Require().NoError(err)

	s.Equal(2500, result.User.TargetWaterBalance.Water.Milliliters())
	s.Equal(300, result.User.Glass.Capacity.Milliliters())
	s.Nil(result.User.Weight)
}

func (s *HTTPClientSuite) TestRegisterAlreadyRegistered() {
	s.stub.AddAccount("alice", "Secret12")
	water, err := model.NewWater(2000)
	s.Require().NoError(err)
	balance := model.WaterBalance{Water: water}

	result, err := s.client.Register(s.ctx, backend.Registration{
		Credentials:        s.strong("alice", "Secret34"),
		TargetWaterBalance: &balance,
	})
	s.Require().NoError(err)
	s.Equal(backend.AlreadyRegistered, result.Outcome)
}

func (s *HTTPClientSuite) TestRegisterOtherRejectionIsUnavailable() {
	_, err := s.client.Register(s.ctx, backend.Registration{
		Credentials: s.strong("alice", "Secret12"),
	})
	s.ErrorIs(err, backend.ErrUnavailable)
	s.Contains(err.Error(), "NoWeightForWaterBalanceError")
}

func (s *HTTPClientSuite) TestRegisterRejectsMalformedBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": "u1", "username": "alice", "glass_milliliters": 200}`))
	}))
	defer server.Close()
	client := backend.NewHTTPClient(server.URL, s.random, testutil.NopLogger())

	_, err := client.Register(s.ctx, backend.Registration{Credentials: s.strong("alice", "Secret12")})
	s.ErrorIs(err, backend.ErrUnavailable)
}

// ExistsNamed tests

func (s *HTTPClientSuite) TestExistsNamed() {
	s.stub.AddAccount("alice smith", "Secret12")

	exists, err := s.client.ExistsNamed(s.ctx, s.username("alice smith"))
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.client.ExistsNamed(s.ctx, s.username("bob"))
	s.Require().NoError(err)
	s.False(exists)
}

func (s *HTTPClientSuite) TestExistsNamedServerDown() {
	s.stub.SetDown(true)

	_, err := s.client.ExistsNamed(s.ctx, s.username("alice"))
	s.ErrorIs(err, backend.ErrUnavailable)
}
