package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/aqua-access/internal/dependencies/random"
	"github.com/mcoot/aqua-access/internal/model"
)

// API routes of the account server
const (
	authorizePath = "/api/0.1v/user/authorize"
	registerPath  = "/api/0.1v/user/register"
	existsPath    = "/api/0.1v/user/exists"
)

// RequestIDHeader carries a per-request identifier for server-side tracing
const RequestIDHeader = "X-Request-ID"

const requestIDLength = 16

// alreadyRegisteredType is the error detail type of a taken username
const alreadyRegisteredType = "UserIsAlreadyRegisteredError"

// HTTPClient implements Backend over the server's JSON API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	random     random.Random
	logger     *slog.Logger
}

// Ensure HTTPClient implements Backend
var _ Backend = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL
func NewHTTPClient(baseURL string, rnd random.Random, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		random: rnd,
		logger: logger,
	}
}

// errorDetail is one entry of a server error body
type errorDetail struct {
	Message string `json:"msg"`
	Type    string `json:"type"`
}

// errorResponse is the server's error body
type errorResponse struct {
	Detail []errorDetail `json:"detail"`
}

func (e errorResponse) firstType() string {
	if len(e.Detail) == 0 {
		return ""
	}
	return e.Detail[0].Type
}

// response is a read HTTP response
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authorizeResponse struct {
	UserID *string `json:"user_id"`
}

// Login authorizes credentials. 404 means no user and 401 an incorrect
// password; any other failure wraps ErrUnavailable.
func (c *HTTPClient) Login(ctx context.Context, credentials model.StrongCredentials) (LoginResult, error) {
	resp, err := c.do(ctx, http.MethodPost, authorizePath, credentialsRequest{
		Username: credentials.Username.Text(),
		Password: credentials.Password.Text,
	})
	if err != nil {
		return LoginResult{}, err
	}

	switch resp.status {
	case http.StatusNotFound:
		return LoginResult{Outcome: LoginNoUser}, nil
	case http.StatusUnauthorized:
		return LoginResult{Outcome: LoginIncorrectPassword}, nil
	}

	if !resp.ok() {
		return LoginResult{}, unexpectedStatus(resp)
	}

	var body authorizeResponse
	if err := json.Unmarshal(resp.body, &body); err != nil || body.UserID == nil {
		return LoginResult{}, fmt.Errorf("%w: malformed authorize response", ErrUnavailable)
	}

	return LoginResult{Outcome: LoginSucceeded, UserID: model.UserID(*body.UserID)}, nil
}

type registerRequest struct {
	Username                      string `json:"username"`
	Password                      string `json:"password"`
	TargetWaterBalanceMilliliters *int   `json:"target_water_balance_milliliters,omitempty"`
	GlassMilliliters              *int   `json:"glass_milliliters,omitempty"`
	WeightKilograms               *int   `json:"weight_kilograms,omitempty"`
}

type registerResponse struct {
	UserID                        *string  `json:"user_id"`
	Username                      *string  `json:"username"`
	TargetWaterBalanceMilliliters *float64 `json:"target_water_balance_milliliters"`
	GlassMilliliters              *float64 `json:"glass_milliliters"`
	WeightKilograms               *float64 `json:"weight_kilograms"`
}

// Register creates an account. A taken username is the AlreadyRegistered
// outcome; every other rejection wraps ErrUnavailable.
func (c *HTTPClient) Register(ctx context.Context, registration Registration) (RegisterResult, error) {
	request := registerRequest{
		Username: registration.Credentials.Username.Text(),
		Password: registration.Credentials.Password.Text,
	}
	if registration.TargetWaterBalance != nil {
		ml := registration.TargetWaterBalance.Water.Milliliters()
		request.TargetWaterBalanceMilliliters = &ml
	}
	if registration.Glass != nil {
		ml := registration.Glass.Capacity.Milliliters()
		request.GlassMilliliters = &ml
	}
	if registration.Weight != nil {
		kg := registration.Weight.Kilograms()
		request.WeightKilograms = &kg
	}

	resp, err := c.do(ctx, http.MethodPost, registerPath, request)
	if err != nil {
		return RegisterResult{}, err
	}

	if !resp.ok() {
		var body errorResponse
		if err := json.Unmarshal(resp.body, &body); err == nil && body.firstType() == alreadyRegisteredType {
			return RegisterResult{Outcome: AlreadyRegistered}, nil
		}
		return RegisterResult{}, unexpectedStatus(resp)
	}

	var body registerResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return RegisterResult{}, fmt.Errorf("%w: malformed register response: %v", ErrUnavailable, err)
	}

	user, account, err := body.entities()
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return RegisterResult{Outcome: Registered, User: user, Account: account}, nil
}

// entities validates the response fields and builds the created entities
func (r registerResponse) entities() (model.User, model.Account, error) {
	if r.UserID == nil || r.Username == nil || r.TargetWaterBalanceMilliliters == nil || r.GlassMilliliters == nil {
		return model.User{}, model.Account{}, fmt.Errorf("register response is missing fields")
	}

	username, err := model.NewUsername(*r.Username)
	if err != nil {
		return model.User{}, model.Account{}, err
	}

	balance, ok := model.WaterBalanceWith(*r.TargetWaterBalanceMilliliters).WaterBalance()
	if !ok {
		return model.User{}, model.Account{}, fmt.Errorf("%w: target %v ml", model.ErrInvalidWater, *r.TargetWaterBalanceMilliliters)
	}

	glass, ok := model.GlassWith(*r.GlassMilliliters).Glass()
	if !ok {
		return model.User{}, model.Account{}, fmt.Errorf("%w: glass %v ml", model.ErrInvalidWater, *r.GlassMilliliters)
	}

	var weight *model.Weight
	if r.WeightKilograms != nil {
		w, ok := model.WeightWith(*r.WeightKilograms).Weight()
		if !ok {
			return model.User{}, model.Account{}, fmt.Errorf("%w: %v kg", model.ErrInvalidWeight, *r.WeightKilograms)
		}
		weight = &w
	}

	id := model.UserID(*r.UserID)
	user := model.User{
		ID:                 id,
		TargetWaterBalance: balance,
		Glass:              glass,
		Weight:             weight,
	}
	return user, model.Account{ID: id, Username: username}, nil
}

type existsResponse struct {
	Exists *bool `json:"exists"`
}

// ExistsNamed asks whether an account with the username exists
func (c *HTTPClient) ExistsNamed(ctx context.Context, username model.Username) (bool, error) {
	query := url.Values{"username": {username.Text()}}

	resp, err := c.do(ctx, http.MethodGet, existsPath+"?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}
	if !resp.ok() {
		return false, unexpectedStatus(resp)
	}

	var body existsResponse
	if err := json.Unmarshal(resp.body, &body); err != nil || body.Exists == nil {
		return false, fmt.Errorf("%w: malformed exists response", ErrUnavailable)
	}
	return *body.Exists, nil
}

// do performs an HTTP request and reads the whole response. Transport
// failures wrap ErrUnavailable; status handling is left to the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return response{}, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := c.random.String(requestIDLength, random.Alphanumeric)
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	return response{status: resp.StatusCode, body: respBody}, nil
}

func unexpectedStatus(resp response) error {
	var body errorResponse
	if err := json.Unmarshal(resp.body, &body); err == nil && body.firstType() != "" {
		return fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.status, body.firstType())
	}
	return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.status)
}
