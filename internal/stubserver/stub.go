// Package stubserver is a small account server speaking the Aqua user API.
// It backs the tests and can be run locally with cmd/aqua-stub.
package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/aqua-access/internal/middleware"
	"github.com/mcoot/aqua-access/internal/model"
)

// Glass capacity the server assigns when none is given
const DefaultGlassMilliliters = 200

// Stub is an account server speaking the same JSON API
// as the real one
type Stub struct {
	mu       sync.Mutex
	accounts map[string]account

	// down makes every endpoint answer 500
	down bool

	calls      map[string]int
	requestIDs []string
}

type account struct {
	id           string
	passwordHash []byte
	target       int
	glass        int
	weight       *int
}

// NewStub creates a server with no accounts
func NewStub() *Stub {
	return &Stub{
		accounts: make(map[string]account),
		calls:    make(map[string]int),
	}
}

// Router builds the HTTP routes of the stub
func (b *Stub) Router(logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/0.1v/user").Subrouter()
	api.Use(middleware.Recovery(logger))
	api.Use(middleware.RequestLog(logger))
	api.Use(b.track)

	api.HandleFunc("/authorize", b.authorize).Methods(http.MethodPost)
	api.HandleFunc("/register", b.register).Methods(http.MethodPost)
	api.HandleFunc("/exists", b.exists).Methods(http.MethodGet)

	return r
}

// AddAccount registers an account directly, bypassing the API
func (b *Stub) AddAccount(username, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return b.addLocked(username, hash, 2000, DefaultGlassMilliliters, nil)
}

// HasAccount reports whether the username is registered
func (b *Stub) HasAccount(username string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.accounts[username]
	return ok
}

// CallCount returns how many requests hit the route path
func (b *Stub) CallCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

// RequestIDs lists the X-Request-ID of every request in arrival order
func (b *Stub) RequestIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

// SetDown switches the simulated outage on or off
func (b *Stub) SetDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

func (b *Stub) addLocked(username string, hash []byte, target, glass int, weight *int) string {
	id := uuid.NewString()
	b.accounts[username] = account{
		id:           id,
		passwordHash: hash,
		target:       target,
		glass:        glass,
		weight:       weight,
	}
	return id
}

func (b *Stub) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.URL.Path]++
		b.requestIDs = append(b.requestIDs, r.Header.Get(middleware.RequestIDHeader))
		down := b.down
		b.mu.Unlock()

		if down {
			panic(middleware.ErrBackendDown)
		}
		next.ServeHTTP(w, r)
	})
}

type stubCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *Stub) authorize(w http.ResponseWriter, r *http.Request) {
	var req stubCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "ValidationError")
		return
	}

	b.mu.Lock()
	account, ok := b.accounts[req.Username]
	b.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "NoUserError")
		return
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(req.Password)); err != nil {
		writeDetail(w, http.StatusUnauthorized, "IncorrectPasswordError")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user_id": account.id})
}

type stubRegistration struct {
	Username                      string `json:"username"`
	Password                      string `json:"password"`
	TargetWaterBalanceMilliliters *int   `json:"target_water_balance_milliliters"`
	GlassMilliliters              *int   `json:"glass_milliliters"`
	WeightKilograms               *int   `json:"weight_kilograms"`
}

func (b *Stub) register(w http.ResponseWriter, r *http.Request) {
	var req stubRegistration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "ValidationError")
		return
	}

	if req.Username == "" {
		writeDetail(w, http.StatusBadRequest, "EmptyUsernameError")
		return
	}
	if model.PasswordWith(req.Password).IsWeak() {
		writeDetail(w, http.StatusBadRequest, "WeekPasswordError")
		return
	}

	target, problem := targetFor(req.TargetWaterBalanceMilliliters, req.WeightKilograms)
	if problem != "" {
		writeDetail(w, http.StatusBadRequest, problem)
		return
	}

	glass := DefaultGlassMilliliters
	if req.GlassMilliliters != nil {
		glass = *req.GlassMilliliters
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b.mu.Lock()
	if _, taken := b.accounts[req.Username]; taken {
		b.mu.Unlock()
		writeDetail(w, http.StatusConflict, "UserIsAlreadyRegisteredError")
		return
	}
	id := b.addLocked(req.Username, hash, target, glass, req.WeightKilograms)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":                          id,
		"username":                         req.Username,
		"target_water_balance_milliliters": target,
		"glass_milliliters":                glass,
		"weight_kilograms":                 req.WeightKilograms,
	})
}

// targetFor picks the given target or derives one from the weight,
// returning the error type the server would answer with
func targetFor(target, weightKilograms *int) (int, string) {
	if target != nil {
		return *target, ""
	}
	if weightKilograms == nil {
		return 0, "NoWeightForWaterBalanceError"
	}

	weight, err := model.NewWeight(*weightKilograms)
	if err != nil {
		return 0, "IncorrectWeightAmountError"
	}
	balance, err := model.SuitableWaterBalance(weight)
	if err != nil {
		return 0, "ExtremeWeightForWaterBalanceError"
	}
	return balance.Water.Milliliters(), ""
}

func (b *Stub) exists(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	b.mu.Lock()
	_, ok := b.accounts[username]
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"exists": ok})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, errorType string) {
	writeJSON(w, status, map[string]any{
		"detail": []map[string]string{{"msg": "", "type": errorType}},
	})
}
