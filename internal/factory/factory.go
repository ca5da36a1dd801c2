package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/aqua-access/internal/backend"
	"github.com/mcoot/aqua-access/internal/dependencies/clock"
	"github.com/mcoot/aqua-access/internal/dependencies/random"
	"github.com/mcoot/aqua-access/internal/services/login"
	"github.com/mcoot/aqua-access/internal/services/registration"
	"github.com/mcoot/aqua-access/internal/storage"
	"github.com/mcoot/aqua-access/internal/storage/memory"
	redisstorage "github.com/mcoot/aqua-access/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Negative-result caches
	Caches storage.Caches

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Backend  backend.Backend
	Failures backend.Logger
	Logger   *slog.Logger

	// Services
	LoginService *login.Service

	registrationCfg registration.Config
	closer          io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// BackendURL is the base URL of the account server
	BackendURL string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the cache backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Registration holds the registration form delays (optional)
	// Zero fields default to registration.DefaultConfig()
	Registration registration.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.BackendURL == "" {
		return nil, errors.New("BackendURL is required")
	}

	// Create caches based on storage type
	var caches storage.Caches
	var closer io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		caches = memory.NewCaches()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		caches = redisStore.Caches()
		closer = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	client := backend.NewHTTPClient(cfg.BackendURL, rnd, logger)

	app := newWithDependencies(caches, client, clk, rnd, cfg.Registration, logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	caches storage.Caches,
	b backend.Backend,
	clk clock.Clock,
	rnd random.Random,
	regCfg registration.Config,
	logger *slog.Logger,
) *App {
	failures := backend.NewSlogLogger(logger)

	return &App{
		Caches:          caches,
		Clock:           clk,
		Random:          rnd,
		Backend:         b,
		Failures:        failures,
		Logger:          logger,
		LoginService:    login.New(caches, b, failures, logger),
		registrationCfg: regCfg,
	}
}

// NewRegistration creates the service for one registration form. Forms
// share the caches but not their timers.
func (a *App) NewRegistration() *registration.Service {
	return registration.New(a.Caches, a.Backend, a.Failures, a.Clock, a.registrationCfg, a.Logger)
}

// Close releases the cache connection, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
