package factory

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstorage "github.com/mcoot/aqua-access/internal/storage/redis"
)

func TestNewRequiresBackendURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{BackendURL: "http://localhost:8000", StorageType: "disk"})
	assert.Error(t, err)
}

func TestNewRedisNeedsConfig(t *testing.T) {
	_, err := New(Config{BackendURL: "http://localhost:8000", StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewWithMemory(t *testing.T) {
	app, err := New(Config{BackendURL: "http://localhost:8000"})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.NotNil(t, app.LoginService)
	assert.NotNil(t, app.NewRegistration())
}

func TestNewWithRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		BackendURL:  "http://localhost:8000",
		StorageType: StorageTypeRedis,
		RedisConfig: &cfg,
	})
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}
