package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Session namespaces the cache keys so several deployments can share
	// one Redis instance
	Session string

	// CacheTTL optionally bounds how long a negative result is remembered.
	// Zero, the default, keeps entries until removed.
	CacheTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		Session:      "default",
	}
}
