package cli

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"AQUA_SERVER" env-default:"http://localhost:8000"`
	Storage   string `env:"AQUA_STORAGE" env-default:"memory"`
	RedisURL  string `env:"AQUA_REDIS_URL" env-default:"redis://localhost:6379"`
	Session   string `env:"AQUA_SESSION" env-default:"default"`

	// CacheTTL expires Redis cache entries; zero keeps them
	CacheTTL time.Duration `env:"AQUA_CACHE_TTL" env-default:"0s"`

	Output    string `env:"AQUA_OUTPUT" env-default:"text"`
	Verbose   bool   `env:"AQUA_VERBOSE" env-default:"false"`

	// Debounce is the pause before a typed username is checked
	Debounce time.Duration `env:"AQUA_DEBOUNCE" env-default:"2500ms"`

	// RedirectDelay is how long a created account is announced before
	// the main screen
	RedirectDelay time.Duration `env:"AQUA_REDIRECT_DELAY" env-default:"3000ms"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
