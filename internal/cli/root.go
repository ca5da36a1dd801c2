package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/aqua-access/internal/factory"
	"github.com/mcoot/aqua-access/internal/services/registration"
	redisstorage "github.com/mcoot/aqua-access/internal/storage/redis"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loaded, cfgErr := LoadConfig()
	if cfgErr != nil {
		loaded = &Config{}
	}
	cfg = loaded

	rootCmd := &cobra.Command{
		Use:   "aqua",
		Short: "Log in to and register with the Aqua water tracker",
		Long: `aqua drives the Aqua account screens from a terminal.

Every field edit is validated as it happens. Usernames known to be free or
taken and password pairs already rejected are remembered, in memory or in
Redis, so the server is not asked twice.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return fmt.Errorf("reading environment: %w", cfgErr)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Account server URL (env: AQUA_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Cache storage: memory, redis (env: AQUA_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: AQUA_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Session, "session", cfg.Session, "Cache namespace in Redis (env: AQUA_SESSION)")
	rootCmd.PersistentFlags().DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Expire Redis cache entries after this long, 0 keeps them (env: AQUA_CACHE_TTL)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "Pause before a username is checked (env: AQUA_DEBOUNCE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.RedirectDelay, "redirect-delay", cfg.RedirectDelay, "How long a created account is announced (env: AQUA_REDIRECT_DELAY)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: AQUA_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log debug details to stderr")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newCheckUsernameCmd())
	rootCmd.AddCommand(newFormCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// withApp builds the application for one command run and closes it after
func withApp(run func(cmd *cobra.Command, app *factory.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				app.Logger.Warn("failed to close storage", slog.String("error", err.Error()))
			}
		}()
		return run(cmd, app, args)
	}
}

func newApp(cmd *cobra.Command) (*factory.App, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	factoryCfg := factory.Config{
		BackendURL:  cfg.ServerURL,
		Logger:      logger,
		StorageType: cfg.Storage,
		Registration: registration.Config{
			AvailabilityDelay: cfg.Debounce,
			RedirectDelay:     cfg.RedirectDelay,
		},
	}
	if cfg.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.Session = cfg.Session
		redisCfg.CacheTTL = cfg.CacheTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	return factory.New(factoryCfg)
}

// outcomeError reports a command that ran but did not succeed
type outcomeError struct {
	command     string
	outcome     string
	unavailable bool
}

func (e *outcomeError) Error() string {
	return fmt.Sprintf("%s: %s", e.command, e.outcome)
}

// exitCode is 2 when the server could not be reached and 1 otherwise
func exitCode(err error) int {
	var outcome *outcomeError
	if errors.As(err, &outcome) && outcome.unavailable {
		return 2
	}
	return 1
}
