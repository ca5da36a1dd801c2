// Command aqua-stub runs a local account server for trying the aqua CLI
// without the real backend.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/aqua-access/internal/stubserver"
)

type config struct {
	Host string `env:"AQUA_STUB_HOST" env-default:""`
	Port int    `env:"AQUA_STUB_PORT" env-default:"8000"`

	// Optional account created at startup
	SeedUsername string `env:"AQUA_STUB_USERNAME"`
	SeedPassword string `env:"AQUA_STUB_PASSWORD"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Error("failed to read configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stub := stubserver.NewStub()
	if cfg.SeedUsername != "" {
		id := stub.AddAccount(cfg.SeedUsername, cfg.SeedPassword)
		logger.Info("seeded account", slog.String("username", cfg.SeedUsername), slog.String("user_id", id))
	}

	serverConfig := stubserver.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := stubserver.NewServer(stub, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
