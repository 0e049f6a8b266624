// Package main implements the entry point for the catalog API server, which
// serves user and product records kept in CSV files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-api: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run parses flags, loads configuration, wires the application and serves
// until ctx is cancelled.
func run(ctx context.Context, args []string) error {
	cfg, err := loadAppConfig(args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend,
		"id_policy", cfg.Store.IDPolicy,
		"serialize_writes", cfg.Store.SerializeWrites)

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig parses the command line and loads the configuration.
// Usage goes to stderr when it was requested or a setting is invalid.
// Returns pflag.ErrHelp when usage was requested.
func loadAppConfig(args []string, stderr io.Writer) (*config.Config, error) {
	fs := config.NewFlagSet("catalog-api")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(fs)
	if config.IsValidationError(err) {
		fmt.Fprintf(stderr, "invalid configuration: %v\n\nUsage of %s:\n%s", err, fs.Name(), fs.FlagUsages())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
