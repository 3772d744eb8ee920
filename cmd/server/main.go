// Package main implements the entry point for the task service, which
// stores to-do tasks in PostgreSQL and checks task owners against the user
// service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/todo-microservices/task-service/internal/config"
	"github.com/todo-microservices/task-service/internal/platform/logger"
)

// options holds the parsed command line.
type options struct {
	configFile string
	migrate    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("task service exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseFlags parses the command line. Usage errors are written to out.
func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("task-service", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML configuration file")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, status, version) and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// loadConfig reads configuration from path when given, otherwise from the
// environment and an optional ./config.yaml.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// run wires the service together and blocks until ctx is cancelled or the
// server fails.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("user_service_url", cfg.UserService.URL))

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection", slog.String("error", closeErr.Error()))
		}
	}()

	if opts.migrate != "" {
		return runMigrations(ctx, db, opts.migrate, log)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, "up", log); err != nil {
			return err
		}
	}

	app, err := newApplication(cfg, log, db, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
