// Package main implements the entry point for the task API server, which
// serves task management over REST and GraphQL behind bearer-token auth.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/camelcase/task-api/internal/config"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/platform/sqldb"
)

// options are the command-line flags.
type options struct {
	configPath string
	migrate    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("task-api", pflag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default ./config.yaml if present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, status, version) and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("task-api exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// HTTP until ctx is cancelled.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	if opts.migrate != "" {
		return runMigrationCommand(ctx, cfg, opts.migrate, log)
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil && cfg.Database.MigrateOnStart {
		dialect, _ := sqldb.ParseDialect(cfg.Database.Driver)
		if err := sqldb.Migrate(ctx, db, dialect, sqldb.MigrateUp, log); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	return app.startHTTPServer(ctx, router)
}
