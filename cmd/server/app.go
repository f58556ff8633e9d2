package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/camelcase/task-api/internal/config"
	"github.com/camelcase/task-api/internal/platform/memory"
	"github.com/camelcase/task-api/internal/platform/sqldb"
	"github.com/camelcase/task-api/internal/service"
	"github.com/camelcase/task-api/internal/service/auth"
	"github.com/camelcase/task-api/internal/store"
)

// application holds every constructed component. Construction is explicit:
// each dependency is built here, in order, and handed to its consumers.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry *prometheus.Registry

	tokenService auth.TokenService
	adminAccount *auth.AdminAccount
	taskStore    store.TaskStore
	taskService  service.TaskService
}

// newApplication wires the services. db is nil for the memory driver.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized", "token_lifetime", auth.TokenLifetime.String())

	app.adminAccount, err = auth.NewAdminAccount(cfg.Auth, auth.NewBcryptVerifier())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize admin account: %w", err)
	}

	var opts []service.Option
	if db == nil {
		app.taskStore = memory.NewTaskStore(logger)
		opts = append(opts, service.WithDefaults())
	} else {
		app.taskStore = sqldb.NewTaskStore(db, logger)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized",
		"admin_username", app.adminAccount.Username(),
		"store", fmt.Sprintf("%T", app.taskStore))
	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.logger.Info("Database connection closed")
}
