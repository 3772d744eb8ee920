package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/todo-microservices/task-service/internal/api"
	"github.com/todo-microservices/task-service/internal/api/middleware"
	"github.com/todo-microservices/task-service/internal/config"
	"github.com/todo-microservices/task-service/internal/platform/postgres"
	"github.com/todo-microservices/task-service/internal/platform/userservice"
	"github.com/todo-microservices/task-service/internal/service"
	"github.com/todo-microservices/task-service/internal/store"
)

// pinger is the part of *sql.DB the health check needs.
type pinger interface {
	PingContext(ctx context.Context) error
}

// application holds the shared dependencies of the running service.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     pinger

	registry    *prometheus.Registry
	metrics     *middleware.HTTPMetrics
	taskStore   store.TaskStore
	taskService service.TaskService
	taskHandler *api.TaskHandler
}

// newApplication creates the stores, clients, services and handlers on top
// of an already connected database.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	registry *prometheus.Registry,
) (*application, error) {
	users, err := userservice.NewClient(cfg.UserService.URL, logger,
		userservice.WithTimeout(cfg.UserService.Timeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to create user service client: %w", err)
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "tasks"),
	)

	return assembleApplication(cfg, logger, db, postgres.NewPostgresTaskStore(db, logger), users, registry)
}

// assembleApplication wires the service layer from its parts. Tests use it
// directly with in-memory stores and fake user checkers.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db pinger,
	tasks store.TaskStore,
	users service.UserChecker,
	registry *prometheus.Registry,
) (*application, error) {
	metrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}

	taskService, err := service.NewTaskService(tasks, users, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		registry:    registry,
		metrics:     metrics,
		taskStore:   tasks,
		taskService: taskService,
		taskHandler: api.NewTaskHandler(taskService, logger),
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
