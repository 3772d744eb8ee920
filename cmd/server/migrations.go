package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/todo-microservices/task-service/internal/platform/postgres"
)

// runMigrations executes a goose command using the migrations embedded in
// the postgres package.
func runMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	log.Info("executing migrations", slog.String("command", command))
	return postgres.Migrate(ctx, db, command, log)
}
