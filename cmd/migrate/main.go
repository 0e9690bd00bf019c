// Command migrate applies pending database migrations and exits. Use it when
// the server runs with DATABASE_AUTO_MIGRATE=false, for example as a deploy
// step ahead of rolling out new server instances.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langcoach-backend/internal/app"
	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if !cfg.Database.Enabled() {
		logger.Error("DATABASE_DSN is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations up to date", slog.Duration("duration", time.Since(start)))
}
