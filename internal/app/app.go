package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	chatrepo "github.com/heartmarshall/langcoach-backend/internal/adapter/postgres/chat"
	"github.com/heartmarshall/langcoach-backend/internal/adapter/postgres/message"
	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/internal/observe"
	"github.com/heartmarshall/langcoach-backend/internal/service/chat"
	"github.com/heartmarshall/langcoach-backend/internal/service/feedback"
	"github.com/heartmarshall/langcoach-backend/internal/transport/middleware"
	"github.com/heartmarshall/langcoach-backend/internal/transport/rest"
	"github.com/heartmarshall/langcoach-backend/migrations"
)

// Run is the application entry point. It wires configuration, logging,
// metrics, the model backend, optional storage and the HTTP server, then
// serves until ctx is cancelled and shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
	)

	metrics := observe.Nop()
	if cfg.Metrics.Enabled {
		m, shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    cfg.Metrics.ServiceName,
			ServiceVersion: Version,
		})
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		metrics = m
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics shutdown", slog.String("error", err.Error()))
			}
		}()
	}

	backend, err := NewModelBackend(cfg.LLM, logger)
	if err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = openDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
	} else {
		logger.Warn("database not configured, feedback will not be attached to messages")
	}

	handler, cleanup := NewHandler(cfg, logger, metrics, backend, pool)
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// NewHandler assembles services, handlers and the middleware chain. pool may
// be nil, in which case feedback is never persisted and chat routes answer
// 503. The returned cleanup stops background workers.
func NewHandler(
	cfg *config.Config,
	logger *slog.Logger,
	metrics *observe.Metrics,
	backend *ModelBackend,
	pool *pgxpool.Pool,
) (http.Handler, func()) {
	fbCfg := feedback.ConfigFrom(cfg.Feedback, cfg.LLM)

	var (
		feedbackSvc *feedback.Service
		chatHandler *rest.ChatHandler
		health      *rest.HealthHandler
	)
	if pool != nil {
		tx := postgres.NewTxManager(pool)
		feedbackSvc = feedback.NewService(logger, backend.Completer, message.New(pool), tx, metrics, fbCfg)
		chatSvc := chat.NewService(logger, chatrepo.New(pool), tx)
		chatHandler = rest.NewChatHandler(chatSvc, logger)
		health = rest.NewHealthHandler(pool, backend.Checker, Version)
	} else {
		feedbackSvc = feedback.NewService(logger, backend.Completer, nil, nil, metrics, fbCfg)
		health = rest.NewHealthHandler(nil, backend.Checker, Version)
	}

	handlers := rest.Handlers{
		Feedback: rest.NewFeedbackHandler(feedbackSvc, logger),
		Chat:     chatHandler,
		Health:   health,
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = observe.Handler()
	}
	mux := rest.NewRouter(handlers)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.Metrics(metrics),
		middleware.CORS(cfg.CORS),
	}

	cleanup := func() {}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		mws = append(mws, middleware.ForPrefix("/api/feedback", rl.Limit(cfg.RateLimit.FeedbackPerMin)))
		cleanup = rl.Stop
	}

	return middleware.Chain(mws...)(mux), cleanup
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DSN, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// serve runs srv until ctx is done, then drains in-flight requests for at
// most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
