package app

import (
	"context"
	"fmt"
	"log/slog"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/heartmarshall/langcoach-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/langcoach-backend/internal/adapter/provider/anyllm"
	"github.com/heartmarshall/langcoach-backend/internal/adapter/provider/ollama"
	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

// Completer is a text generation backend.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error)
}

// HealthChecker probes a text generation backend.
type HealthChecker interface {
	Check(ctx context.Context) provider.HealthStatus
}

// ModelBackend pairs the configured completer with its health probe.
type ModelBackend struct {
	Completer Completer
	Checker   HealthChecker
}

// NewModelBackend builds the completer selected by cfg.Provider.
// Ollama is probed through its HTTP API; hosted backends report a static
// healthy status.
func NewModelBackend(cfg config.LLMConfig, logger *slog.Logger) (*ModelBackend, error) {
	switch cfg.Provider {
	case "anthropic":
		return &ModelBackend{
			Completer: anthropic.New(cfg.APIKey, cfg.Model, cfg.BaseURL, logger),
			Checker:   provider.StaticChecker{Service: "anthropic", Models: []string{cfg.Model}},
		}, nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = ollama.DefaultBaseURL
		}
		p, err := anyllm.New(cfg.Provider, cfg.Model, logger, anyllmlib.WithBaseURL(baseURL))
		if err != nil {
			return nil, fmt.Errorf("app.NewModelBackend: %w", err)
		}
		return &ModelBackend{Completer: p, Checker: ollama.NewChecker(baseURL, logger)}, nil

	default:
		var opts []anyllmlib.Option
		if cfg.APIKey != "" {
			opts = append(opts, anyllmlib.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anyllmlib.WithBaseURL(cfg.BaseURL))
		}
		p, err := anyllm.New(cfg.Provider, cfg.Model, logger, opts...)
		if err != nil {
			return nil, fmt.Errorf("app.NewModelBackend: %w", err)
		}
		return &ModelBackend{
			Completer: p,
			Checker:   provider.StaticChecker{Service: p.Name(), Models: []string{cfg.Model}},
		}, nil
	}
}
