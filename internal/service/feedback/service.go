package feedback

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/observe"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type completer interface {
	Name() string
	Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error)
}

type messageRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	UpdateParts(ctx context.Context, id uuid.UUID, parts []domain.MessagePart) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service turns learner text into scored, position-indexed corrections.
// It holds no per-call state; Analyze may be called concurrently.
type Service struct {
	log      *slog.Logger
	llm      completer
	messages messageRepo
	tx       txManager
	metrics  *observe.Metrics
	cfg      Config
}

// Config carries the limits and sampling parameters of the service.
type Config struct {
	MaxTextLength    int
	MaxContextLength int
	DefaultLanguage  domain.Language
	DefaultLevel     domain.UserLevel
	Temperature      float64
	MaxOutputTokens  int
	// Timeout bounds the model call. Zero means no bound beyond ctx.
	Timeout time.Duration
}

// ConfigFrom builds a Config from the application sections.
func ConfigFrom(fb config.FeedbackConfig, llm config.LLMConfig) Config {
	return Config{
		MaxTextLength:    fb.MaxTextLength,
		MaxContextLength: fb.MaxContextLength,
		DefaultLanguage:  domain.Language(fb.DefaultLanguage),
		DefaultLevel:     domain.UserLevel(fb.DefaultLevel),
		Temperature:      llm.Temperature,
		MaxOutputTokens:  llm.MaxOutputTokens,
		Timeout:          llm.Timeout,
	}
}

// NewService creates a feedback service. messages and tx may be nil, in
// which case results are never attached to stored messages.
func NewService(
	logger *slog.Logger,
	llm completer,
	messages messageRepo,
	tx txManager,
	metrics *observe.Metrics,
	cfg Config,
) *Service {
	if metrics == nil {
		metrics = observe.Nop()
	}
	return &Service{
		log:      logger.With("service", "feedback"),
		llm:      llm,
		messages: messages,
		tx:       tx,
		metrics:  metrics,
		cfg:      cfg,
	}
}
