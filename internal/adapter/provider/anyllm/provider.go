// Package anyllm implements the text generation port on top of any-llm-go,
// which speaks to Ollama, OpenAI-compatible servers and several hosted APIs
// through one interface.
package anyllm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/deepseek"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/groq"
	"github.com/mozilla-ai/any-llm-go/providers/llamacpp"
	"github.com/mozilla-ai/any-llm-go/providers/llamafile"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

// SupportedBackends lists the backend names accepted by New.
var SupportedBackends = []string{
	"ollama", "openai", "gemini", "mistral", "groq", "deepseek", "llamacpp", "llamafile",
}

// Provider completes prompts through a single any-llm-go backend.
type Provider struct {
	backend anyllmlib.Provider
	name    string
	model   string
	log     *slog.Logger
}

// New creates a Provider for the named backend. Options carry the API key and
// base URL; backends that need neither (local Ollama) accept none.
func New(name, model string, logger *slog.Logger, opts ...anyllmlib.Option) (*Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("anyllm: backend name must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("anyllm: model must not be empty")
	}

	backend, err := createBackend(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("anyllm: create %q backend: %w", name, err)
	}

	return &Provider{
		backend: backend,
		name:    strings.ToLower(name),
		model:   model,
		log:     logger.With("adapter", "anyllm", "backend", strings.ToLower(name)),
	}, nil
}

func createBackend(name string, opts ...anyllmlib.Option) (anyllmlib.Provider, error) {
	switch strings.ToLower(name) {
	case "ollama":
		return ollama.New(opts...)
	case "openai":
		return anyllmoai.New(opts...)
	case "gemini":
		return gemini.New(opts...)
	case "mistral":
		return mistral.New(opts...)
	case "groq":
		return groq.New(opts...)
	case "deepseek":
		return deepseek.New(opts...)
	case "llamacpp":
		return llamacpp.New(opts...)
	case "llamafile":
		return llamafile.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported backend %q; supported: %s", name, strings.Join(SupportedBackends, ", "))
	}
}

// Name returns the backend name, e.g. "ollama".
func (p *Provider) Name() string { return p.name }

// Model returns the configured model identifier.
func (p *Provider) Model() string { return p.model }

// Complete sends one non-streaming completion request.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error) {
	start := time.Now()

	resp, err := p.backend.Completion(ctx, p.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("anyllm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("anyllm: empty choices in response")
	}

	result := &provider.CompletionResult{
		Text:  resp.Choices[0].Message.ContentString(),
		Model: p.model,
	}
	if resp.Usage != nil {
		result.PromptTokens = resp.Usage.PromptTokens
		result.CompletionTokens = resp.Usage.CompletionTokens
	}

	p.log.DebugContext(ctx, "completion done",
		slog.String("model", p.model),
		slog.Int("prompt_tokens", result.PromptTokens),
		slog.Int("completion_tokens", result.CompletionTokens),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (p *Provider) buildParams(req provider.CompletionRequest) anyllmlib.CompletionParams {
	var messages []anyllmlib.Message

	if req.System != "" {
		messages = append(messages, anyllmlib.Message{
			Role:    anyllmlib.RoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, anyllmlib.Message{
		Role:    anyllmlib.RoleUser,
		Content: req.Prompt,
	})

	params := anyllmlib.CompletionParams{
		Model:    p.model,
		Messages: messages,
	}

	if req.Temperature != 0 {
		t := req.Temperature
		params.Temperature = &t
	}
	if req.MaxTokens > 0 {
		mt := req.MaxTokens
		params.MaxTokens = &mt
	}

	return params
}
