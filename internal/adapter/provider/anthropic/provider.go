// Package anthropic implements the text generation port on the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

const defaultMaxTokens = 1500

// Provider calls Claude models through the official SDK.
type Provider struct {
	client anthropicsdk.Client
	model  string
	log    *slog.Logger
}

// New creates a Provider. baseURL may be empty to use the public endpoint.
// Extra request options are appended after the key and base URL.
func New(apiKey, model, baseURL string, logger *slog.Logger, opts ...option.RequestOption) *Provider {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Provider{
		client: anthropicsdk.NewClient(reqOpts...),
		model:  model,
		log:    logger.With("adapter", "anthropic"),
	}
}

// Name returns "anthropic".
func (p *Provider) Name() string { return "anthropic" }

// Model returns the configured model identifier.
func (p *Provider) Model() string { return p.model }

// Complete sends one message and returns the first text block of the reply.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error) {
	start := time.Now()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature != 0 {
		params.Temperature = anthropicsdk.Float(req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: messages.new: %w", err)
	}

	result := &provider.CompletionResult{
		Model:            p.model,
		PromptTokens:     int(msg.Usage.InputTokens),
		CompletionTokens: int(msg.Usage.OutputTokens),
	}

	found := false
	for _, block := range msg.Content {
		if block.Type == "text" {
			result.Text = block.Text
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("anthropic: no text content in response")
	}

	p.log.DebugContext(ctx, "completion done",
		slog.String("model", p.model),
		slog.Int("prompt_tokens", result.PromptTokens),
		slog.Int("completion_tokens", result.CompletionTokens),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}
