package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/observe"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

const logPreviewLen = 200

// Analyze validates the input, makes exactly one model call and returns the
// scored result. Only validation errors and model failures (wrapping
// domain.ErrUnavailable) are returned; unusable model output yields an
// empty correction list.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*domain.FeedbackResult, error) {
	start := time.Now()
	lang := s.language(input.TargetLanguage)

	if err := input.Validate(s.cfg.MaxTextLength); err != nil {
		s.metrics.RecordAnalysis(ctx, lang, observe.OutcomeInvalid, time.Since(start))
		return nil, err
	}

	level := input.UserLevel
	if !level.IsValid() {
		level = s.cfg.DefaultLevel.OrDefault()
	}

	req := provider.CompletionRequest{
		System:      AnalyzerPrompt(lang),
		Prompt:      AnalysisRequest(input.Text, level, input.contextHint(s.cfg.MaxContextLength)),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxOutputTokens,
	}

	resp, err := s.complete(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "feedback generation failed",
			slog.String("language", lang.String()),
			slog.String("error", err.Error()),
		)
		s.metrics.RecordAnalysis(ctx, lang, observe.OutcomeUnavailable, time.Since(start))
		return nil, fmt.Errorf("feedback.Analyze: %w: %w", domain.ErrUnavailable, err)
	}

	parsed := parseCorrections(resp.Text, input.Text)
	if parsed.Malformed {
		s.log.WarnContext(ctx, "model output is not a JSON array",
			slog.String("output", preview(resp.Text)),
		)
		s.metrics.MalformedOutputs.Add(ctx, 1)
	}
	if parsed.Dropped > 0 {
		s.log.WarnContext(ctx, "dropped invalid corrections",
			slog.Int("dropped", parsed.Dropped),
			slog.Int("kept", len(parsed.Corrections)),
		)
		s.metrics.DroppedCorrections.Add(ctx, int64(parsed.Dropped))
	}

	corrections := parsed.Corrections
	if corrections == nil {
		corrections = []domain.Correction{}
	}

	result := &domain.FeedbackResult{
		Original:     input.Text,
		Corrections:  corrections,
		OverallScore: Score(corrections),
		Summary:      Summary(corrections),
	}
	s.metrics.RecordCorrections(ctx, result.Corrections)

	if id, ok := input.messageID(); ok {
		s.annotate(ctx, id, result)
	}

	s.metrics.RecordAnalysis(ctx, lang, observe.OutcomeOK, time.Since(start))
	s.log.InfoContext(ctx, "feedback generated",
		slog.String("language", lang.String()),
		slog.String("level", level.String()),
		slog.Int("corrections", len(result.Corrections)),
		slog.Int("score", result.OverallScore),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// language resolves the effective language: the requested one if supported,
// else the configured default, else the built-in default.
func (s *Service) language(requested domain.Language) domain.Language {
	if requested.IsValid() {
		return requested
	}
	if s.cfg.DefaultLanguage.IsValid() {
		return s.cfg.DefaultLanguage
	}
	return domain.DefaultLanguage
}

func (s *Service) complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.llm.Complete(ctx, req)
	s.metrics.RecordLLMCall(ctx, s.llm.Name(), err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= logPreviewLen {
		return s
	}
	return string([]rune(s)[:logPreviewLen]) + "..."
}
