package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// annotate appends the result as a language-feedback part to the stored
// message. Best effort: failures are logged and counted, never returned.
func (s *Service) annotate(ctx context.Context, messageID uuid.UUID, result *domain.FeedbackResult) {
	if s.messages == nil {
		s.log.DebugContext(ctx, "message store not configured, feedback not attached",
			slog.String("message_id", messageID.String()),
		)
		return
	}

	if err := s.attach(ctx, messageID, result); err != nil {
		s.log.WarnContext(ctx, "attach feedback to message failed",
			slog.String("message_id", messageID.String()),
			slog.String("error", err.Error()),
		)
		s.metrics.AnnotationFailures.Add(ctx, 1)
		return
	}

	s.log.DebugContext(ctx, "feedback attached to message",
		slog.String("message_id", messageID.String()),
	)
}

func (s *Service) attach(ctx context.Context, messageID uuid.UUID, result *domain.FeedbackResult) error {
	part, err := domain.NewFeedbackPart(*result)
	if err != nil {
		return err
	}

	return s.runInTx(ctx, func(ctx context.Context) error {
		msg, err := s.messages.GetByID(ctx, messageID)
		if err != nil {
			return fmt.Errorf("get message: %w", err)
		}

		parts := append(slices.Clone(msg.Parts), part)
		if err := s.messages.UpdateParts(ctx, messageID, parts); err != nil {
			return fmt.Errorf("update message parts: %w", err)
		}
		return nil
	})
}

func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}
