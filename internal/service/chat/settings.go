package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/service/feedback"
)

// GetChat returns the chat with its current settings.
func (s *Service) GetChat(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("chatId", "required")
	}

	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("chat.GetChat: %w", err)
	}
	return chat, nil
}

// UpdateSettings changes the target language and/or scenario of a chat.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.Chat, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	upd := input.toUpdate()

	var updated *domain.Chat
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if upd.IsEmpty() {
			chat, err := s.chats.GetByID(txCtx, input.ChatID)
			if err != nil {
				return fmt.Errorf("get chat: %w", err)
			}
			updated = chat
			return nil
		}

		chat, err := s.chats.UpdateSettings(txCtx, input.ChatID, upd)
		if err != nil {
			return fmt.Errorf("update chat settings: %w", err)
		}
		updated = chat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "chat settings updated",
		slog.String("chat_id", input.ChatID.String()),
		slog.String("target_language", updated.TargetLanguage.String()),
		slog.Bool("scenario", updated.Scenario != nil),
	)

	return updated, nil
}

// SystemPrompt builds the conversation system prompt for the chat: the coach
// prompt in its target language, extended with the role-play scenario if set.
func (s *Service) SystemPrompt(ctx context.Context, id uuid.UUID) (string, error) {
	chat, err := s.GetChat(ctx, id)
	if err != nil {
		return "", err
	}
	return feedback.RolePlayPrompt(chat.Scenario, chat.TargetLanguage), nil
}
