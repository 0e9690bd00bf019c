package chat

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

type chatRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, upd domain.ChatSettingsUpdate) (*domain.Chat, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages per-chat coaching settings.
type Service struct {
	chats chatRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new chat settings service.
func NewService(log *slog.Logger, chats chatRepo, tx txManager) *Service {
	return &Service{
		chats: chats,
		tx:    tx,
		log:   log.With("service", "chat"),
	}
}
