package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedChat creates a chat with the given target language and no scenario.
func SeedChat(t *testing.T, pool *pgxpool.Pool, lang domain.Language) domain.Chat {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	chat := domain.Chat{
		ID:             uuid.New(),
		Title:          "Test chat " + uniqueSuffix(),
		TargetLanguage: lang,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO chats (id, title, target_language, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		chat.ID, chat.Title, string(chat.TargetLanguage), chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChat insert: %v", err)
	}

	return chat
}

// SeedMessage creates a user message with a single text part in the given chat.
func SeedMessage(t *testing.T, pool *pgxpool.Pool, chatID uuid.UUID, text string) domain.Message {
	t.Helper()

	msg := domain.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		Role:      domain.MessageRoleUser,
		Parts:     []domain.MessagePart{{Type: domain.PartTypeText, Text: text}},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	parts, err := json.Marshal(msg.Parts)
	if err != nil {
		t.Fatalf("testhelper: SeedMessage marshal parts: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO messages (id, chat_id, role, parts, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.ChatID, string(msg.Role), parts, msg.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMessage insert: %v", err)
	}

	return msg
}
