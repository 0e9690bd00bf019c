package testhelper

import (
	"context"
	"testing"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	chat := SeedChat(t, pool, domain.LanguageFrench)
	msg := SeedMessage(t, pool, chat.ID, "Je suis allé au magasin.")

	var lang string
	err := pool.QueryRow(context.Background(),
		`SELECT c.target_language FROM messages m JOIN chats c ON c.id = m.chat_id WHERE m.id = $1`,
		msg.ID,
	).Scan(&lang)
	if err != nil {
		t.Fatalf("expected message in DB, got error: %v", err)
	}

	if lang != string(domain.LanguageFrench) {
		t.Fatalf("expected target language %q, got %q", domain.LanguageFrench, lang)
	}
}
