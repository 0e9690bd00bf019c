// Package chat implements the chat settings store using PostgreSQL.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

const table = "chats"

var columns = []string{"id", "title", "target_language", "scenario_id", "scenario_data", "created_at", "updated_at"}

// Repo provides chat persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new chat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a chat by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select chat: %w", err)
	}

	chat, err := scanChat(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "chat", id)
	}
	return chat, nil
}

// Create inserts a new chat. A zero ID, timestamps or language are filled in.
func (r *Repo) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	out := *chat
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.TargetLanguage == "" {
		out.TargetLanguage = domain.DefaultLanguage
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = out.CreatedAt
	}

	scenario, err := encodeScenario(out.Scenario)
	if err != nil {
		return nil, fmt.Errorf("chat %s: %w", out.ID, err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(out.ID, out.Title, string(out.TargetLanguage), out.ScenarioID, scenario, out.CreatedAt, out.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert chat: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return nil, postgres.MapError(err, "chat", out.ID)
	}
	return &out, nil
}

// UpdateSettings applies the non-nil fields of upd and returns the updated chat.
// Returns domain.ErrNotFound if the chat does not exist.
func (r *Repo) UpdateSettings(ctx context.Context, id uuid.UUID, upd domain.ChatSettingsUpdate) (*domain.Chat, error) {
	query := postgres.Builder().
		Update(table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if upd.TargetLanguage != nil {
		query = query.Set("target_language", string(*upd.TargetLanguage))
	}

	switch {
	case upd.ClearScenario:
		query = query.Set("scenario_id", nil).Set("scenario_data", nil)
	default:
		if upd.ScenarioID != nil {
			query = query.Set("scenario_id", *upd.ScenarioID)
		}
		if upd.Scenario != nil {
			scenario, err := encodeScenario(upd.Scenario)
			if err != nil {
				return nil, fmt.Errorf("chat %s: %w", id, err)
			}
			query = query.Set("scenario_data", scenario)
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update chat: %w", err)
	}

	chat, err := scanChat(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "chat", id)
	}
	return chat, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (*domain.Chat, error) {
	var (
		chat     domain.Chat
		lang     string
		scenario []byte
	)
	if err := row.Scan(&chat.ID, &chat.Title, &lang, &chat.ScenarioID, &scenario, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, err
	}
	chat.TargetLanguage = domain.Language(lang)

	if len(scenario) > 0 {
		var data domain.ScenarioData
		if err := json.Unmarshal(scenario, &data); err != nil {
			return nil, fmt.Errorf("decode scenario: %w", err)
		}
		chat.Scenario = &data
	}
	return &chat, nil
}

func encodeScenario(s *domain.ScenarioData) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	return raw, nil
}
