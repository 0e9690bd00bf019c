// Package message implements the chat message store using PostgreSQL.
// Message parts are stored as a single jsonb array, in order.
package message

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/langcoach-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

const table = "messages"

var columns = []string{"id", "chat_id", "role", "parts", "created_at"}

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new message repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a message by primary key. Inside a transaction the row
// is locked until commit, so a read-then-append does not lose parts
// written by a concurrent transaction.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})
	if postgres.InTx(ctx) {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select message: %w", err)
	}

	var (
		msg      domain.Message
		role     string
		rawParts []byte
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).
		Scan(&msg.ID, &msg.ChatID, &role, &rawParts, &msg.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "message", id)
	}

	msg.Role = domain.MessageRole(role)
	if err := json.Unmarshal(rawParts, &msg.Parts); err != nil {
		return nil, fmt.Errorf("message %s: decode parts: %w", id, err)
	}

	return &msg, nil
}

// ListByChat returns the messages of a chat in creation order.
func (r *Repo) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Message, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list messages: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var (
			msg      domain.Message
			role     string
			rawParts []byte
		)
		if err := rows.Scan(&msg.ID, &msg.ChatID, &role, &rawParts, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Role = domain.MessageRole(role)
		if err := json.Unmarshal(rawParts, &msg.Parts); err != nil {
			return nil, fmt.Errorf("message %s: decode parts: %w", msg.ID, err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return out, nil
}

// Create inserts a new message. A zero ID or CreatedAt is filled in.
func (r *Repo) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	out := *msg
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if out.Parts == nil {
		out.Parts = []domain.MessagePart{}
	}

	parts, err := json.Marshal(out.Parts)
	if err != nil {
		return nil, fmt.Errorf("message %s: encode parts: %w", out.ID, err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(out.ID, out.ChatID, string(out.Role), parts, out.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert message: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return nil, postgres.MapError(err, "message", out.ID)
	}

	return &out, nil
}

// UpdateParts replaces the parts of a message.
// Returns domain.ErrNotFound if the message does not exist.
func (r *Repo) UpdateParts(ctx context.Context, id uuid.UUID, parts []domain.MessagePart) error {
	if parts == nil {
		parts = []domain.MessagePart{}
	}
	raw, err := json.Marshal(parts)
	if err != nil {
		return fmt.Errorf("message %s: encode parts: %w", id, err)
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("parts", raw).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update message: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "message", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
