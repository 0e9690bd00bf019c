package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs functions inside a transaction carried by the context.
// A RunInTx call made with a context that already carries a transaction
// joins it instead of opening a second one, so services can compose
// transactional helpers freely.
type TxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager creates a TxManager using Read Committed, the PostgreSQL
// default. Read-then-write sequences rely on row locks (SELECT ... FOR
// UPDATE) rather than a stricter isolation level.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTx executes fn within a transaction. It commits when fn returns nil,
// rolls back when fn returns an error, and rolls back and re-panics when fn
// panics. Errors from a joined outer transaction are returned as is; the
// outer call decides the outcome.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if sentinel := domainError(err); sentinel != nil {
			return fmt.Errorf("commit transaction: %w: %w", sentinel, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
