package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes to the domain errors they stand for.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"22P02": domain.ErrValidation,    // invalid_text_representation
	"22001": domain.ErrValidation,    // string_data_right_truncation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
}

// domainError returns the domain sentinel err stands for, or nil.
func domainError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgCodeErrors[pgErr.Code]
	}
	return nil
}

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity name and id. Context errors are wrapped but not mapped.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if sentinel := domainError(err); sentinel != nil {
		return fmt.Errorf("%s %s: %w", entity, id, sentinel)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
