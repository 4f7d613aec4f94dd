package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// SQLSTATE codes the repositories translate into domain errors.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

var pgCodeErrors = map[string]error{
	codeUniqueViolation:      domain.ErrAlreadyExists,
	codeForeignKeyViolation:  domain.ErrNotFound,
	codeCheckViolation:       domain.ErrValidation,
	codeNotNullViolation:     domain.ErrValidation,
	codeInvalidText:          domain.ErrValidation,
	codeSerializationFailure: domain.ErrConflict,
	codeDeadlockDetected:     domain.ErrConflict,
	codeLockNotAvailable:     domain.ErrConflict,
}

// MapError wraps a store error with the entity it concerns and, where the
// failure has a domain meaning, with the matching domain sentinel.
// Context cancellation is wrapped but never translated.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if target, ok := pgCodeErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %s (%s): %w", entity, id, pgErr.ConstraintName, target)
			}
			return fmt.Errorf("%s %s: %w", entity, id, target)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
