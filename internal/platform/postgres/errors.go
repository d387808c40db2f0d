package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/task-api/internal/store"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514"
	notNullViolationCode = "23502"
)

// MapError translates driver errors into store sentinel errors, keeping the
// original error in the chain. Errors without a mapping are returned as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint %s: %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s cannot be null: %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	}

	return err
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool { return hasCode(err, uniqueViolationCode) }

// IsCheckConstraintViolation reports whether err is a CHECK constraint violation.
func IsCheckConstraintViolation(err error) bool { return hasCode(err, checkViolationCode) }

// IsNotNullViolation reports whether err is a NOT NULL violation.
func IsNotNullViolation(err error) bool { return hasCode(err, notNullViolationCode) }

// CheckRowsAffected returns store.ErrNotFound when an UPDATE or DELETE
// touched no rows.
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if entityName == "" {
			return store.ErrNotFound
		}
		return fmt.Errorf("%w: %s not found", store.ErrNotFound, entityName)
	}

	return nil
}
