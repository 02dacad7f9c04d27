package database

import (
	"errors"
	"fmt"
	"strings"

	"anoa.com/kitaplik/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TranslateError maps store failures onto engine error kinds. Errors that
// already carry a kind are returned untouched.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != "INTERNAL" || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", apperror.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return fmt.Errorf("%w: %w", gorm.ErrDuplicatedKey, err) // unique_violation
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %w", apperror.ErrTransactionAborted, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return fmt.Errorf("%w: %w", gorm.ErrDuplicatedKey, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"):
		return fmt.Errorf("%w: %w", apperror.ErrTransactionAborted, err)
	}
	return err
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(TranslateError(err), gorm.ErrDuplicatedKey)
}
