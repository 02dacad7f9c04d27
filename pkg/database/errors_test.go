package database

import (
	"errors"
	"fmt"
	"testing"

	"anoa.com/kitaplik/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	notFound := TranslateError(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, notFound, apperror.ErrNotFound)

	serialization := TranslateError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
	assert.ErrorIs(t, serialization, apperror.ErrTransactionAborted)

	deadlock := TranslateError(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}))
	assert.ErrorIs(t, deadlock, apperror.ErrTransactionAborted)

	assert.True(t, IsDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicate(errors.New("UNIQUE constraint failed: user_badges.user_id")))
	assert.False(t, IsDuplicate(errors.New("boom")))

	kinded := fmt.Errorf("debit: %w", apperror.ErrInsufficientFunds)
	assert.Same(t, kinded, TranslateError(kinded))
}
