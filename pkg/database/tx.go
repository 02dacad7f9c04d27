package database

import (
	"context"

	"anoa.com/kitaplik/pkg/dbctx"
	"gorm.io/gorm"
)

// TxRunner provides the transaction boundary for engine writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner returns a transaction runner backed by GORM transactions.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

// InTx runs fn inside a single transaction. Store failures are translated into
// engine error kinds; after-commit hooks only run when the commit succeeded.
func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	var hooks []func(context.Context)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.WithTx(ctx, tx, &hooks))
	})
	if err != nil {
		return TranslateError(err)
	}
	for _, hook := range hooks {
		hook(ctx)
	}
	return nil
}
