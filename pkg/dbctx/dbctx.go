package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repositories fall back to their own handle when Tx is nil.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB

	afterCommit *[]func(context.Context)
}

// New returns a Context without a transaction.
func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// WithTx returns a Context bound to tx. Callbacks registered through
// AfterCommit are collected into hooks and must be run by the caller once the
// transaction has committed.
func WithTx(ctx context.Context, tx *gorm.DB, hooks *[]func(context.Context)) Context {
	return Context{Ctx: ctx, Tx: tx, afterCommit: hooks}
}

// DB returns the transaction when present, otherwise fallback, scoped to Ctx.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	if c.Ctx != nil {
		return db.WithContext(c.Ctx)
	}
	return db
}

// AfterCommit defers fn until the surrounding transaction commits. Outside a
// transaction fn runs immediately.
func (c Context) AfterCommit(fn func(context.Context)) {
	if fn == nil {
		return
	}
	if c.afterCommit == nil {
		fn(c.context())
		return
	}
	*c.afterCommit = append(*c.afterCommit, fn)
}

func (c Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
