// Package tx carries a SQL transaction through the context so store methods
// stay transaction-agnostic: RunInTx opens the transaction, every statement
// helper picks it up via From, and a cascading delete commits or rolls back
// as one unit.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx returns a context carrying the transaction. A nil tx is ignored.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts the transaction from the context, if one is running.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}
