// Package services contains the server-side business logic. Every exported
// operation that touches the database runs in exactly one transaction,
// bounded by the configured store timeout: committed on success, rolled
// back on any error.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/edora/internal/dbx"
)

type txRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func (r txRunner) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return dbx.WithTx(ctx, r.db, opts, fn)
}
