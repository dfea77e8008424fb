// Package meta answers diagnostic questions about the backing database.
package meta

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/dbx"
)

type Repository interface {
	ServerVersion(ctx context.Context) (string, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ServerVersion returns the PostgreSQL version banner.
func (r *PostgresRepository) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := r.db.QueryRowContext(ctx, `SELECT version()`).Scan(&version); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return version, nil
}
