// Package subjects provides the PostgreSQL-backed subject repository.
package subjects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Subject, error) {
	query := `SELECT id, name, tags FROM subject ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Subject, 0)
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Tags); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// Get returns common.ErrSubjectNotFound when no row has the given id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT id, name, tags FROM subject WHERE id = $1`

	s := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Tags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Create inserts the subject and fills in the id assigned by the database.
func (r *PostgresRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query :=
		`INSERT INTO subject (name, tags)
		 VALUES ($1, $2)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, subject.Name, subject.Tags).Scan(&subject.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return subject, nil
}

func (r *PostgresRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `UPDATE subject SET name = $1, tags = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, subject.Name, subject.Tags, subject.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the subject; themes referencing it go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM subject WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrSubjectNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
