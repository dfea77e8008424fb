// Package themes provides the PostgreSQL-backed theme repository.
//
// The schema declares theme.subject_id as a foreign key with ON DELETE
// CASCADE. Services check the parent subject before writing, but if the
// parent disappears anyway the constraint violation is reported as
// common.ErrSubjectReferenceNotFound rather than a raw driver error.
package themes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Theme, error) {
	query := `SELECT id, subject_id, title, content, tags FROM theme ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Theme, 0)
	for rows.Next() {
		t := &models.Theme{}
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Title, &t.Content, &t.Tags); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Theme, error) {
	query := `SELECT id, subject_id, title, content, tags FROM theme WHERE id = $1`

	t := &models.Theme{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.SubjectID, &t.Title, &t.Content, &t.Tags)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrThemeNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	query :=
		`INSERT INTO theme (subject_id, title, content, tags)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		theme.SubjectID, theme.Title, theme.Content, theme.Tags).Scan(&theme.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}

	return theme, nil
}

func (r *PostgresRepository) Update(ctx context.Context, theme *models.Theme) error {
	query :=
		`UPDATE theme SET subject_id = $1, title = $2, content = $3, tags = $4
		 WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		theme.SubjectID, theme.Title, theme.Content, theme.Tags, theme.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM theme WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return common.ErrSubjectReferenceNotFound
	}
	return fmt.Errorf("db error: %w", err)
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
		return common.ErrThemeNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
