package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/config"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
)

// SubjectService manages subjects. Update and Delete check existence first
// and fail with common.ErrSubjectNotFound without touching the table.
type SubjectService struct {
	tx          txRunner
	repomanager repomanager.RepositoryManager
}

func NewSubjectService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SubjectService {
	return &SubjectService{
		tx:          txRunner{db: db, timeout: cfg.StoreTimeout},
		repomanager: m,
	}
}

func (s *SubjectService) List(ctx context.Context) ([]*models.Subject, error) {
	var result []*models.Subject
	err := s.tx.run(ctx, dbx.ReadOnly, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Subjects(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	return result, nil
}

// Create inserts subject; the returned value carries the store-assigned id.
func (s *SubjectService) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	var created *models.Subject
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Subjects(tx).Create(ctx, &models.Subject{Name: subject.Name, Tags: subject.Tags})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return created, nil
}

// Update overwrites name and tags of subject id.
func (s *SubjectService) Update(ctx context.Context, id int64, subject *models.Subject) error {
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Subjects(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Update(ctx, &models.Subject{ID: id, Name: subject.Name, Tags: subject.Tags})
	})
	if err != nil {
		return fmt.Errorf("updating subject %d: %w", id, err)
	}
	return nil
}

// Delete removes subject id together with all of its themes.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Subjects(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting subject %d: %w", id, err)
	}
	return nil
}
