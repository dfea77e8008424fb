package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/config"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
)

// ThemeService manages themes. A theme's subject must exist at create and
// update time; the check runs in the same transaction as the write.
type ThemeService struct {
	tx          txRunner
	repomanager repomanager.RepositoryManager
}

func NewThemeService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ThemeService {
	return &ThemeService{
		tx:          txRunner{db: db, timeout: cfg.StoreTimeout},
		repomanager: m,
	}
}

func (s *ThemeService) List(ctx context.Context) ([]*models.Theme, error) {
	var result []*models.Theme
	err := s.tx.run(ctx, dbx.ReadOnly, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Themes(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	return result, nil
}

// Create fails with common.ErrSubjectReferenceNotFound when theme.SubjectID
// does not resolve.
func (s *ThemeService) Create(ctx context.Context, theme *models.Theme) (*models.Theme, error) {
	var created *models.Theme
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.requireSubject(ctx, tx, theme.SubjectID); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Themes(tx).Create(ctx, &models.Theme{
			SubjectID: theme.SubjectID,
			Title:     theme.Title,
			Content:   theme.Content,
			Tags:      theme.Tags,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating theme: %w", err)
	}
	return created, nil
}

// Update checks the theme first, then the new subject, then overwrites
// subject_id, title, content and tags.
func (s *ThemeService) Update(ctx context.Context, id int64, theme *models.Theme) error {
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Themes(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		if err := s.requireSubject(ctx, tx, theme.SubjectID); err != nil {
			return err
		}
		return repo.Update(ctx, &models.Theme{
			ID:        id,
			SubjectID: theme.SubjectID,
			Title:     theme.Title,
			Content:   theme.Content,
			Tags:      theme.Tags,
		})
	})
	if err != nil {
		return fmt.Errorf("updating theme %d: %w", id, err)
	}
	return nil
}

func (s *ThemeService) Delete(ctx context.Context, id int64) error {
	err := s.tx.run(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Themes(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting theme %d: %w", id, err)
	}
	return nil
}

func (s *ThemeService) requireSubject(ctx context.Context, tx dbx.DBTX, subjectID int64) error {
	_, err := s.repomanager.Subjects(tx).Get(ctx, subjectID)
	if errors.Is(err, common.ErrSubjectNotFound) {
		return common.ErrSubjectReferenceNotFound
	}
	return err
}
