package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/config"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
)

// InfoService answers the diagnostic root endpoint.
type InfoService struct {
	tx          txRunner
	repomanager repomanager.RepositoryManager
}

func NewInfoService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *InfoService {
	return &InfoService{
		tx:          txRunner{db: db, timeout: cfg.StoreTimeout},
		repomanager: m,
	}
}

func (s *InfoService) DBVersion(ctx context.Context) (string, error) {
	var version string
	err := s.tx.run(ctx, dbx.ReadOnly, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		version, err = s.repomanager.Meta(tx).ServerVersion(ctx)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("reading db version: %w", err)
	}
	return version, nil
}
