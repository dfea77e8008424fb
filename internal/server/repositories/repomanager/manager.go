package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/edora/internal/dbx"
	"github.com/dmitrijs2005/edora/internal/server/repositories/meta"
	"github.com/dmitrijs2005/edora/internal/server/repositories/subjects"
	"github.com/dmitrijs2005/edora/internal/server/repositories/themes"
)

// RepositoryManager vends repositories bound to a DBTX, so services can pick
// between the pool and an open transaction per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Subjects(db dbx.DBTX) subjects.Repository
	Themes(db dbx.DBTX) themes.Repository
	Meta(db dbx.DBTX) meta.Repository
}
