package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/edora/internal/server/config"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

const (
	qSubjectGet    = `^SELECT id, name, tags FROM subject WHERE id = \$1$`
	qSubjectList   = `^SELECT id, name, tags FROM subject ORDER BY id$`
	qSubjectInsert = `^INSERT INTO subject \(name, tags\) VALUES \(\$1, \$2\) RETURNING id$`
	qSubjectUpdate = `^UPDATE subject SET name = \$1, tags = \$2 WHERE id = \$3$`
	qSubjectDelete = `^DELETE FROM subject WHERE id = \$1$`

	qThemeGet    = `^SELECT id, subject_id, title, content, tags FROM theme WHERE id = \$1$`
	qThemeList   = `^SELECT id, subject_id, title, content, tags FROM theme ORDER BY id$`
	qThemeInsert = `^INSERT INTO theme \(subject_id, title, content, tags\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id$`
	qThemeUpdate = `^UPDATE theme SET subject_id = \$1, title = \$2, content = \$3, tags = \$4 WHERE id = \$5$`
	qThemeDelete = `^DELETE FROM theme WHERE id = \$1$`
)

var (
	subjectCols = []string{"id", "name", "tags"}
	themeCols   = []string{"id", "subject_id", "title", "content", "tags"}
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{StoreTimeout: time.Second}
}

func newServices(t *testing.T) (*SubjectService, *ThemeService, *InfoService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	rm := repomanager.NewPostgresRepositoryManager()
	cfg := testConfig()
	return NewSubjectService(db, rm, cfg), NewThemeService(db, rm, cfg), NewInfoService(db, rm, cfg), mock
}
