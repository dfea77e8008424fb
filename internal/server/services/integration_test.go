//go:build integration

package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/edora/internal/common"
	"github.com/dmitrijs2005/edora/internal/server/models"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("edora_test"),
		postgres.WithUsername("edora"),
		postgres.WithPassword("edora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db))
	return db
}

func TestIntegration_SubjectsAndThemes(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	rm := repomanager.NewPostgresRepositoryManager()
	cfg := testConfig()

	subjects := NewSubjectService(db, rm, cfg)
	themes := NewThemeService(db, rm, cfg)
	info := NewInfoService(db, rm, cfg)

	v, err := info.DBVersion(ctx)
	require.NoError(t, err)
	assert.Contains(t, v, "PostgreSQL")

	math, err := subjects.Create(ctx, &models.Subject{Name: "Math", Tags: "stem"})
	require.NoError(t, err)

	_, err = themes.Create(ctx, &models.Theme{SubjectID: 9999, Title: "X", Content: "Y", Tags: "z"})
	require.ErrorIs(t, err, common.ErrSubjectReferenceNotFound)

	fractions, err := themes.Create(ctx, &models.Theme{SubjectID: math.ID, Title: "Fractions"})
	require.NoError(t, err)

	require.NoError(t, subjects.Update(ctx, math.ID, &models.Subject{Name: "Mathematics"}))
	require.ErrorIs(t, subjects.Update(ctx, math.ID+100, &models.Subject{Name: "X"}), common.ErrSubjectNotFound)

	require.ErrorIs(t,
		themes.Update(ctx, fractions.ID, &models.Theme{SubjectID: 9999, Title: "T"}),
		common.ErrSubjectReferenceNotFound)

	list, err := subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mathematics", list[0].Name)
	assert.Equal(t, "", list[0].Tags)

	require.NoError(t, subjects.Delete(ctx, math.ID))

	remaining, err := themes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining, "themes must cascade with their subject")

	require.ErrorIs(t, themes.Delete(ctx, fractions.ID), common.ErrThemeNotFound)
}
