// Package server wires configuration, storage and the HTTP API together
// and runs them until the process is signaled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/edora/internal/logging"
	"github.com/dmitrijs2005/edora/internal/server/auth"
	"github.com/dmitrijs2005/edora/internal/server/config"
	"github.com/dmitrijs2005/edora/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/edora/internal/server/rest"
	"github.com/dmitrijs2005/edora/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

const (
	defaultPingAttempts = 5
	defaultPingBackoff  = 500 * time.Millisecond
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	handler     *rest.Handler

	pingAttempts uint64
	pingBackoff  time.Duration
}

// NewApp builds the object graph. No connection is made until Run.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(cfg, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {

	admin, err := newAdmin(cfg)
	if err != nil {
		return nil, fmt.Errorf("admin credential: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)

	h := rest.NewHandler(rest.Deps{
		Logger:         logger,
		Subjects:       services.NewSubjectService(db, rm, cfg),
		Themes:         services.NewThemeService(db, rm, cfg),
		Auth:           services.NewAuthService(admin, tokens, cfg.AccessTokenValidityDuration),
		Info:           services.NewInfoService(db, rm, cfg),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		repomanager:  rm,
		handler:      h,
		pingAttempts: defaultPingAttempts,
		pingBackoff:  defaultPingBackoff,
	}, nil
}

// newAdmin prefers a configured bcrypt hash over the plaintext password.
func newAdmin(cfg *config.Config) (*auth.Admin, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.NewAdmin(cfg.AdminUsername, cfg.AdminPasswordHash)
	}
	return auth.NewAdminFromPassword(cfg.AdminUsername, cfg.AdminPassword)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// waitForDB pings the database with exponential backoff.
func (app *App) waitForDB(ctx context.Context) error {
	backoff := retry.WithMaxRetries(app.pingAttempts, retry.NewExponential(app.pingBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.handler.Router(), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run connects, migrates and serves until ctx is done or a signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing db", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.waitForDB(ctx); err != nil {
		return fmt.Errorf("db connect: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return runErr
}
