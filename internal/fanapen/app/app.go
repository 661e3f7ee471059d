// Package app wires the configured storage driver and services together for
// the frontends and the maintenance CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MasFana/fanapen/internal/fanapen/service"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/internal/fanapen/store/drivers/sqlite"
	"github.com/MasFana/fanapen/internal/fanapen/store/drivers/surreal"
	"github.com/MasFana/fanapen/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application holds the data layer with all its dependencies initialized.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	Sessions     *service.SessionService
	Projects     *service.ProjectService
	Leaderboards *service.LeaderboardService
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fanapen",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.Sessions = &service.SessionService{Store: app.db}
	app.Projects = &service.ProjectService{Store: app.db}
	app.Leaderboards = &service.LeaderboardService{Store: app.db}

	return app, nil
}

func (app *Application) initDatabase() error {
	switch app.cfg.Driver {
	case "surreal":
		app.db = surreal.New(surreal.ConfigFromEnv(), surreal.WithLogger(app.logger))
	case "sqlite":
		db, err := sqlite.NewStore(app.cfg.DatabaseFile, sqlite.WithLogger(app.logger))
		if err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		app.db = db
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.Driver)
	}
	return nil
}

// Store exposes the raw store for callers the service layer does not cover.
func (app *Application) Store() store.Store { return app.db }

// Migrate brings the schema up to date. Idempotent.
func (app *Application) Migrate(ctx context.Context) error {
	if err := app.db.InitSchema(ctx); err != nil {
		return err
	}
	app.logger.Info("schema up to date", "driver", app.cfg.Driver)
	return nil
}

// Ping verifies the storage backend is reachable.
func (app *Application) Ping(ctx context.Context) error {
	return app.db.Ping(ctx)
}

func (app *Application) Close() error {
	return app.db.Close()
}
