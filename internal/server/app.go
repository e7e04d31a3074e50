// Package server wires the jobtracker data-access layer together: it opens
// the PostgreSQL pool, optionally applies migrations and builds the user and
// application services that an outer request layer or the admin CLI calls.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/credentials"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Test seams.
var (
	sqlOpen        = sql.Open
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	users        *services.UserService
	applications *services.ApplicationService
}

// NewApp opens and pings the database, runs migrations when
// cfg.MigrateOnStart is set and constructs the services. The caller owns
// the returned App and must Close it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewZerologLogger(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	db, err := sqlOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	app := &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: newRepoManager(),
	}

	if cfg.MigrateOnStart {
		if err := app.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	store := credentials.NewBcryptStore(cfg.BcryptCost)
	app.users = services.NewUserService(db, app.repomanager, store, logger, cfg)
	app.applications = services.NewApplicationService(db, app.repomanager, logger)

	logger.Debug(ctx, "app initialised", "migrate_on_start", cfg.MigrateOnStart)
	return app, nil
}

// Migrate applies all pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	app.logger.Info(ctx, "applying migrations")
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}
	return nil
}

func (app *App) Users() *services.UserService {
	return app.users
}

func (app *App) Applications() *services.ApplicationService {
	return app.applications
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

// Close releases the connection pool.
func (app *App) Close() error {
	return app.db.Close()
}
