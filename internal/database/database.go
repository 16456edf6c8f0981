package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"mellow/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

const (
	connectAttempts = 10
	connectBackoff  = time.Second
)

// Open connects to the configured store. Postgres gets a few attempts
// because it may still be starting next to us; SQLite is a local file.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DatabaseDriver, err)
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		// single writer avoids "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	attempts := 1
	if cfg.DatabaseDriver == config.DriverPostgres {
		attempts = connectAttempts
	}

	for i := 1; ; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		if i >= attempts {
			db.Close()
			return nil, fmt.Errorf("connect %s: %w", cfg.DatabaseDriver, err)
		}
		logger.Warn("Waiting for database",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	logger.Info("Connected to database", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// Migrate applies the embedded migrations for driver.
func Migrate(db *sql.DB, driver string) error {
	var (
		instance migratedb.Driver
		err      error
	)
	switch driver {
	case config.DriverSQLite:
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, instance)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	// m is not closed: closing it closes db as well.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
