// Package sqlite persists meetings in a SQLite database.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/example/meetingbook/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Storage bundles the connection pool with the repositories built on top of it.
type Storage struct {
	pool     *ConnectionPool
	Meetings *MeetingRepository
}

// Open connects to the database described by config and applies pending migrations.
func Open(ctx context.Context, config migration.SQLiteConfig, logger *slog.Logger) (*Storage, error) {
	pool, err := NewConnectionPool(config)
	if err != nil {
		return nil, err
	}

	manager := migration.NewMigrationManager(
		migration.NewFileScanner(migrationsFS),
		migration.NewSQLiteExecutor(pool.DB()),
		migrationsDir,
		logger,
	)
	if err := manager.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sqlite: apply migrations: %w", err)
	}

	return &Storage{
		pool:     pool,
		Meetings: NewMeetingRepository(pool),
	}, nil
}

// Close releases the underlying connections.
func (s *Storage) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}
