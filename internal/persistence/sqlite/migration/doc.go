// Package migration applies versioned SQL schema changes to SQLite databases.
//
// Migrations are read from an fs.FS, usually an embedded directory, and must be
// named {version}_{description}.sql (e.g. "001_create_meetings.sql"). Applied
// versions are tracked in a schema_migrations table so each file runs once.
//
// Example usage:
//
//	manager := NewMigrationManager(NewFileScanner(migrationsFS), NewSQLiteExecutor(db), "migrations", logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return fmt.Errorf("migrate: %w", err)
//	}
package migration
