package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/meetingbook/internal/logging"
	"github.com/example/meetingbook/internal/persistence/sqlite"
	"github.com/example/meetingbook/internal/persistence/sqlite/migration"
)

// SQLiteHarness provides repository access backed by a migrated SQLite file for
// integration-style tests.
type SQLiteHarness struct {
	Path     string
	Meetings *sqlite.MeetingRepository

	storage *sqlite.Storage
}

// Close releases the underlying storage. It is safe to call more than once.
func (h *SQLiteHarness) Close() {
	if h != nil && h.storage != nil {
		_ = h.storage.Close()
		h.storage = nil
	}
}

// NewSQLiteHarness opens a fresh database in a temporary directory.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()
	return OpenSQLiteHarness(tb, filepath.Join(tb.TempDir(), "meetingbook.db"))
}

// OpenSQLiteHarness opens the database at path, applying migrations. The
// harness is closed automatically when tb finishes.
func OpenSQLiteHarness(tb testing.TB, path string) *SQLiteHarness {
	tb.Helper()

	storage, err := sqlite.Open(context.Background(), migration.DefaultSQLiteConfig(path), logging.Discard())
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	harness := &SQLiteHarness{Path: path, Meetings: storage.Meetings, storage: storage}
	tb.Cleanup(harness.Close)
	return harness
}
