package migration

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestFileScanner_ScanMigrations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		files         map[string]string
		expectedOrder []string
		expectError   error
	}{
		{
			name: "orders files by numeric version",
			files: map[string]string{
				"migrations/010_add_index.sql":       "CREATE INDEX idx ON meetings(title);",
				"migrations/002_add_attendees.sql":   "CREATE TABLE meeting_attendees (id TEXT);",
				"migrations/001_create_meetings.sql": "CREATE TABLE meetings (id TEXT PRIMARY KEY);",
				"migrations/README.md":               "not a migration",
			},
			expectedOrder: []string{"001", "002", "010"},
		},
		{
			name: "rejects duplicate versions",
			files: map[string]string{
				"migrations/001_first.sql":  "CREATE TABLE a (id TEXT);",
				"migrations/001_second.sql": "CREATE TABLE b (id TEXT);",
			},
			expectError: ErrDuplicateVersion,
		},
		{
			name: "rejects badly named files",
			files: map[string]string{
				"migrations/create meetings.sql": "CREATE TABLE a (id TEXT);",
			},
			expectError: ErrInvalidMigrationFile,
		},
		{
			name: "rejects comment only files",
			files: map[string]string{
				"migrations/001_empty.sql": "-- nothing here\n",
			},
			expectError: ErrInvalidMigrationFile,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{}
			for name, content := range tt.files {
				fsys[name] = &fstest.MapFile{Data: []byte(content)}
			}

			migrations, err := NewFileScanner(fsys).ScanMigrations("migrations")
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ScanMigrations returned error: %v", err)
			}
			if len(migrations) != len(tt.expectedOrder) {
				t.Fatalf("expected %d migrations, got %d", len(tt.expectedOrder), len(migrations))
			}
			for i, version := range tt.expectedOrder {
				if migrations[i].Version != version {
					t.Fatalf("expected version %s at %d, got %s", version, i, migrations[i].Version)
				}
				if migrations[i].Checksum == "" {
					t.Fatalf("expected checksum for %s", version)
				}
			}
		})
	}
}

func TestFileScanner_Description(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"m/001_create_meetings.sql": {Data: []byte("-- Description: Create meeting tables\nCREATE TABLE meetings (id TEXT);")},
		"m/002_add_index.sql":       {Data: []byte("CREATE INDEX idx ON meetings(id);")},
	}

	migrations, err := NewFileScanner(fsys).ScanMigrations("m")
	if err != nil {
		t.Fatalf("ScanMigrations returned error: %v", err)
	}
	if migrations[0].Description != "Create meeting tables" {
		t.Fatalf("expected description from comment, got %q", migrations[0].Description)
	}
	if migrations[1].Description != "add index" {
		t.Fatalf("expected description from filename, got %q", migrations[1].Description)
	}
}

func TestFileScanner_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewFileScanner(fstest.MapFS{}).ScanMigrations("missing")
	var mErr *MigrationError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MigrationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "read directory") {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	statements := splitStatements(`
		-- leading comment
		CREATE TABLE a (id TEXT);

		-- another
		CREATE TABLE b (id TEXT);
		;
	`)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(statements), statements)
	}
	if statements[0] != "CREATE TABLE a (id TEXT)" {
		t.Fatalf("unexpected first statement: %q", statements[0])
	}
}
