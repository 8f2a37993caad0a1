package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	embedded, err := readMigrationFiles(migrationFiles)
	if err != nil {
		t.Fatalf("readMigrationFiles: %v", err)
	}
	if count != len(embedded) {
		t.Fatalf("recorded %d migrations, want %d", count, len(embedded))
	}

	if _, err := db.Exec(`SELECT id, content_hash FROM palette_documents`); err != nil {
		t.Fatalf("palette_documents missing: %v", err)
	}
}

func TestReadMigrationFilesOrdersAndSkips(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/010_later.sql":  {Data: []byte("SELECT 1")},
		"sql/002_first.sql":  {Data: []byte("SELECT 2")},
		"sql/notes.sql":      {Data: []byte("SELECT 3")},
		"sql/003_readme.txt": {Data: []byte("ignored")},
	}

	got, err := readMigrationFiles(fsys)
	if err != nil {
		t.Fatalf("readMigrationFiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 migrations, got %+v", got)
	}
	if got[0].Version != 2 || got[0].Name != "first" || got[1].Version != 10 || got[1].Name != "later" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
