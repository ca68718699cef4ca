package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_indexes.sql", "CREATE INDEX x ON y(z);")
	writeFile(t, dir, "001_core.sql", "CREATE TABLE y (z INT);")
	writeFile(t, dir, "010_later.sql", "ALTER TABLE y ADD COLUMN w INT;")

	m := NewMigrator(nil, dir)
	migs, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 || migs[2].Version != 10 {
		t.Errorf("wrong order: %d, %d, %d", migs[0].Version, migs[1].Version, migs[2].Version)
	}
	if migs[0].SQL != "CREATE TABLE y (z INT);" {
		t.Errorf("SQL content not loaded: %q", migs[0].SQL)
	}
}

func TestLoadMigrations_SkipsNonNumeric(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_core.sql", "SELECT 1;")
	writeFile(t, dir, "README.md", "not a migration")
	writeFile(t, dir, "notes_draft.sql", "SELECT 2;")

	m := NewMigrator(nil, dir)
	migs, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 1 {
		t.Errorf("expected only the numbered sql file, got %d entries", len(migs))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Error("expected error for missing directory")
	}
}
