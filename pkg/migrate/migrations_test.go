package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestMigrationsCoverCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		all.Write(b)
	}

	text := all.String()
	for _, fragment := range []string{
		"CREATE TABLE stores",
		"CREATE TABLE bookings",
		"idx_stores_store_slug",
		"idx_bookings_store_id",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected migrations to contain %q", fragment)
		}
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Store Views!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_store_views.sql") {
		t.Fatalf("unexpected migration filename %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatalf("expected error for name with no usable characters")
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	body := []byte("-- +goose Up\n-- +goose Down\n")
	for _, name := range []string{"20250101000000_first.sql", "20250101000000_second.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestValidateDirRejectsDownBeforeUp(t *testing.T) {
	dir := t.TempDir()
	body := []byte("-- +goose Down\n-- +goose Up\n")
	if err := os.WriteFile(filepath.Join(dir, "20250101000000_backwards.sql"), body, 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected direction-order error")
	}
}
