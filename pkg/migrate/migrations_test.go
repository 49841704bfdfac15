package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations directory failed validation: %v", err)
	}
}

func TestQuoteTablesMigrationShape(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var quoteSQL string
	for _, e := range entries {
		if strings.Contains(e.Name(), "quote_requests") {
			b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
			if err != nil {
				t.Fatalf("read migration: %v", err)
			}
			quoteSQL = string(b)
		}
	}
	if quoteSQL == "" {
		t.Fatal("quote_requests migration not found")
	}

	for _, want := range []string{
		"CREATE TABLE quote_requests",
		"CREATE TABLE quote_request_items",
		"REFERENCES quote_requests(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
	} {
		if !strings.Contains(quoteSQL, want) {
			t.Fatalf("quote migration missing %q", want)
		}
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to fail validation")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Product Tags")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created migration: %v", err)
	}
	if !strings.Contains(string(b), "-- +goose Up") {
		t.Fatalf("template missing goose header: %s", b)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}
