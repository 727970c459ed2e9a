package db

import (
	"path/filepath"
	"testing"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "wardrobe.sqlite3"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	for i := range 2 {
		if err := EnsureSchema(database); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	var n int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'clothing_items', 'assets', 'settings', 'revoked_tokens')`,
	).Scan(&n)
	if err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 tables, got %d", n)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO clothing_items (id, user_id, name, image_url) VALUES ('x', 999, 'Ghost', '/assets/x.jpg')`,
	)
	if err == nil {
		t.Error("expected foreign key violation for unknown user")
	}
}
