package store

import (
	"context"
	"testing"

	"github.com/erazemk/wardrobe/internal/db"
)

func TestGetJWTSecretGeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestEnsureSettingKeepsFirstValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, ok, err := GetSetting(ctx, database, "greeting"); err != nil || ok {
		t.Fatalf("GetSetting on empty db: ok=%v err=%v", ok, err)
	}

	got, err := EnsureSetting(ctx, database, "greeting", "hello")
	if err != nil {
		t.Fatalf("EnsureSetting: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}

	got, _ = EnsureSetting(ctx, database, "greeting", "bye")
	if got != "hello" {
		t.Errorf("expected first value to win, got %q", got)
	}
}
