package store

import (
	"context"
	"testing"

	"github.com/erazemk/wardrobe/internal/db"
)

func TestAssetRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	err := CreateAsset(ctx, database, userID, "shirt.jpg", []byte("full"), "image/jpeg", []byte("small"))
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	data, mime, err := GetAsset(ctx, database, "shirt.jpg", false)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if string(data) != "full" {
		t.Errorf("expected full image, got %q", data)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	thumb, _, _ := GetAsset(ctx, database, "shirt.jpg", true)
	if string(thumb) != "small" {
		t.Errorf("expected thumbnail, got %q", thumb)
	}
}

func TestAssetThumbFallsBackToFull(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	CreateAsset(ctx, database, userID, "a.jpg", []byte("full"), "image/jpeg", nil)

	data, _, _ := GetAsset(ctx, database, "a.jpg", true)
	if string(data) != "full" {
		t.Errorf("expected full image when no thumbnail, got %q", data)
	}
}

func TestDeleteAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	CreateAsset(ctx, database, userID, "a.jpg", []byte("x"), "image/jpeg", nil)
	if err := DeleteAsset(ctx, database, "a.jpg"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if err := DeleteAsset(ctx, database, "a.jpg"); err != nil {
		t.Fatalf("DeleteAsset on missing asset: %v", err)
	}

	data, mime, err := GetAsset(ctx, database, "a.jpg", false)
	if err != nil || data != nil || mime != "" {
		t.Errorf("expected missing asset, got data=%q mime=%q err=%v", data, mime, err)
	}
}
