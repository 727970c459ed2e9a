package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erazemk/wardrobe/internal/db"
	"github.com/erazemk/wardrobe/internal/model"
)

func newUser(t *testing.T, database *sql.DB, email string) int64 {
	t.Helper()
	u, err := CreateUser(context.Background(), database, email, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	item, err := CreateItem(ctx, database, NewItem{
		UserID:   userID,
		Name:     "Blue Shirt",
		ImageURL: "/assets/a.jpg",
		Tags:     []string{"Cotton", "cotton", " summer "},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated ID")
	}
	if item.Category != model.CategoryUncategorized {
		t.Errorf("expected category 'uncategorized', got %q", item.Category)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "cotton" || item.Tags[1] != "summer" {
		t.Errorf("expected normalized tags [cotton summer], got %v", item.Tags)
	}

	got, err := GetItem(ctx, database, userID, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Name != "Blue Shirt" {
		t.Errorf("expected 'Blue Shirt', got %+v", got)
	}
}

func TestGetItemScopedToUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ana := newUser(t, database, "ana@example.com")
	bob := newUser(t, database, "bob@example.com")

	item, _ := CreateItem(ctx, database, NewItem{UserID: ana, Name: "Scarf", ImageURL: "/x"})

	got, err := GetItem(ctx, database, bob, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Error("expected another user's item to be invisible")
	}

	items, _ := ListItems(ctx, database, bob, ItemFilter{})
	if len(items) != 0 {
		t.Errorf("expected 0 items for bob, got %d", len(items))
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	for _, name := range []string{"first", "second", "third"} {
		if _, err := CreateItem(ctx, database, NewItem{UserID: userID, Name: name, ImageURL: "/x"}); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	items, err := ListItems(ctx, database, userID, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "third" || items[2].Name != "first" {
		t.Errorf("expected newest first, got %s, %s, %s", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	CreateItem(ctx, database, NewItem{UserID: userID, Name: "Blue Shirt", ImageURL: "/x",
		Category: model.CategoryTops, Color: "Blue", Style: model.StyleCasual, Tags: []string{"cotton"}})
	CreateItem(ctx, database, NewItem{UserID: userID, Name: "Red Dress", ImageURL: "/x",
		Category: model.CategoryDresses, Color: "red", Style: model.StyleFormal, Tags: []string{"silk", "party"}})
	CreateItem(ctx, database, NewItem{UserID: userID, Name: "Sandals", ImageURL: "/x",
		Category: model.CategoryShoes, Style: model.StyleBeachwear, Tags: []string{"100%_leather"}})

	tests := []struct {
		name   string
		filter ItemFilter
		want   int
	}{
		{"all", ItemFilter{}, 3},
		{"category", ItemFilter{Category: model.CategoryTops}, 1},
		{"color case-insensitive", ItemFilter{Color: "BLUE"}, 1},
		{"style", ItemFilter{Style: model.StyleFormal}, 1},
		{"tag", ItemFilter{Tag: "Party"}, 1},
		{"unknown tag", ItemFilter{Tag: "wool"}, 0},
		{"search name", ItemFilter{Search: "shirt"}, 1},
		{"search tag", ItemFilter{Search: "sil"}, 1},
		{"search wildcard literal", ItemFilter{Search: "%_"}, 1},
		{"combined", ItemFilter{Category: model.CategoryDresses, Style: model.StyleCasual}, 0},
	}

	for _, tt := range tests {
		items, err := ListItems(ctx, database, userID, tt.filter)
		if err != nil {
			t.Fatalf("%s: ListItems: %v", tt.name, err)
		}
		if len(items) != tt.want {
			t.Errorf("%s: expected %d items, got %d", tt.name, tt.want, len(items))
		}
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	item, _ := CreateItem(ctx, database, NewItem{UserID: userID, Name: "shirt.jpg", ImageURL: "/x"})

	err := UpdateItem(ctx, database, userID, item.ID, ItemUpdate{
		Name:     "Linen Shirt",
		Category: model.CategoryTops,
		Color:    " white ",
		Style:    model.StyleCasual,
		Tags:     []string{"linen"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, userID, item.ID)
	if got.Name != "Linen Shirt" || got.Category != model.CategoryTops || got.Color != "white" {
		t.Errorf("unexpected item after update: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "linen" {
		t.Errorf("expected tags [linen], got %v", got.Tags)
	}

	err = UpdateItem(ctx, database, userID, "missing", ItemUpdate{Name: "x", Category: model.CategoryTops})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItemRemovesAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := newUser(t, database, "ana@example.com")

	if err := CreateAsset(ctx, database, userID, "a.jpg", []byte("img"), "image/jpeg", nil); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	item, _ := CreateItem(ctx, database, NewItem{UserID: userID, Name: "Coat", ImageURL: "/assets/a.jpg", AssetName: "a.jpg"})

	if err := DeleteItem(ctx, database, userID, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, userID, item.ID)
	if got != nil {
		t.Error("expected item to be deleted")
	}
	data, _, _ := GetAsset(ctx, database, "a.jpg", false)
	if data != nil {
		t.Error("expected asset to be deleted with its item")
	}

	if err := DeleteItem(ctx, database, userID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
