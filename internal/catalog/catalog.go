// Package catalog is the wardrobe's item catalog: uploading photos as new
// items, listing them with filters, and editing or removing them.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/wardrobe/internal/imaging"
	"github.com/erazemk/wardrobe/internal/metrics"
	"github.com/erazemk/wardrobe/internal/model"
	"github.com/erazemk/wardrobe/internal/store"
)

// AssetPrefix is the public URL prefix for uploaded images.
const AssetPrefix = "/assets/"

// ErrInvalidImage wraps failures to read or decode an uploaded image.
var ErrInvalidImage = errors.New("invalid image")

// Catalog serves a user's clothing items.
type Catalog struct {
	DB *sql.DB
}

// Upload describes a new item created from an uploaded photo.
type Upload struct {
	UserID   int64
	Filename string
	Image    io.Reader
	Name     string
	Category string
	Color    string
	Style    string
	Tags     []string
}

// AssetURL returns the public URL of an uploaded image.
func AssetURL(name string) string {
	return AssetPrefix + name
}

// Add processes the uploaded image, stores it, and creates the item.
// If the item cannot be saved the stored image is removed again.
func (c *Catalog) Add(ctx context.Context, u Upload) (*model.ClothingItem, error) {
	result, err := imaging.Process(u.Image)
	if err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	assetName := uuid.NewString() + ".jpg"
	if err := store.CreateAsset(ctx, c.DB, u.UserID, assetName, result.Data, result.MIME, result.Thumb); err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		return nil, err
	}

	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = nameFromFilename(u.Filename)
	}

	item, err := store.CreateItem(ctx, c.DB, store.NewItem{
		UserID:    u.UserID,
		Name:      name,
		ImageURL:  AssetURL(assetName),
		AssetName: assetName,
		Category:  u.Category,
		Color:     u.Color,
		Style:     u.Style,
		Tags:      u.Tags,
	})
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		if cerr := store.DeleteAsset(ctx, c.DB, assetName); cerr != nil {
			slog.Error("failed to remove orphaned asset", "asset", assetName, "error", cerr)
		}
		return nil, err
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	slog.Info("item uploaded", "user_id", u.UserID, "item", item.ID, "name", item.Name)
	return item, nil
}

// List returns the user's items, newest first. The result is never nil.
func (c *Catalog) List(ctx context.Context, userID int64, f store.ItemFilter) ([]model.ClothingItem, error) {
	items, err := store.ListItems(ctx, c.DB, userID, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.ClothingItem{}
	}
	return items, nil
}

// Get returns one of the user's items, or nil if it does not exist.
func (c *Catalog) Get(ctx context.Context, userID int64, id string) (*model.ClothingItem, error) {
	return store.GetItem(ctx, c.DB, userID, id)
}

// Update edits an item's metadata and returns the updated item. An item
// deleted before it can be read back is reported as store.ErrNotFound.
func (c *Catalog) Update(ctx context.Context, userID int64, id string, u store.ItemUpdate) (*model.ClothingItem, error) {
	if err := store.UpdateItem(ctx, c.DB, userID, id, u); err != nil {
		return nil, err
	}
	item, err := store.GetItem(ctx, c.DB, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, store.ErrNotFound
	}
	return item, nil
}

// Delete removes an item and its image.
func (c *Catalog) Delete(ctx context.Context, userID int64, id string) error {
	if err := store.DeleteItem(ctx, c.DB, userID, id); err != nil {
		return err
	}
	slog.Info("item deleted", "user_id", userID, "item", id)
	return nil
}

// nameFromFilename derives a display name from an uploaded file's name.
func nameFromFilename(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "Untitled"
	}
	return name
}

// ParseTags splits a comma-separated tag list.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return model.NormalizeTags(strings.Split(s, ","))
}
