package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/wardrobe/internal/model"
)

// NewItem holds the fields for creating a clothing item.
type NewItem struct {
	UserID    int64
	Name      string
	ImageURL  string
	AssetName string
	Category  string
	Color     string
	Style     string
	Tags      []string
}

// ItemUpdate holds the editable fields of a clothing item.
type ItemUpdate struct {
	Name     string
	Category string
	Color    string
	Style    string
	Tags     []string
}

// ItemFilter narrows ListItems. Empty fields match everything.
type ItemFilter struct {
	Category string
	Color    string
	Style    string
	Tag      string
	Search   string
}

const itemColumns = `id, user_id, name, image_url, category, color, style, tags, created_at, updated_at`

// CreateItem inserts a new clothing item with a fresh ID.
func CreateItem(ctx context.Context, db *sql.DB, n NewItem) (*model.ClothingItem, error) {
	if n.Category == "" {
		n.Category = model.CategoryUncategorized
	}
	tags, err := json.Marshal(model.NormalizeTags(n.Tags))
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	var assetName any
	if n.AssetName != "" {
		assetName = n.AssetName
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx,
		`INSERT INTO clothing_items (id, user_id, name, image_url, asset_name, category, color, style, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, n.UserID, n.Name, n.ImageURL, assetName, n.Category, strings.TrimSpace(n.Color), n.Style, string(tags), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, n.UserID, id)
}

// GetItem returns one of a user's items by ID.
func GetItem(ctx context.Context, db *sql.DB, userID int64, id string) (*model.ClothingItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns a user's items matching the filter, newest first.
func ListItems(ctx context.Context, db *sql.DB, userID int64, f ItemFilter) ([]model.ClothingItem, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Color != "" {
		where = append(where, "color = ? COLLATE NOCASE")
		args = append(args, strings.TrimSpace(f.Color))
	}
	if f.Style != "" {
		where = append(where, "style = ?")
		args = append(args, f.Style)
	}
	if tag := model.NormalizeTags([]string{f.Tag}); len(tag) == 1 {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(clothing_items.tags) WHERE json_each.value = ?)")
		args = append(args, tag[0])
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		where = append(where,
			`(name LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM json_each(clothing_items.tags) WHERE json_each.value LIKE ? ESCAPE '\'))`)
		args = append(args, pattern, pattern)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY created_at DESC, rowid DESC`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's metadata. Returns ErrNotFound if the user has no such item.
func UpdateItem(ctx context.Context, db *sql.DB, userID int64, id string, u ItemUpdate) error {
	tags, err := json.Marshal(model.NormalizeTags(u.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE clothing_items SET name = ?, category = ?, color = ?, style = ?, tags = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		u.Name, u.Category, strings.TrimSpace(u.Color), u.Style, string(tags), time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item and its uploaded image.
// Returns ErrNotFound if the user has no such item.
func DeleteItem(ctx context.Context, db *sql.DB, userID int64, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var assetName sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT asset_name FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&assetName)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("getting item asset: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if assetName.Valid {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE name = ?`, assetName.String); err != nil {
			return fmt.Errorf("deleting item asset: %w", err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.ClothingItem, error) {
	item := &model.ClothingItem{}
	var tags string
	if err := s.Scan(&item.ID, &item.UserID, &item.Name, &item.ImageURL, &item.Category,
		&item.Color, &item.Style, &tags, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item, nil
}

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
