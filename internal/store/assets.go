package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateAsset stores an uploaded image and its thumbnail under name.
func CreateAsset(ctx context.Context, db *sql.DB, userID int64, name string, data []byte, mime string, thumb []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO assets (name, user_id, data, mime, thumb, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, userID, data, mime, thumb, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating asset: %w", err)
	}
	return nil
}

// GetAsset returns an asset's image data and MIME type. When thumb is true
// and a thumbnail exists, the thumbnail is returned instead.
func GetAsset(ctx context.Context, db *sql.DB, name string, thumb bool) ([]byte, string, error) {
	var data, thumbData []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT data, mime, thumb FROM assets WHERE name = ?`, name,
	).Scan(&data, &mime, &thumbData)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting asset: %w", err)
	}
	if thumb && len(thumbData) > 0 {
		return thumbData, mime, nil
	}
	return data, mime, nil
}

// DeleteAsset removes an asset. Deleting a missing asset is not an error.
func DeleteAsset(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM assets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}
