package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS assets (
    name       TEXT PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    data       BLOB NOT NULL,
    mime       TEXT NOT NULL,
    thumb      BLOB,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS clothing_items (
    id         TEXT PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    name       TEXT NOT NULL,
    image_url  TEXT NOT NULL,
    asset_name TEXT REFERENCES assets(name),
    category   TEXT NOT NULL DEFAULT 'uncategorized'
               CHECK (category IN ('uncategorized', 'tops', 'bottoms', 'dresses', 'outerwear', 'shoes', 'accessories')),
    color      TEXT NOT NULL DEFAULT '',
    style      TEXT NOT NULL DEFAULT ''
               CHECK (style IN ('', 'casual', 'formal', 'traditional', 'beachwear')),
    tags       TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_clothing_items_user_created
    ON clothing_items(user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
