package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema bootstraps all wardrobe tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS clothing_items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL UNIQUE,
	mime_type TEXT NOT NULL,
	tag_status TEXT NOT NULL,
	tag_error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS item_tags (
	id BIGSERIAL PRIMARY KEY,
	item_id TEXT NOT NULL REFERENCES clothing_items(id) ON DELETE CASCADE,
	dimension TEXT NOT NULL,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_item_tags_item ON item_tags(item_id);
CREATE INDEX IF NOT EXISTS idx_item_tags_dimension_value ON item_tags(dimension, value);

CREATE TABLE IF NOT EXISTS outfits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	occasion TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS outfit_items (
	outfit_id TEXT NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
	item_id TEXT NOT NULL REFERENCES clothing_items(id),
	position INT NOT NULL,
	PRIMARY KEY (outfit_id, position)
);

CREATE INDEX IF NOT EXISTS idx_outfit_items_item ON outfit_items(item_id);

CREATE TABLE IF NOT EXISTS user_requests (
	id TEXT PRIMARY KEY,
	occasion TEXT NOT NULL,
	preferences TEXT NOT NULL DEFAULT '',
	selected_ids JSONB NOT NULL DEFAULT '[]'::jsonb,
	succeeded BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_user_requests_created_at ON user_requests(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
