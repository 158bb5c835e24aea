package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crée les tables et index (idempotent), comme le ferait une
// migration au démarrage. En prod, un outil de migration dédié prendrait le relais.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			link          TEXT NOT NULL DEFAULT '',
			profile_img   TEXT NOT NULL DEFAULT '',
			cover_img     TEXT NOT NULL DEFAULT '',
			following     TEXT[] NOT NULL DEFAULT '{}',
			followers     TEXT[] NOT NULL DEFAULT '{}',
			liked_posts   TEXT[] NOT NULL DEFAULT '{}',
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			author_id  TEXT NOT NULL,
			text       TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL DEFAULT '',
			likes      TEXT[] NOT NULL DEFAULT '{}',
			comments   JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts (author_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id         TEXT PRIMARY KEY,
			from_id    TEXT NOT NULL,
			to_id      TEXT NOT NULL,
			kind       TEXT NOT NULL,
			post_id    TEXT NOT NULL DEFAULT '',
			read       BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_to_created ON notifications (to_id, created_at DESC)`,
	}

	for _, q := range ddl {
		if _, err := db.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
