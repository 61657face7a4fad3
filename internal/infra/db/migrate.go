package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the stories and votes tables. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS stories (
    id         SERIAL PRIMARY KEY,
    title      TEXT NOT NULL,
    url        TEXT NOT NULL UNIQUE,
    score      INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create stories: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS votes (
    id         SERIAL PRIMARY KEY,
    story_id   INTEGER NOT NULL REFERENCES stories(id),
    direction  CHAR(1) NOT NULL CHECK (direction IN ('u', 'd')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create votes: %w", err)
	}

	indexes := []string{
		// DELETE FROM votes WHERE story_id = $1
		`CREATE INDEX IF NOT EXISTS idx_votes_story_id ON votes(story_id)`,
		// デフォルトの並び順
		`CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	// pg_trgm は権限がない環境もあるためエラーを無視
	_, _ = db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_stories_title_gin ON stories USING gin(title gin_trgm_ops)`)

	return nil
}

// MigrateDown drops the schema created by MigrateUp, votes first.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS votes`,
		`DROP TABLE IF EXISTS stories`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
