package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

const postsSchema = `
	CREATE TABLE IF NOT EXISTS posts (
		id               BIGSERIAL PRIMARY KEY,
		title            VARCHAR(200) NOT NULL,
		content          TEXT NOT NULL,
		platform         VARCHAR(50) NOT NULL,
		status           VARCHAR(20) NOT NULL DEFAULT 'draft',
		scheduled_time   TIMESTAMPTZ NULL,
		engagement_score INTEGER NOT NULL DEFAULT 0,
		image_url        VARCHAR(500) NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC, id DESC);
`

// EnsureSchema creates the posts table and its listing index if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, postsSchema); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
