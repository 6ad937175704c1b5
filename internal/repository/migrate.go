package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY,
	username      text NOT NULL,
	email         text NOT NULL,
	password_hash text NOT NULL,
	friends       uuid[] NOT NULL DEFAULT '{}',
	thoughts      uuid[] NOT NULL DEFAULT '{}',
	created_at    timestamptz NOT NULL,
	CONSTRAINT users_username_key UNIQUE (username),
	CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS thoughts (
	id           uuid PRIMARY KEY,
	thought_text text NOT NULL,
	username     text NOT NULL,
	reactions    jsonb NOT NULL DEFAULT '[]',
	created_at   timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS thoughts_username_idx ON thoughts (username);
CREATE INDEX IF NOT EXISTS thoughts_created_at_idx ON thoughts (created_at DESC);
`

// Migrate creates the two collections if they do not exist yet. It is
// idempotent and runs at every startup.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
