package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the table the reference API server stores events in.
// event_date holds the date string as entered.
const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	event_date TEXT NOT NULL,
	title      TEXT NOT NULL,
	speaker    TEXT NOT NULL,
	host       TEXT NOT NULL,
	published  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates the events table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate events table: %w", err)
	}
	return nil
}
