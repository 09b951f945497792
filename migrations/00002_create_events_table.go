package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEventsTable, downCreateEventsTable)
}

func upCreateEventsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE events (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title TEXT NOT NULL,
	  description TEXT NOT NULL DEFAULT '',
	  category TEXT NOT NULL DEFAULT '',
	  date TIMESTAMP WITH TIME ZONE NOT NULL,
	  location TEXT NOT NULL DEFAULT '',
	  image_url TEXT,
	  is_active BOOLEAN NOT NULL DEFAULT true,
	  created_by TEXT NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX idx_events_active_date ON events (is_active, date);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateEventsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS events;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
