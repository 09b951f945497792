package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAnnouncementsTable, downCreateAnnouncementsTable)
}

func upCreateAnnouncementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE announcements (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title TEXT NOT NULL,
	  content TEXT NOT NULL,
	  category TEXT NOT NULL CHECK (category IN ('academic', 'events', 'deadlines', 'general')),
	  is_important BOOLEAN NOT NULL DEFAULT false,
	  author TEXT NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateAnnouncementsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS announcements;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
