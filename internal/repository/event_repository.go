package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"department-service/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListActive(ctx context.Context) ([]model.Event, error)
	ListAll(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

type postgresEventRepository struct {
	db *sqlx.DB
}

func NewPostgresEventRepository(db *sqlx.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (title, description, category, date, location, image_url, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		event.Title, event.Description, event.Category, event.Date,
		event.Location, event.ImageURL, event.IsActive, event.CreatedBy,
	)
	err := row.Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return event, nil
}

func (r *postgresEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	query := `SELECT * FROM events WHERE id = $1`
	err := r.db.GetContext(ctx, &event, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &event, nil
}

// ListActive is the public listing: hidden events are filtered out.
func (r *postgresEventRepository) ListActive(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	query := `SELECT * FROM events WHERE is_active = true ORDER BY date ASC`
	err := r.db.SelectContext(ctx, &events, query)

	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *postgresEventRepository) ListAll(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	query := `SELECT * FROM events ORDER BY date ASC`
	err := r.db.SelectContext(ctx, &events, query)

	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, date = $5,
		    location = $6, image_url = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		event.ID, event.Title, event.Description, event.Category,
		event.Date, event.Location, event.ImageURL, event.IsActive,
	)
	err := row.Scan(&event.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return event, nil
}

func (r *postgresEventRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *postgresEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`)

	if err != nil {
		return 0, err
	}

	return count, nil
}
