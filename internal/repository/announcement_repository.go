package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"department-service/internal/model"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	List(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

type postgresAnnouncementRepository struct {
	db *sqlx.DB
}

func NewPostgresAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

func (r *postgresAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error) {
	query := `
		INSERT INTO announcements (title, content, category, is_important, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		announcement.Title, announcement.Content, announcement.Category,
		announcement.IsImportant, announcement.Author,
	)
	err := row.Scan(&announcement.ID, &announcement.CreatedAt, &announcement.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return announcement, nil
}

func (r *postgresAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var announcement model.Announcement
	query := `SELECT * FROM announcements WHERE id = $1`
	err := r.db.GetContext(ctx, &announcement, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &announcement, nil
}

func (r *postgresAnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	announcements := []model.Announcement{}
	query := `SELECT * FROM announcements ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &announcements, query)

	if err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *postgresAnnouncementRepository) Update(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error) {
	query := `
		UPDATE announcements
		SET title = $2, content = $3, category = $4, is_important = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		announcement.ID, announcement.Title, announcement.Content,
		announcement.Category, announcement.IsImportant,
	)
	err := row.Scan(&announcement.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return announcement, nil
}

func (r *postgresAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *postgresAnnouncementRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM announcements`)

	if err != nil {
		return 0, err
	}

	return count, nil
}
