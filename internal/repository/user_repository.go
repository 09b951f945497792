package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"department-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	PromoteFirstUser(ctx context.Context) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (email, password_hash, name, role, student_id, institution, major)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role,
		user.StudentID, user.Institution, user.Major,
	).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// PromoteFirstUser flips the earliest-created user to the admin role. Used by
// the bootstrap-admin subcommand only; there is no HTTP route for it.
func (r *postgresUserRepository) PromoteFirstUser(ctx context.Context) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users SET role = 'admin', updated_at = now()
		WHERE id = (SELECT id FROM users ORDER BY created_at ASC LIMIT 1)
		RETURNING *
	`
	err := r.db.GetContext(ctx, &user, query)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)

	if err != nil {
		return 0, err
	}

	return count, nil
}
