package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	StudentID    *string   `db:"student_id" json:"studentId,omitempty"`
	Institution  *string   `db:"institution" json:"institution,omitempty"`
	Major        *string   `db:"major" json:"major,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
