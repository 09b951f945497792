package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Date        time.Time `db:"date" json:"date"`
	Location    string    `db:"location" json:"location"`
	ImageURL    *string   `db:"image_url" json:"image,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
