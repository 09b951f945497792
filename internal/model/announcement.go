package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement categories accepted by the API.
const (
	CategoryAcademic  = "academic"
	CategoryEvents    = "events"
	CategoryDeadlines = "deadlines"
	CategoryGeneral   = "general"
)

type Announcement struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	Category    string    `db:"category" json:"category"`
	IsImportant bool      `db:"is_important" json:"isImportant"`
	Author      string    `db:"author" json:"author"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
