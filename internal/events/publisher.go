package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"department-service/internal/model"
)

// Publisher notifies interested consumers (digest mailers, campus displays)
// about new records. Publishing is best-effort and never blocks a request.
type Publisher interface {
	PublishEventCreated(event *model.Event) error
	PublishAnnouncementCreated(announcement *model.Announcement) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (Publisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type EventCreated struct {
	EventType string    `json:"event_type"`
	EventID   uuid.UUID `json:"event_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
}

type AnnouncementCreated struct {
	EventType      string    `json:"event_type"`
	AnnouncementID uuid.UUID `json:"announcement_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	IsImportant    bool      `json:"is_important"`
	Author         string    `json:"author"`
}

func (p *NatsPublisher) PublishEventCreated(event *model.Event) error {
	msg := EventCreated{
		EventType: "department.event.created",
		EventID:   event.ID,
		Title:     event.Title,
		Category:  event.Category,
		Date:      event.Date,
		CreatedBy: event.CreatedBy,
	}

	return p.publish("department.event.created", msg)
}

func (p *NatsPublisher) PublishAnnouncementCreated(announcement *model.Announcement) error {
	msg := AnnouncementCreated{
		EventType:      "department.announcement.created",
		AnnouncementID: announcement.ID,
		Title:          announcement.Title,
		Category:       announcement.Category,
		IsImportant:    announcement.IsImportant,
		Author:         announcement.Author,
	}

	return p.publish("department.announcement.created", msg)
}

func (p *NatsPublisher) publish(subject string, msg any) error {
	payload, err := json.Marshal(msg)

	if err != nil {
		slog.Error("Error marshalling event payload", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	return nil
}

// NoopPublisher is used when no broker is configured (tests, local dev).
type NoopPublisher struct{}

func (NoopPublisher) PublishEventCreated(*model.Event) error               { return nil }
func (NoopPublisher) PublishAnnouncementCreated(*model.Announcement) error { return nil }
