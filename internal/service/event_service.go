package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"department-service/internal/events"
	"department-service/internal/model"
	"department-service/internal/repository"
)

var ErrEventNotFound = errors.New("event not found")

type EventService interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	ListPublicEvents(ctx context.Context) ([]model.Event, error)
	ListAllEvents(ctx context.Context) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (*model.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	CountEvents(ctx context.Context) (int, error)
}

// EventUpdate carries the mutable fields of an event. Nil fields keep the
// stored value.
type EventUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Date        *time.Time
	Location    *string
	ImageURL    *string
	IsActive    *bool
}

type eventService struct {
	eventRepo repository.EventRepository
	publisher events.Publisher
}

func NewEventService(repo repository.EventRepository, pub events.Publisher) EventService {
	return &eventService{eventRepo: repo, publisher: pub}
}

func (s *eventService) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	// New events are always visible; hiding them is an admin edit.
	event.IsActive = true

	created, err := s.eventRepo.Create(ctx, event)

	if err != nil {
		return nil, err
	}

	go s.publisher.PublishEventCreated(created)

	return created, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.ListActive(ctx)
}

func (s *eventService) ListAllEvents(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.ListAll(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if event == nil {
		return nil, ErrEventNotFound
	}

	applyEventUpdate(event, update)

	updated, err := s.eventRepo.Update(ctx, event)

	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, ErrEventNotFound
	}

	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.eventRepo.Delete(ctx, id)

	if err != nil {
		return err
	}

	if !deleted {
		return ErrEventNotFound
	}

	return nil
}

func (s *eventService) CountEvents(ctx context.Context) (int, error) {
	return s.eventRepo.Count(ctx)
}

func applyEventUpdate(event *model.Event, update EventUpdate) {
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Category != nil {
		event.Category = *update.Category
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.ImageURL != nil {
		event.ImageURL = update.ImageURL
	}
	if update.IsActive != nil {
		event.IsActive = *update.IsActive
	}
}
