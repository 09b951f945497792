package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"department-service/internal/events"
	"department-service/internal/model"
	"department-service/internal/repository"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id uuid.UUID, update AnnouncementUpdate) (*model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
	CountAnnouncements(ctx context.Context) (int, error)
}

type AnnouncementUpdate struct {
	Title       *string
	Content     *string
	Category    *string
	IsImportant *bool
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	publisher        events.Publisher
}

func NewAnnouncementService(repo repository.AnnouncementRepository, pub events.Publisher) AnnouncementService {
	return &announcementService{announcementRepo: repo, publisher: pub}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error) {
	created, err := s.announcementRepo.Create(ctx, announcement)

	if err != nil {
		return nil, err
	}

	go s.publisher.PublishAnnouncementCreated(created)

	return created, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return s.announcementRepo.List(ctx)
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id uuid.UUID, update AnnouncementUpdate) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}

	if update.Title != nil {
		announcement.Title = *update.Title
	}
	if update.Content != nil {
		announcement.Content = *update.Content
	}
	if update.Category != nil {
		announcement.Category = *update.Category
	}
	if update.IsImportant != nil {
		announcement.IsImportant = *update.IsImportant
	}

	updated, err := s.announcementRepo.Update(ctx, announcement)

	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, ErrAnnouncementNotFound
	}

	return updated, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.announcementRepo.Delete(ctx, id)

	if err != nil {
		return err
	}

	if !deleted {
		return ErrAnnouncementNotFound
	}

	return nil
}

func (s *announcementService) CountAnnouncements(ctx context.Context) (int, error) {
	return s.announcementRepo.Count(ctx)
}
