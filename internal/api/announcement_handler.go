package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"department-service/internal/model"
	"department-service/internal/service"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	validate            *validator.Validate
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		validate:            validator.New(),
	}
}

type CreateAnnouncementRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=academic events deadlines general"`
	IsImportant bool   `json:"isImportant"`
}

type UpdateAnnouncementRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Category    *string `json:"category" validate:"omitempty,oneof=academic events deadlines general"`
	IsImportant *bool   `json:"isImportant"`
}

func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.announcementService.ListAnnouncements(c.Context())

	if err != nil {
		return failStore(c, "Error fetching announcements", err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"announcements": announcements,
	})
}

func (h *AnnouncementHandler) CreateAnnouncement(c *fiber.Ctx) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "Invalid user claims")
	}

	var request CreateAnnouncementRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	announcement := &model.Announcement{
		Title:       request.Title,
		Content:     request.Content,
		Category:    request.Category,
		IsImportant: request.IsImportant,
		Author:      claims.Email,
	}

	created, err := h.announcementService.CreateAnnouncement(c.Context(), announcement)

	if err != nil {
		return failStore(c, "Error creating announcement", err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Announcement created successfully",
		"announcement": created,
	})
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Announcement not found")
	}

	var request UpdateAnnouncementRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	update := service.AnnouncementUpdate{
		Title:       request.Title,
		Content:     request.Content,
		Category:    request.Category,
		IsImportant: request.IsImportant,
	}

	updated, err := h.announcementService.UpdateAnnouncement(c.Context(), announcementID, update)

	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return fail(c, fiber.StatusNotFound, CodeNotFound, "Announcement not found")
		}
		return failStore(c, "Error updating announcement", err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Announcement updated successfully",
		"announcement": updated,
	})
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Announcement not found")
	}

	err = h.announcementService.DeleteAnnouncement(c.Context(), announcementID)

	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return fail(c, fiber.StatusNotFound, CodeNotFound, "Announcement not found")
		}
		return failStore(c, "Error deleting announcement", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Announcement deleted successfully",
		"id":      announcementID,
	})
}
