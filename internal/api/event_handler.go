package api

import (
	"errors"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"department-service/internal/model"
	"department-service/internal/s3"
	"department-service/internal/service"
)

type EventHandler struct {
	eventService service.EventService
	presigner    *s3.ImagePresigner
	validate     *validator.Validate
}

func NewEventHandler(eventService service.EventService, presigner *s3.ImagePresigner) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		presigner:    presigner,
		validate:     validator.New(),
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
	Image       *string   `json:"image"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Image       *string    `json:"image"`
	IsActive    *bool      `json:"isActive"`
}

// ListEvents is the public listing: active events only, soonest first.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	eventList, err := h.eventService.ListPublicEvents(c.Context())

	if err != nil {
		return failStore(c, "Error fetching events", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  eventList,
	})
}

// ListAllEvents is the admin listing and includes hidden events.
func (h *EventHandler) ListAllEvents(c *fiber.Ctx) error {
	eventList, err := h.eventService.ListAllEvents(c.Context())

	if err != nil {
		return failStore(c, "Error fetching events", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  eventList,
	})
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "Invalid user claims")
	}

	var request CreateEventRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	event := &model.Event{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Date:        request.Date,
		Location:    request.Location,
		ImageURL:    request.Image,
		// Attribution comes from the verified token, never the body.
		CreatedBy: claims.Email,
	}

	created, err := h.eventService.CreateEvent(c.Context(), event)

	if err != nil {
		return failStore(c, "Error creating event", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event created successfully",
		"event":   created,
	})
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Event not found")
	}

	var request UpdateEventRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	update := service.EventUpdate{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Date:        request.Date,
		Location:    request.Location,
		ImageURL:    request.Image,
		IsActive:    request.IsActive,
	}

	updated, err := h.eventService.UpdateEvent(c.Context(), eventID, update)

	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return fail(c, fiber.StatusNotFound, CodeNotFound, "Event not found")
		}
		return failStore(c, "Error updating event", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event updated successfully",
		"event":   updated,
	})
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Event not found")
	}

	err = h.eventService.DeleteEvent(c.Context(), eventID)

	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return fail(c, fiber.StatusNotFound, CodeNotFound, "Event not found")
		}
		return failStore(c, "Error deleting event", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted successfully",
		"id":      eventID,
	})
}

type UploadURLRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// GetImageUploadURL returns a presigned PUT URL; the client uploads the image
// directly to object storage and sends the final URL in the event body.
func (h *EventHandler) GetImageUploadURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Image uploads are not configured")
	}

	var request UploadURLRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, validationMessage(err))
	}

	objectKey := "events/" + uuid.New().String() + path.Ext(request.Filename)

	uploadURL, err := h.presigner.GeneratePresignedUploadURL(objectKey)
	if err != nil {
		return failStore(c, "Could not generate upload URL", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"uploadUrl": uploadURL,
		"imageUrl":  h.presigner.PublicURL(objectKey),
	})
}
