package api

import (
	"github.com/gofiber/fiber/v2"

	"department-service/internal/service"
)

type StatsHandler struct {
	authService         service.AuthService
	eventService        service.EventService
	announcementService service.AnnouncementService
}

func NewStatsHandler(auth service.AuthService, events service.EventService, announcements service.AnnouncementService) *StatsHandler {
	return &StatsHandler{
		authService:         auth,
		eventService:        events,
		announcementService: announcements,
	}
}

// GetStats reports record counts per collection, the admin dashboard's
// health check.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	userCount, err := h.authService.CountUsers(c.Context())
	if err != nil {
		return failStore(c, "Database stats failed", err)
	}

	eventCount, err := h.eventService.CountEvents(c.Context())
	if err != nil {
		return failStore(c, "Database stats failed", err)
	}

	announcementCount, err := h.announcementService.CountAnnouncements(c.Context())
	if err != nil {
		return failStore(c, "Database stats failed", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Database connection successful!",
		"stats": fiber.Map{
			"users":         userCount,
			"events":        eventCount,
			"announcements": announcementCount,
		},
	})
}
