package api_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"department-service/internal/api"
	"department-service/internal/events"
	"department-service/internal/model"
	"department-service/internal/service"
	"department-service/internal/token"
)

type memoryEventRepo struct {
	byID map[uuid.UUID]*model.Event
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{byID: map[uuid.UUID]*model.Event{}}
}

func (m *memoryEventRepo) Create(_ context.Context, event *model.Event) (*model.Event, error) {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	m.byID[event.ID] = event
	return event, nil
}

func (m *memoryEventRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Event, error) {
	return m.byID[id], nil
}

func (m *memoryEventRepo) ListActive(_ context.Context) ([]model.Event, error) {
	result := []model.Event{}
	for _, e := range m.byID {
		if e.IsActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *memoryEventRepo) ListAll(_ context.Context) ([]model.Event, error) {
	result := []model.Event{}
	for _, e := range m.byID {
		result = append(result, *e)
	}
	return result, nil
}

func (m *memoryEventRepo) Update(_ context.Context, event *model.Event) (*model.Event, error) {
	if _, ok := m.byID[event.ID]; !ok {
		return nil, nil
	}
	m.byID[event.ID] = event
	return event, nil
}

func (m *memoryEventRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memoryEventRepo) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

func newEventApp(t *testing.T) (*fiber.App, *token.Manager) {
	t.Helper()

	tokens := token.NewManager("test-secret", time.Hour)
	eventService := service.NewEventService(newMemoryEventRepo(), events.NoopPublisher{})
	handler := api.NewEventHandler(eventService, nil)

	app := fiber.New()
	app.Get("/api/events", handler.ListEvents)
	app.Post("/api/events", api.RequireAuth(tokens), handler.CreateEvent)
	app.Put("/api/events/:id", api.RequireAdmin(tokens), handler.UpdateEvent)
	app.Delete("/api/events/:id", api.RequireAdmin(tokens), handler.DeleteEvent)
	app.Get("/api/admin/events", api.RequireAdmin(tokens), handler.ListAllEvents)

	return app, tokens
}

const eventBody = `{"title":"Open Day","description":"Campus tour","category":"general",` +
	`"date":"2026-10-01T10:00:00Z","location":"Main Hall"}`

func TestListEvents_Public(t *testing.T) {
	app, _ := newEventApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/events", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
}

func TestCreateEvent_RequiresToken(t *testing.T) {
	app, _ := newEventApp(t)

	req := httptest.NewRequest("POST", "/api/events", strings.NewReader(eventBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// The author comes from the verified token, not from whatever the client sends.
func TestCreateEvent_AttributesAuthorFromClaims(t *testing.T) {
	app, tokens := newEventApp(t)

	spoofed := `{"title":"Open Day","date":"2026-10-01T10:00:00Z","createdBy":"attacker@x.com"}`
	req := httptest.NewRequest("POST", "/api/events", strings.NewReader(spoofed))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleStudent))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	event := body["event"].(map[string]any)
	require.Equal(t, "a@x.com", event["createdBy"])
	require.Equal(t, true, event["isActive"])
}

// Spec scenario: a valid student token reaches the role check and is refused.
func TestUpdateEvent_StudentForbidden(t *testing.T) {
	app, tokens := newEventApp(t)

	req := httptest.NewRequest("PUT", "/api/events/"+uuid.NewString(),
		strings.NewReader(`{"title":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleStudent))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, api.CodeAuthorization, body["code"])
}

func TestDeleteEvent_Missing(t *testing.T) {
	app, tokens := newEventApp(t)

	req := httptest.NewRequest("DELETE", "/api/events/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, api.CodeNotFound, body["code"])
}

func TestUpdateEvent_Admin(t *testing.T) {
	app, tokens := newEventApp(t)

	req := httptest.NewRequest("POST", "/api/events", strings.NewReader(eventBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	created := decodeBody(t, resp)["event"].(map[string]any)

	req = httptest.NewRequest("PUT", "/api/events/"+created["id"].(string),
		strings.NewReader(`{"title":"Renamed","isActive":false}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleAdmin))

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decodeBody(t, resp)["event"].(map[string]any)
	require.Equal(t, "Renamed", updated["title"])
	require.Equal(t, false, updated["isActive"])
}
