package api_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"department-service/internal/api"
	"department-service/internal/model"
	"department-service/internal/token"
)

func newGatedApp(t *testing.T, tokens *token.Manager) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/user-only", api.RequireAuth(tokens), func(c *fiber.Ctx) error {
		claims, err := api.ClaimsFromContext(c)
		require.NoError(t, err)
		return c.JSON(fiber.Map{"success": true, "email": claims.Email})
	})
	app.Get("/admin-only", api.RequireAdmin(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	return app
}

func issueToken(t *testing.T, tokens *token.Manager, role string) string {
	t.Helper()

	signed, err := tokens.Issue(&model.User{ID: uuid.New(), Email: "a@x.com", Role: role})
	require.NoError(t, err)
	return signed
}

func TestRequireAuth_NoToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	resp, err := app.Test(httptest.NewRequest("GET", "/user-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	req := httptest.NewRequest("GET", "/user-only", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	expired := issueToken(t, token.NewManager("test-secret", -time.Hour), model.RoleStudent)
	req := httptest.NewRequest("GET", "/user-only", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ValidStudentToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	req := httptest.NewRequest("GET", "/user-only", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleStudent))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// A student token is valid, so the admin gate must answer 403, not 401.
func TestRequireAdmin_StudentToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleStudent))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_AdminToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, model.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_NoToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	app := newGatedApp(t, tokens)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
