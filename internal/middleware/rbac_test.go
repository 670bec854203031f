package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/models"
)

type staticUser struct {
	user *models.User
}

func (s staticUser) CurrentUser() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func newRoleApp(provider CurrentUserProvider, roles ...models.Role) *fiber.App {
	app := fiber.New()
	app.Use(SessionUser(provider))
	app.Get("/review", RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestRequireRoleAllowsAuthorizedRoles(t *testing.T) {
	teacher := models.User{ID: "user-3", Name: "Elena", Role: models.RoleTeacher}
	app := newRoleApp(staticUser{user: &teacher}, models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/review", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsUnauthorizedRoles(t *testing.T) {
	student := models.User{ID: "user-1", Name: "Alice", Role: models.RoleStudent}
	app := newRoleApp(staticUser{user: &student}, models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/review", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleWithoutSession(t *testing.T) {
	app := newRoleApp(staticUser{}, models.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/review", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCorrelationIDPropagation(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-123", resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
}

func TestRateLimitPerSessionUser(t *testing.T) {
	student := models.User{ID: "user-1", Name: "Alice", Role: models.RoleStudent}
	app := fiber.New()
	app.Use(SessionUser(staticUser{user: &student}))
	app.Get("/ask", RateLimit("assistant", 2, 0), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ask", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ask", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
