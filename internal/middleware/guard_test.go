package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/middleware"
	"github.com/tradesense/tradesense/internal/session"
	"github.com/tradesense/tradesense/internal/visitor"
)

const testVisitorID = "visitor-1"

// stubVisitor pins the visitor id without going through the cookie codec.
func stubVisitor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalVisitorID, testVisitorID)
		return c.Next()
	}
}

func buildGuardedApp(sessions *session.Store, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(stubVisitor())
	app.Get("/protected", guard, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": middleware.UserID(c),
			"role":    middleware.Role(c),
		})
	})
	return app
}

func newSessions() *session.Store {
	return session.NewStore(visitor.NewMemoryRepository(), logging.Discard())
}

func doGet(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestRequireAuthRedirectsAnonymousToLogin(t *testing.T) {
	sessions := newSessions()
	app := buildGuardedApp(sessions, middleware.RequireAuth(sessions))

	resp := doGet(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAuthRendersForAuthenticatedVisitor(t *testing.T) {
	sessions := newSessions()
	require.NoError(t, sessions.Set(context.Background(), testVisitorID, "7", "Admin"))
	app := buildGuardedApp(sessions, middleware.RequireAuth(sessions))

	resp := doGet(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuthSeesLogoutOnNextRequest(t *testing.T) {
	sessions := newSessions()
	ctx := context.Background()
	require.NoError(t, sessions.Set(ctx, testVisitorID, "7", "user"))
	app := buildGuardedApp(sessions, middleware.RequireAuth(sessions))

	resp := doGet(t, app)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, sessions.Clear(ctx, testVisitorID))

	resp = doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode, "logout must take effect on the next request")
}

func TestRequireRoleAllowsMembers(t *testing.T) {
	for _, role := range []string{"admin", "Admin", "superadmin"} {
		sessions := newSessions()
		require.NoError(t, sessions.Set(context.Background(), testVisitorID, "7", role))
		app := buildGuardedApp(sessions, middleware.RequireRole(sessions, session.RoleAdmin, session.RoleSuperAdmin))

		resp := doGet(t, app)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "role %q should be allowed", role)
	}
}

func TestRequireRoleRedirectsOutsidersToLanding(t *testing.T) {
	for _, role := range []string{"user", "manager", ""} {
		sessions := newSessions()
		if role != "" {
			require.NoError(t, sessions.Set(context.Background(), testVisitorID, "7", role))
		}
		app := buildGuardedApp(sessions, middleware.RequireRole(sessions, session.RoleAdmin, session.RoleSuperAdmin))

		resp := doGet(t, app)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, "role %q should be denied", role)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}
}

func TestRequireRolePanicsWithoutRoles(t *testing.T) {
	assert.Panics(t, func() {
		middleware.RequireRole(newSessions())
	})
}
