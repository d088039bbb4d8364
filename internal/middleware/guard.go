package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/session"
)

// Locals keys populated by the guards for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireAuth gates a route on an authenticated session. The snapshot is
// read fresh on every request; a login or logout takes effect on the next
// request, never mid-flight. Failure redirects to the login entry point
// instead of raising an error.
func RequireAuth(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := sessions.Get(c.UserContext(), VisitorID(c))
		if !snap.Authenticated() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(LocalUserID, snap.UserID)
		c.Locals(LocalRole, string(snap.Role))
		return c.Next()
	}
}

// RequireRole gates a route on membership in the allowed role set. The set
// is caller-supplied and must not be empty; an empty set is a wiring bug,
// not a runtime condition. Roles are normalized before the membership
// check, so unknown or oddly cased values are denied rather than erroring.
// Failure redirects to the public landing page.
func RequireRole(sessions *session.Store, allowed ...session.Role) fiber.Handler {
	if len(allowed) == 0 {
		panic("middleware: RequireRole needs at least one role")
	}
	return func(c *fiber.Ctx) error {
		snap := sessions.Get(c.UserContext(), VisitorID(c))
		if !snap.HasRole(allowed...) {
			return c.Redirect("/", fiber.StatusFound)
		}
		c.Locals(LocalUserID, snap.UserID)
		c.Locals(LocalRole, string(snap.Role))
		return c.Next()
	}
}

// UserID returns the authenticated user id placed by a guard.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Role returns the authenticated role placed by a guard.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
