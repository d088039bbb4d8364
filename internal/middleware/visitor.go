package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/session"
)

// LocalVisitorID is the fiber locals key carrying the visitor id.
const LocalVisitorID = "visitor_id"

// Visitor ensures every request carries a signed visitor id cookie, minting
// one on first contact. Locale and session state key off this id, so it is
// issued for anonymous visitors too. An invalid or tampered cookie is
// replaced rather than rejected.
func Visitor(cookies *session.Cookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(session.CookieName); raw != "" {
			if id, err := cookies.Parse(raw); err == nil {
				c.Locals(LocalVisitorID, id)
				return c.Next()
			}
		}

		id, token, err := cookies.Issue()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "issue visitor cookie")
		}
		c.Cookie(&fiber.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Expires:  time.Now().Add(cookies.TTL()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(LocalVisitorID, id)
		return c.Next()
	}
}

// VisitorID returns the visitor id placed by the Visitor middleware.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalVisitorID).(string)
	return id
}
