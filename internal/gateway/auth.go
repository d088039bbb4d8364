package gateway

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/middleware"
	"github.com/tradesense/tradesense/internal/platform"
	"github.com/tradesense/tradesense/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the platform and opens the visitor session.
func (h *handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	res, err := h.platform.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, platform.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou mot de passe incorrect"})
		case errors.Is(err, platform.ErrUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Impossible de contacter le serveur"})
		default:
			h.logger.Error("login failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
		}
	}

	visitorID := middleware.VisitorID(c)
	if err := h.sessions.Set(c.Context(), visitorID, res.UserID, res.Role); err != nil {
		h.logger.Error("session open failed", "visitor_id", visitorID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}

	return c.JSON(fiber.Map{
		"user_id":  res.UserID,
		"role":     res.Role,
		"redirect": redirectFor(session.Role(res.Role)),
	})
}

// Logout clears the visitor's auth state. The language survives.
func (h *handlers) Logout(c *fiber.Ctx) error {
	visitorID := middleware.VisitorID(c)
	if err := h.sessions.Clear(c.Context(), visitorID); err != nil {
		h.logger.Error("session clear failed", "visitor_id", visitorID, "error", err)
	}
	return c.JSON(fiber.Map{"redirect": "/"})
}

// Register forwards account creation to the platform. The duplicate-email
// message from the platform is surfaced verbatim.
func (h *handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	err := h.platform.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var conflict *platform.ConflictError
		switch {
		case errors.As(err, &conflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Message})
		case errors.Is(err, platform.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Veuillez remplir tous les champs"})
		case errors.Is(err, platform.ErrUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Impossible de contacter le serveur"})
		default:
			var apiErr *platform.APIError
			if errors.As(err, &apiErr) {
				return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
			}
			h.logger.Error("register failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Inscription réussie", "redirect": "/login"})
}

// SessionInfo reports the visitor's auth state. The username is resolved
// lazily from the platform directory the first time it is needed, then
// cached in the session.
func (h *handlers) SessionInfo(c *fiber.Ctx) error {
	visitorID := middleware.VisitorID(c)
	sess := h.sessions.Get(c.Context(), visitorID)
	lang := h.locales.Get(c.Context(), visitorID)

	if !sess.Authenticated() {
		return c.JSON(fiber.Map{"logged_in": false, "lang": lang})
	}

	username := sess.Username
	if username == "" {
		username = h.resolveUsername(c, visitorID, sess.UserID)
	}

	return c.JSON(fiber.Map{
		"logged_in": true,
		"user_id":   sess.UserID,
		"role":      string(sess.Role),
		"username":  username,
		"lang":      lang,
	})
}

func (h *handlers) resolveUsername(c *fiber.Ctx, visitorID, userID string) string {
	users, err := h.platform.ListUsers(c.Context())
	if err != nil {
		h.logger.Warn("username lookup failed", "user_id", userID, "error", err)
		return ""
	}
	for _, u := range users {
		if u.ID.String() == userID {
			if err := h.sessions.SetUsername(c.Context(), visitorID, u.Name); err != nil {
				h.logger.Warn("username cache failed", "visitor_id", visitorID, "error", err)
			}
			return u.Name
		}
	}
	return ""
}

func redirectFor(role session.Role) string {
	switch session.NormalizeRole(string(role)) {
	case session.RoleSuperAdmin:
		return "/superadmin/settings"
	case session.RoleAdmin:
		return "/admin/users"
	default:
		return "/dashboard"
	}
}
