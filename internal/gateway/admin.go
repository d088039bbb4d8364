package gateway

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminUsers serves the user directory for the admin area. When the
// platform cannot be reached the payload says so explicitly; no
// placeholder rows are ever shown.
func (h *handlers) AdminUsers(c *fiber.Ctx) error {
	users, err := h.platform.ListUsers(c.Context())
	if err != nil {
		h.logger.Warn("user directory fetch failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"available": false,
			"error":     "Données utilisateurs indisponibles",
			"users":     []any{},
		})
	}

	return c.JSON(fiber.Map{
		"available": true,
		"users":     users,
		"total":     len(users),
	})
}

// SuperAdminSettings serves the platform-wide settings.
func (h *handlers) SuperAdminSettings(c *fiber.Ctx) error {
	paypal, err := h.platform.Settings(c.Context())
	if err != nil {
		h.logger.Warn("settings fetch failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"available": false,
			"error":     "Paramètres indisponibles",
		})
	}
	return c.JSON(fiber.Map{"available": true, "paypal_email": paypal})
}

type settingsRequest struct {
	PaypalEmail string `json:"paypal_email"`
}

// SaveSuperAdminSettings persists the platform-wide PayPal address.
func (h *handlers) SaveSuperAdminSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	saved, err := h.platform.SaveSettings(c.Context(), strings.TrimSpace(req.PaypalEmail))
	if err != nil {
		h.logger.Error("settings save failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Impossible d'enregistrer les paramètres"})
	}
	return c.JSON(fiber.Map{"paypal_email": saved, "message": "Paramètres enregistrés"})
}
