package settings

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the platform settings over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the settings handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Get serves the current settings.
func (h *Handler) Get(c *fiber.Ctx) error {
	s, err := h.svc.Get(c.Context())
	if err != nil {
		h.logger.Error("settings read failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}
	return c.JSON(s)
}

type saveRequest struct {
	PaypalEmail string `json:"paypal_email"`
}

// Save updates the settings.
func (h *Handler) Save(c *fiber.Ctx) error {
	var req saveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}

	saved, err := h.svc.Save(c.Context(), req.PaypalEmail)
	if err != nil {
		h.logger.Error("settings save failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}
	return c.JSON(fiber.Map{"paypal_email": saved.PaypalEmail, "message": "Paramètres enregistrés"})
}
