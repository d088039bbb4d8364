package advisor

import "github.com/gofiber/fiber/v2"

// Handler exposes the advisor chat over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler builds the advisor handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers one trader message. This endpoint never fails: upstream
// problems degrade to the fallback reply.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}
	return c.JSON(fiber.Map{"reply": h.svc.Reply(c.Context(), req.Message)})
}
