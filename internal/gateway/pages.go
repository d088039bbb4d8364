package gateway

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/advisor"
	"github.com/tradesense/tradesense/internal/i18n"
	"github.com/tradesense/tradesense/internal/locale"
	"github.com/tradesense/tradesense/internal/middleware"
)

// plan is one purchasable challenge tier shown on the landing page.
type plan struct {
	Type         string  `json:"type"`
	StartBalance float64 `json:"start_balance"`
}

var pricingPlans = []plan{
	{Type: "starter", StartBalance: 5000},
	{Type: "standard", StartBalance: 10000},
	{Type: "pro", StartBalance: 25000},
	{Type: "enterprise", StartBalance: 50000},
}

// Landing serves the public home page payload: localized copy, pricing and
// the live leaderboard. A leaderboard fetch failure degrades to an empty
// list rather than failing the page.
func (h *handlers) Landing(c *fiber.Ctx) error {
	visitorID := middleware.VisitorID(c)
	lang := h.locales.Get(c.Context(), visitorID)

	board, err := h.platform.Leaderboard(c.Context())
	if err != nil {
		h.logger.Warn("leaderboard fetch failed", "error", err)
		board = nil
	}

	return c.JSON(fiber.Map{
		"lang":        lang,
		"dir":         locale.Direction(lang),
		"strings":     i18n.T(lang),
		"plans":       pricingPlans,
		"leaderboard": board,
	})
}

// Masterclass serves the public masterclass page payload.
func (h *handlers) Masterclass(c *fiber.Ctx) error {
	visitorID := middleware.VisitorID(c)
	lang := h.locales.Get(c.Context(), visitorID)

	return c.JSON(fiber.Map{
		"lang":    lang,
		"dir":     locale.Direction(lang),
		"strings": i18n.T(lang),
	})
}

type langRequest struct {
	Lang string `json:"lang"`
}

// SetLang switches the visitor's language. Unknown values fall back to the
// default, so the stored language is always one of the supported set.
func (h *handlers) SetLang(c *fiber.Ctx) error {
	var req langRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	visitorID := middleware.VisitorID(c)
	lang, dir, err := h.locales.Set(c.Context(), visitorID, req.Lang)
	if err != nil {
		h.logger.Error("lang persist failed", "visitor_id", visitorID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}

	return c.JSON(fiber.Map{
		"lang":    lang,
		"dir":     dir,
		"strings": i18n.T(lang),
	})
}

// Chat proxies the visitor's message to the platform advisor.
func (h *handlers) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	reply, err := h.platform.Chat(c.Context(), req.Message)
	if err != nil {
		h.logger.Warn("advisor chat failed", "error", err)
		return c.JSON(fiber.Map{"reply": advisor.FallbackReply})
	}
	return c.JSON(fiber.Map{"reply": reply})
}
