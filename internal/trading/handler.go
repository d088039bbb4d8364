package trading

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/challenge"
)

// Handler exposes trade execution and the leaderboard over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the trading handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type tradeRequest struct {
	ChallengeID int64   `json:"challenge_id"`
	Symbol      string  `json:"symbol"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	OpenPrice   float64 `json:"open_price"`
	ClosePrice  float64 `json:"close_price"`
}

// Execute records one trade and returns the updated challenge.
func (h *Handler) Execute(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}

	trade, ch, err := h.svc.Execute(c.Context(), ExecuteRequest{
		ChallengeID: req.ChallengeID,
		Symbol:      req.Symbol,
		Type:        req.Type,
		Quantity:    req.Quantity,
		OpenPrice:   req.OpenPrice,
		ClosePrice:  req.ClosePrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSide):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type de trade invalide"})
		case errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantité invalide"})
		case errors.Is(err, ErrInvalidPrice):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Prix invalide"})
		case errors.Is(err, ErrMissingSymbol):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
		case errors.Is(err, challenge.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge introuvable"})
		case errors.Is(err, ErrChallengeClosed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Challenge non actif"})
		default:
			h.logger.Error("trade failed", "challenge_id", req.ChallengeID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
		}
	}

	return c.JSON(fiber.Map{
		"trade": trade,
		"challenge": fiber.Map{
			"id":             ch.ID,
			"current_equity": ch.CurrentEquity,
			"status":         ch.Status,
		},
	})
}

// Leaderboard serves the top traders.
func (h *Handler) Leaderboard(c *fiber.Ctx) error {
	board, err := h.svc.Leaderboard(c.Context(), 10)
	if err != nil {
		h.logger.Error("leaderboard failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}
	if board == nil {
		board = []LeaderboardEntry{}
	}
	return c.JSON(fiber.Map{"leaderboard": board})
}
