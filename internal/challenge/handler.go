package challenge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/account"
)

// UserDirectory resolves user ids for purchase validation.
type UserDirectory interface {
	ByID(ctx context.Context, id int64) (*account.User, error)
}

// Handler exposes challenge purchase over HTTP.
type Handler struct {
	svc    *Service
	users  UserDirectory
	logger *slog.Logger
}

// NewHandler builds the challenge handler.
func NewHandler(svc *Service, users UserDirectory, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, users: users, logger: logger}
}

type buyRequest struct {
	UserID   int64  `json:"user_id"`
	PlanType string `json:"plan_type"`
}

// Buy purchases a challenge for a user.
func (h *Handler) Buy(c *fiber.Ctx) error {
	var req buyRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}

	if _, err := h.users.ByID(c.Context(), req.UserID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Utilisateur introuvable"})
		}
		h.logger.Error("user lookup failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}

	ch, err := h.svc.Buy(c.Context(), req.UserID, req.PlanType)
	if err != nil {
		h.logger.Error("challenge purchase failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"challenge_id":  ch.ID,
		"plan_type":     ch.PlanType,
		"start_balance": ch.StartBalance,
		"status":        ch.Status,
	})
}
