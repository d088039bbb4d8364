package account

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes account operations over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the account handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns the account identity.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}

	user, err := h.svc.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou mot de passe incorrect"})
		}
		h.logger.Error("authenticate failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}

	return c.JSON(fiber.Map{
		"user_id":  user.ID,
		"role":     user.Role,
		"username": user.Username,
	})
}

// Register creates an account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
	}

	user, err := h.svc.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Champs manquants"})
		case errors.Is(err, ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email déjà utilisé"})
		case errors.Is(err, ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Nom d'utilisateur déjà utilisé"})
		default:
			h.logger.Error("register failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Inscription réussie",
		"user_id": user.ID,
	})
}

// List serves the user directory as a bare array.
func (h *Handler) List(c *fiber.Ctx) error {
	entries, err := h.svc.Directory(c.Context())
	if err != nil {
		h.logger.Error("directory failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}
	if entries == nil {
		entries = []DirectoryEntry{}
	}
	return c.JSON(entries)
}
