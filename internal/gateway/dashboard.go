package gateway

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/i18n"
	"github.com/tradesense/tradesense/internal/middleware"
	"github.com/tradesense/tradesense/internal/platform"
)

const (
	defaultEquity  = 50000.0
	defaultSymbol  = "BTC-USD"
	dailyLossLimit = 0.05
	totalLossLimit = 0.10
	slippagePct    = 0.001
)

// Dashboard serves the trader workspace payload. Equity is not persisted on
// the gateway: the view starts from the default and each trade response
// carries the authoritative value.
func (h *handlers) Dashboard(c *fiber.Ctx) error {
	visitorID := middleware.VisitorID(c)
	lang := h.locales.Get(c.Context(), visitorID)
	challengeID := h.sessions.ChallengeID(c.Context(), visitorID)

	return c.JSON(fiber.Map{
		"challenge_id":     challengeID,
		"equity":           defaultEquity,
		"daily_loss_limit": dailyLossLimit,
		"total_loss_limit": totalLossLimit,
		"prices":           h.prices.Current(),
		"strings":          i18n.T(lang),
		"lang":             lang,
	})
}

// DashboardPrices serves the latest polled prices for the live ticker.
func (h *handlers) DashboardPrices(c *fiber.Ctx) error {
	return c.JSON(h.prices.Current())
}

type tradeRequest struct {
	Symbol   string `json:"symbol"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Trade opens and closes a position in one shot. The open price is the last
// polled price for the symbol and the close applies a small simulated
// slippage in either direction.
func (h *handlers) Trade(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	side := strings.ToLower(strings.TrimSpace(req.Type))
	if side != "buy" && side != "sell" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type de trade invalide"})
	}
	if req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantité invalide"})
	}
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		symbol = defaultSymbol
	}

	open, ok := h.prices.Price(symbol)
	if !ok || open <= 0 {
		open, ok = h.prices.Price(defaultSymbol)
		if !ok || open <= 0 {
			open = defaultEquity
		}
	}
	closePrice := applySlippage(open)

	visitorID := middleware.VisitorID(c)
	challengeID := h.sessions.ChallengeID(c.Context(), visitorID)

	res, err := h.platform.SubmitTrade(c.Context(), platform.TradeRequest{
		ChallengeID: challengeID,
		Symbol:      symbol,
		Type:        side,
		Quantity:    req.Quantity,
		OpenPrice:   open,
		ClosePrice:  closePrice,
	})
	if err != nil {
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
		}
		h.logger.Error("trade submit failed", "challenge_id", challengeID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Impossible de contacter le serveur"})
	}

	return c.JSON(fiber.Map{
		"open_price":     open,
		"close_price":    closePrice,
		"current_equity": res.CurrentEquity,
		"status":         res.Status,
	})
}

type buyChallengeRequest struct {
	PlanType string `json:"plan_type"`
}

// BuyChallenge purchases a challenge and pins its id to the session. A
// purchase failure keeps the previously stored challenge so the dashboard
// stays usable.
func (h *handlers) BuyChallenge(c *fiber.Ctx) error {
	var req buyChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "requête invalide"})
	}

	visitorID := middleware.VisitorID(c)
	userID := middleware.UserID(c)

	id, err := h.platform.BuyChallenge(c.Context(), userID, req.PlanType)
	if err != nil {
		h.logger.Warn("challenge purchase failed", "user_id", userID, "plan", req.PlanType, "error", err)
		return c.JSON(fiber.Map{
			"challenge_id": h.sessions.ChallengeID(c.Context(), visitorID),
			"purchased":    false,
		})
	}

	if err := h.sessions.SetChallengeID(c.Context(), visitorID, id); err != nil {
		h.logger.Error("challenge pin failed", "visitor_id", visitorID, "error", err)
	}
	return c.JSON(fiber.Map{"challenge_id": id, "purchased": true, "redirect": "/dashboard"})
}

func applySlippage(open float64) float64 {
	delta := open * slippagePct
	if rand.Intn(2) == 0 {
		return open + delta
	}
	return open - delta
}
