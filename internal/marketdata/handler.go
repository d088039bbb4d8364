package marketdata

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler routes price requests to the right source: the Casablanca
// exchange for its known listings, Yahoo Finance for everything else.
type Handler struct {
	yahoo      Quoter
	casablanca Quoter
	router     *CasablancaQuoter
	logger     *slog.Logger
}

// NewHandler builds the price handler. router decides which tickers go to
// the exchange; the quoters passed alongside are typically cache-wrapped.
func NewHandler(yahoo, casablanca Quoter, router *CasablancaQuoter, logger *slog.Logger) *Handler {
	return &Handler{yahoo: yahoo, casablanca: casablanca, router: router, logger: logger}
}

// Price serves the latest price for a ticker.
func (h *Handler) Price(c *fiber.Ctx) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Params("ticker")))
	if ticker == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ticker manquant"})
	}

	quoter := h.yahoo
	if h.router != nil && h.router.Supports(ticker) {
		quoter = h.casablanca
	}

	price, err := quoter.Quote(c.Context(), ticker)
	if err != nil {
		h.logger.Warn("price fetch failed", "ticker", ticker, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Prix indisponible"})
	}
	return c.JSON(fiber.Map{"ticker": ticker, "price": price})
}
