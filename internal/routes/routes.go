// Package routes registers the platform API endpoints.
package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tradesense/tradesense/internal/account"
	"github.com/tradesense/tradesense/internal/advisor"
	"github.com/tradesense/tradesense/internal/challenge"
	"github.com/tradesense/tradesense/internal/marketdata"
	"github.com/tradesense/tradesense/internal/middleware"
	"github.com/tradesense/tradesense/internal/settings"
	"github.com/tradesense/tradesense/internal/trading"
)

// Deps carries the handlers and shared infrastructure for registration.
type Deps struct {
	Logger     *slog.Logger
	Cache      *redis.Client
	Accounts   *account.Handler
	Challenges *challenge.Handler
	Trades     *trading.Handler
	Settings   *settings.Handler
	Prices     *marketdata.Handler
	Advisor    *advisor.Handler
}

// Setup registers middleware and all API routes.
func Setup(app *fiber.App, deps Deps) {
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(deps.Logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	if deps.Cache != nil {
		api.Post("/login", middleware.LoginRateLimit(deps.Cache, 5), deps.Accounts.Login)
		api.Post("/buy-challenge", middleware.Idempotency(deps.Cache, 24*time.Hour, deps.Logger), deps.Challenges.Buy)
	} else {
		api.Post("/login", deps.Accounts.Login)
		api.Post("/buy-challenge", deps.Challenges.Buy)
	}

	api.Post("/register", deps.Accounts.Register)
	api.Get("/users", deps.Accounts.List)

	api.Post("/trade", deps.Trades.Execute)
	api.Get("/leaderboard", deps.Trades.Leaderboard)

	api.Get("/platform-settings", deps.Settings.Get)
	api.Post("/platform-settings", deps.Settings.Save)

	api.Get("/price/:ticker", deps.Prices.Price)
	api.Post("/chat", deps.Advisor.Chat)
}
