// Package gateway is the trader-facing web server. It owns the visitor
// session, the locale, and the route guards, and delegates all business
// operations to the platform API.
package gateway

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tradesense/tradesense/internal/locale"
	"github.com/tradesense/tradesense/internal/middleware"
	"github.com/tradesense/tradesense/internal/platform"
	"github.com/tradesense/tradesense/internal/prices"
	"github.com/tradesense/tradesense/internal/session"
)

// PlatformAPI is the slice of the platform client the gateway depends on.
type PlatformAPI interface {
	Login(ctx context.Context, email, password string) (platform.LoginResult, error)
	Register(ctx context.Context, username, email, password string) error
	ListUsers(ctx context.Context) ([]platform.User, error)
	Settings(ctx context.Context) (string, error)
	SaveSettings(ctx context.Context, paypalEmail string) (string, error)
	BuyChallenge(ctx context.Context, userID, planType string) (int, error)
	SubmitTrade(ctx context.Context, req platform.TradeRequest) (platform.TradeResult, error)
	Leaderboard(ctx context.Context) ([]platform.LeaderboardRow, error)
	Chat(ctx context.Context, message string) (string, error)
}

// PriceSource reports the latest polled prices.
type PriceSource interface {
	Current() prices.Snapshot
	Price(symbol string) (float64, bool)
}

// Deps carries everything route registration needs.
type Deps struct {
	Logger   *slog.Logger
	Cookies  *session.Cookies
	Sessions *session.Store
	Locales  *locale.Store
	Platform PlatformAPI
	Prices   PriceSource
}

// Setup registers middleware and routes on the app.
func Setup(app *fiber.App, deps Deps) {
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(deps.Logger))
	app.Use(middleware.Visitor(deps.Cookies))

	h := &handlers{
		logger:   deps.Logger,
		sessions: deps.Sessions,
		locales:  deps.Locales,
		platform: deps.Platform,
		prices:   deps.Prices,
	}

	app.Get("/healthz", h.Health)

	// Public pages and session lifecycle.
	app.Get("/", h.Landing)
	app.Get("/masterclass", h.Masterclass)
	app.Post("/lang", h.SetLang)
	app.Get("/session", h.SessionInfo)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Post("/register", h.Register)
	app.Post("/chat", h.Chat)

	// Trader area.
	auth := middleware.RequireAuth(deps.Sessions)
	app.Get("/dashboard", auth, h.Dashboard)
	app.Get("/dashboard/prices", auth, h.DashboardPrices)
	app.Post("/dashboard/trade", auth, h.Trade)
	app.Post("/challenge/buy", auth, h.BuyChallenge)

	// Staff areas.
	admin := app.Group("/admin", middleware.RequireRole(deps.Sessions, session.RoleAdmin, session.RoleSuperAdmin))
	admin.Get("/users", h.AdminUsers)

	super := app.Group("/superadmin", middleware.RequireRole(deps.Sessions, session.RoleSuperAdmin))
	super.Get("/settings", h.SuperAdminSettings)
	super.Post("/settings", h.SaveSuperAdminSettings)
}

type handlers struct {
	logger   *slog.Logger
	sessions *session.Store
	locales  *locale.Store
	platform PlatformAPI
	prices   PriceSource
}

func (h *handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
