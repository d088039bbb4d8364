// The platform API: accounts, challenges, trades, settings, market data and
// the advisor, persisted in Postgres with Redis in front of it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tradesense/tradesense/internal/account"
	"github.com/tradesense/tradesense/internal/advisor"
	"github.com/tradesense/tradesense/internal/challenge"
	"github.com/tradesense/tradesense/internal/config"
	"github.com/tradesense/tradesense/internal/infra"
	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/marketdata"
	"github.com/tradesense/tradesense/internal/notification"
	"github.com/tradesense/tradesense/internal/routes"
	"github.com/tradesense/tradesense/internal/server"
	"github.com/tradesense/tradesense/internal/settings"
	"github.com/tradesense/tradesense/internal/trading"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		accountRepo   account.Repository
		challengeRepo challenge.Repository
		tradeRepo     trading.Repository
		settingsRepo  settings.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		accountRepo = account.NewPostgresRepository(pool)
		challengeRepo = challenge.NewPostgresRepository(pool)
		tradeRepo = trading.NewPostgresRepository(pool)
		settingsRepo = settings.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		accountRepo = account.NewMemoryRepository()
		challengeRepo = challenge.NewMemoryRepository()
		tradeRepo = trading.NewMemoryRepository()
		settingsRepo = settings.NewMemoryRepository()
	}

	challengeSvc := challenge.NewService(challengeRepo, notification.NewLoggerNotifier(logger), logger)
	accountSvc := account.NewService(accountRepo, challengeSvc, logger)
	tradingSvc := trading.NewService(tradeRepo, challengeSvc, accountRepo, logger)
	settingsSvc := settings.NewService(settingsRepo)
	advisorSvc := advisor.NewService(advisor.NewClient("", cfg.AdvisorAPIKey, cfg.AdvisorModel), logger)

	yahoo := marketdata.Quoter(marketdata.NewYahooQuoter(""))
	casablanca := marketdata.NewCasablancaQuoter("")
	casaQuoter := marketdata.Quoter(casablanca)

	deps := routes.Deps{
		Logger:     logger,
		Accounts:   account.NewHandler(accountSvc, logger),
		Challenges: challenge.NewHandler(challengeSvc, accountSvc, logger),
		Trades:     trading.NewHandler(tradingSvc, logger),
		Settings:   settings.NewHandler(settingsSvc, logger),
		Advisor:    advisor.NewHandler(advisorSvc),
	}

	if cfg.RedisURL != "" {
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		deps.Cache = client
		yahoo = marketdata.NewCachedQuoter(yahoo, client, cfg.QuoteCacheTTL, logger)
		casaQuoter = marketdata.NewCachedQuoter(casaQuoter, client, cfg.QuoteCacheTTL, logger)
	} else {
		logger.Warn("REDIS_URL not set, rate limiting and quote caching disabled")
	}
	deps.Prices = marketdata.NewHandler(yahoo, casaQuoter, casablanca, logger)

	app := server.NewApp(cfg.AppName + " API")
	routes.Setup(app, deps)

	srv := server.New(app, cfg.Address())
	go func() {
		logger.Info("platform api listening", "addr", cfg.Address())
		if err := srv.Listen(); err != nil {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
