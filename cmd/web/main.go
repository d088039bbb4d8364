// The web gateway: serves the trader-facing routes, owns visitor sessions
// and proxies business operations to the platform API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tradesense/tradesense/internal/config"
	"github.com/tradesense/tradesense/internal/gateway"
	"github.com/tradesense/tradesense/internal/infra"
	"github.com/tradesense/tradesense/internal/locale"
	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/platform"
	"github.com/tradesense/tradesense/internal/prices"
	"github.com/tradesense/tradesense/internal/server"
	"github.com/tradesense/tradesense/internal/session"
	"github.com/tradesense/tradesense/internal/visitor"
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

	var visitors visitor.Repository
	if cfg.RedisURL != "" {
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		visitors = visitor.NewRedisRepository(client, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_URL not set, visitor state is in-memory and lost on restart")
		visitors = visitor.NewMemoryRepository()
	}

	secret := cfg.SessionSecret
	if secret == "" {
		if !cfg.IsDev() {
			logger.Error("SESSION_SECRET is required outside development")
			os.Exit(1)
		}
		logger.Warn("SESSION_SECRET not set, using development default")
		secret = "dev-only-secret"
	}
	cookies, err := session.NewCookies(secret, cfg.SessionTTL)
	if err != nil {
		logger.Error("cookie setup failed", "error", err)
		os.Exit(1)
	}

	api := platform.New(cfg.PlatformAPIURL)
	poller := prices.NewPoller(api, cfg.PollInterval, map[string]float64{
		"BTC-USD": 50000,
		"IAM":     10,
	}, logger)
	poller.Start(ctx)
	defer poller.Stop()

	app := server.NewApp(cfg.AppName + " Web")
	gateway.Setup(app, gateway.Deps{
		Logger:   logger,
		Cookies:  cookies,
		Sessions: session.NewStore(visitors, logger),
		Locales:  locale.NewStore(visitors),
		Platform: api,
		Prices:   poller,
	})

	srv := server.New(app, cfg.Address())
	go func() {
		logger.Info("web gateway listening", "addr", cfg.Address(), "platform_api", cfg.PlatformAPIURL)
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
