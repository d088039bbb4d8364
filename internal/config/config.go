package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAppName       = "TradeSense"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultSessionTTL    = 30 * 24 * time.Hour
	defaultPollInterval  = 5 * time.Second
	defaultQuoteCacheTTL = 5 * time.Second
)

// Config captures runtime configuration for both the web gateway and the
// platform API, loaded through Viper from environment variables and an
// optional .env file.
type Config struct {
	AppName string
	AppEnv  string
	Port    string

	LogLevel string

	DatabaseURL string
	RedisURL    string

	// Gateway settings.
	PlatformAPIURL string
	SessionSecret  string
	SessionTTL     time.Duration
	PollInterval   time.Duration

	// Platform API settings.
	QuoteCacheTTL time.Duration
	AdvisorAPIKey string
	AdvisorModel  string

	ShutdownPeriod time.Duration
}

// Load reads configuration values and populates a Config instance.
// Environment variables take precedence over the optional .env file.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_NAME", defaultAppName)
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("PLATFORM_API_URL", "http://localhost:5000")
	v.SetDefault("SESSION_TTL", defaultSessionTTL.String())
	v.SetDefault("PRICE_POLL_INTERVAL", defaultPollInterval.String())
	v.SetDefault("QUOTE_CACHE_TTL", defaultQuoteCacheTTL.String())
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownDelay.String())
	v.SetDefault("ADVISOR_MODEL", "gpt-4o-mini")

	cfg := Config{
		AppName:        v.GetString("APP_NAME"),
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisURL:       v.GetString("REDIS_URL"),
		PlatformAPIURL: strings.TrimRight(v.GetString("PLATFORM_API_URL"), "/"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		AdvisorAPIKey:  v.GetString("ADVISOR_API_KEY"),
		AdvisorModel:   v.GetString("ADVISOR_MODEL"),
	}

	var err error
	if cfg.SessionTTL, err = parseDuration(v, "SESSION_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval, err = parseDuration(v, "PRICE_POLL_INTERVAL"); err != nil {
		return Config{}, err
	}
	if cfg.QuoteCacheTTL, err = parseDuration(v, "QUOTE_CACHE_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}
