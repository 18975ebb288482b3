package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string `env:"LANDING_PORT" envDefault:"4002"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	// Optional YAML file replacing parts of the built-in builder script
	ScriptPath string `env:"BUILDER_SCRIPT_PATH"`

	Sessions  SessionConfig
	RateLimit RateLimitConfig

	// Interval between SSE keep-alive comments
	KeepAlive time.Duration `env:"SSE_KEEPALIVE" envDefault:"15s"`

	// Server timeouts. WriteTimeout stays off by default so event streams are not cut.
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SessionConfig bounds the in-memory builder sessions
type SessionConfig struct {
	MaxSessions      int           `env:"BUILDER_MAX_SESSIONS" envDefault:"1000"`
	TTL              time.Duration `env:"BUILDER_SESSION_TTL" envDefault:"30m"`
	SweepInterval    time.Duration `env:"BUILDER_SWEEP_INTERVAL" envDefault:"1m"`
	SubscriberBuffer int           `env:"BUILDER_SUBSCRIBER_BUFFER" envDefault:"1024"`
}

// RateLimitConfig limits generate/restart requests per session
type RateLimitConfig struct {
	RequestsPerMinute int `env:"GENERATE_RATE_PER_MINUTE" envDefault:"30"`
	Burst             int `env:"GENERATE_RATE_BURST" envDefault:"5"`
}

// Addr returns the listen address, adding the leading colon when the port
// was given bare.
func (c *Config) Addr() string {
	if c.Port == "" {
		return ":4002"
	}
	if !strings.Contains(c.Port, ":") {
		return ":" + c.Port
	}
	return c.Port
}

// LoadDotEnv loads .env files when present. Existing variables win over
// .env, and .env.local wins over .env.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// NewConfig parses the configuration and logs a summary.
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("script", cfg.ScriptPath),
		slog.Int("max_sessions", cfg.Sessions.MaxSessions),
	)

	return cfg, nil
}
