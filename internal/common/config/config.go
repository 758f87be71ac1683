package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"lead-voucher-backend"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
		// Proxies allowed to set X-Forwarded-For; empty means the socket address is the client
		TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	}

	Lead struct {
		// The form variant without an interest field leaves this off
		RequireInterest bool `env:"LEAD_REQUIRE_INTEREST" envDefault:"false"`
	}

	Redis struct {
		Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		// TTL for cached GET responses
		CacheTTL time.Duration `env:"REDIS_CACHE_TTL" envDefault:"5m"`
	}

	// HTTPClientTimeout bounds every outbound call; a timeout is reported as a network failure.
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`

	Relay Relay

	Issuance struct {
		URL       string `env:"ISSUANCE_URL" envDefault:"http://localhost:9090/coupons/issue"`
		ChannelID string `env:"ISSUANCE_CHANNEL_ID" envDefault:"WEB"`
		RequestID string `env:"ISSUANCE_REQUEST_ID" envDefault:"LEADFORM"`
		ProgramID string `env:"ISSUANCE_PROGRAM_ID" envDefault:"HPWORLD"`
		APIToken  string `env:"ISSUANCE_API_TOKEN" envDefault:""`
	}

	SubmissionLog struct {
		Enabled bool   `env:"SUBMISSION_LOG_ENABLED" envDefault:"true"`
		Path    string `env:"SUBMISSION_LOG_PATH" envDefault:"data.json"`
		// Buffered entries before new ones are dropped
		Buffer int `env:"SUBMISSION_LOG_BUFFER" envDefault:"256"`
		// Max entries kept in the Redis list when Redis is enabled
		RedisMaxLen int64 `env:"SUBMISSION_LOG_REDIS_MAX_LEN" envDefault:"10000"`
	}

	RateLimit struct {
		// Submissions per client IP per window; 0 disables. Shared across instances when Redis is enabled.
		Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
		Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	}
}

// Relay holds the survey collector form identifiers. The relay stage only runs when all of
// them are set.
type Relay struct {
	BaseURL         string `env:"RELAY_BASE_URL" envDefault:"https://docs.google.com"`
	FormID          string `env:"RELAY_FORM_ID"`
	FieldName       string `env:"RELAY_FIELD_NAME"`
	FieldMobile     string `env:"RELAY_FIELD_MOBILE"`
	FieldEmail      string `env:"RELAY_FIELD_EMAIL"`
	FieldOccupation string `env:"RELAY_FIELD_OCCUPATION"`
}

// Complete reports whether every relay identifier is configured.
func (r Relay) Complete() bool {
	return r.FormID != "" && r.FieldName != "" && r.FieldMobile != "" &&
		r.FieldEmail != "" && r.FieldOccupation != ""
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Load reads .env (if present) and the process environment into Config.
func Load() (*Config, error) {
	// .env is optional; in production variables are set directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPClientTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT: %s", cfg.HTTPClientTimeout)
	}
	return cfg, nil
}
