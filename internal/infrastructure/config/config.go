package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Automation AutomationConfig
	Breaker    BreakerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// AutomationConfig controls how the word processor is driven.
type AutomationConfig struct {
	Visible        bool   `envconfig:"HWP_VISIBLE" default:"true"`
	RegisterModule bool   `envconfig:"HWP_REGISTER_MODULE" default:"true"`
	TemplateDir    string `envconfig:"HWP_TEMPLATE_DIR" default:"templates"`
	// TempDir empty means <os temp>/litepro
	TempDir string `envconfig:"HWP_TEMP_DIR"`

	SearchAttempts int           `envconfig:"HWP_SEARCH_ATTEMPTS" default:"6"`
	SearchDelay    time.Duration `envconfig:"HWP_SEARCH_DELAY" default:"60ms"`

	TextIndent   int     `envconfig:"HWP_TEXT_INDENT" default:"0"`
	EquationFont string  `envconfig:"HWP_EQ_FONT" default:"HyhwpEQ"`
	EquationSize float64 `envconfig:"HWP_EQ_SIZE" default:"8"`
	ImageScale   float64 `envconfig:"HWP_IMAGE_SCALE" default:"0.3"`
	CropMaxWidth int     `envconfig:"HWP_CROP_MAX_WIDTH" default:"900"`
}

// BreakerConfig guards the automation transport.
type BreakerConfig struct {
	Threshold uint32        `envconfig:"BREAKER_THRESHOLD" default:"5"`
	Timeout   time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the automation layer cannot work with.
func (c *Config) Validate() error {
	a := c.Automation
	switch {
	case a.SearchAttempts < 1:
		return fmt.Errorf("HWP_SEARCH_ATTEMPTS must be at least 1, got %d", a.SearchAttempts)
	case a.TextIndent < 0:
		return fmt.Errorf("HWP_TEXT_INDENT must not be negative, got %d", a.TextIndent)
	case a.EquationSize <= 0:
		return fmt.Errorf("HWP_EQ_SIZE must be positive, got %g", a.EquationSize)
	case a.ImageScale <= 0 || a.ImageScale > 1:
		return fmt.Errorf("HWP_IMAGE_SCALE must be in (0, 1], got %g", a.ImageScale)
	case a.CropMaxWidth < 1:
		return fmt.Errorf("HWP_CROP_MAX_WIDTH must be positive, got %d", a.CropMaxWidth)
	case c.Breaker.Threshold < 1:
		return fmt.Errorf("BREAKER_THRESHOLD must be at least 1, got %d", c.Breaker.Threshold)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "127.0.0.1",
		},
		Automation: AutomationConfig{
			Visible:        true,
			RegisterModule: true,
			TemplateDir:    "templates",
			SearchAttempts: 6,
			SearchDelay:    60 * time.Millisecond,
			EquationFont:   "HyhwpEQ",
			EquationSize:   8,
			ImageScale:     0.3,
			CropMaxWidth:   900,
		},
		Breaker: BreakerConfig{
			Threshold: 5,
			Timeout:   30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}
