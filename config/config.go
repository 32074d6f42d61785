// Package config loads client configuration from the process environment
// and an optional .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultBaseURL is the public Warsaw Open Data API root.
	DefaultBaseURL = "https://api.um.warszawa.pl/api/action"

	defaultHTTPTimeout = 30 * time.Second
	defaultCacheTTL    = time.Hour
)

// Config carries everything needed to build a client.
type Config struct {
	APIKey      string `validate:"required"`
	BaseURL     string `validate:"required,url"`
	HTTPTimeout time.Duration
	CachePath   string
	CacheTTL    time.Duration
	LogLevel    string
}

// Load reads WARSAW_* variables from the environment, with a .env file as
// fallback when present, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		APIKey:      v.GetString("WARSAW_API_KEY"),
		BaseURL:     v.GetString("WARSAW_BASE_URL"),
		HTTPTimeout: time.Duration(v.GetInt("WARSAW_HTTP_TIMEOUT")) * time.Second,
		CachePath:   v.GetString("WARSAW_CACHE_PATH"),
		CacheTTL:    time.Duration(v.GetInt("WARSAW_CACHE_TTL")) * time.Second,
		LogLevel:    v.GetString("WARSAW_LOG_LEVEL"),
	}

	// Set default values if not provided
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// NewLogger builds a zap logger for the given level; unknown levels fall
// back to info.
func NewLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return config.Build()
}
