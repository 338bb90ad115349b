// Package config loads the run configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Mail settings
	SenderEmail   string
	ReceiverEmail string
	EmailPassword string
	SMTPHost      string
	SMTPPort      int

	// RSS settings
	FeedsConfigPath string
	MaxArticleAge   time.Duration

	// App settings
	Debug          bool
	RequestTimeout time.Duration
}

// Load builds the configuration from the environment. Mail credentials have
// no defaults; Validate rejects a config missing any of them.
func Load() (*Config, error) {
	cfg := &Config{
		SMTPHost:        "smtp.gmail.com",
		SMTPPort:        465,
		FeedsConfigPath: "configs/feeds.yaml",
		MaxArticleAge:   24 * time.Hour,
		RequestTimeout:  30 * time.Second,
	}

	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	cfg.ReceiverEmail = os.Getenv("RECEIVER_EMAIL")
	cfg.EmailPassword = os.Getenv("EMAIL_PASSWORD")

	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)

	if v := os.Getenv("MAX_ARTICLE_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticleAge = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SenderEmail == "" {
		return fmt.Errorf("SENDER_EMAIL is required")
	}
	if c.ReceiverEmail == "" {
		return fmt.Errorf("RECEIVER_EMAIL is required")
	}
	if c.EmailPassword == "" {
		return fmt.Errorf("EMAIL_PASSWORD is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be a valid port, got %d", c.SMTPPort)
	}
	return nil
}
