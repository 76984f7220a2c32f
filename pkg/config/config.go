package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration values
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat is either "json" or "text"
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	SiteFile string `env:"SITE_FILE" envDefault:"site.yaml"`

	// StoreBackend selects where submissions are saved: sqlite, airtable or memory
	StoreBackend   string `env:"STORE_BACKEND" envDefault:"sqlite"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"submissions.db"`
	AirtableAPIKey string `env:"AIRTABLE_API_KEY"`
	AirtableBaseID string `env:"AIRTABLE_BASE_ID"`
	AirtableTable  string `env:"AIRTABLE_TABLE" envDefault:"Submissions"`

	// MailBackend is either "console" or "smtp"
	MailBackend  string `env:"MAIL_BACKEND" envDefault:"console"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case "sqlite", "memory":
	case "airtable":
		if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
			return fmt.Errorf("airtable store requires AIRTABLE_API_KEY and AIRTABLE_BASE_ID")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.MailBackend {
	case "console":
	case "smtp":
		if strings.TrimSpace(c.SMTPHost) == "" {
			return fmt.Errorf("smtp mail backend requires SMTP_HOST")
		}
	default:
		return fmt.Errorf("unknown MAIL_BACKEND %q", c.MailBackend)
	}
	return nil
}
