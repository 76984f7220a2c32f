package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "console", cfg.MailBackend)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("MAIL_BACKEND", "smtp")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "mail.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigRejectsIncompleteBackends(t *testing.T) {
	t.Run("airtable without credentials", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "airtable")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("smtp without host", func(t *testing.T) {
		t.Setenv("MAIL_BACKEND", "smtp")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "mongo")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "STORE_BACKEND")
	})
}
