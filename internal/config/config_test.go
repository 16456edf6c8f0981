package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
		"SYMPTOM_CATALOG_PATH", "HEALTH_QA_CATALOG_PATH", "TIMEZONE",
		"REPORT_FONT_PATH", "REPORT_OUTPUT_DIR", "ASSISTANT_REPLY_DELAY", "REMINDER_ENABLED",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "./mellow.db", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 800*time.Millisecond, cfg.AssistantReplyDelay)
	assert.False(t, cfg.ReminderEnabled)
	require.NotNil(t, cfg.Location)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "9090"
log_format: console
assistant_reply_delay: 1s
reminder_enabled: true
timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7070")
	t.Setenv("ASSISTANT_REPLY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 250*time.Millisecond, cfg.AssistantReplyDelay)
	assert.True(t, cfg.ReminderEnabled)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"driver", "DATABASE_DRIVER", "mysql"},
		{"port", "PORT", "http"},
		{"timezone", "TIMEZONE", "Mars/Olympus"},
		{"delay", "ASSISTANT_REPLY_DELAY", "soon"},
		{"reminder", "REMINDER_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
