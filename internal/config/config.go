package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	AssistantReplyDelay time.Duration `yaml:"assistant_reply_delay"`

	SymptomCatalogPath  string `yaml:"symptom_catalog_path"`
	HealthQACatalogPath string `yaml:"health_qa_catalog_path"`

	ReminderEnabled bool   `yaml:"reminder_enabled"`
	Timezone        string `yaml:"timezone"`

	ReportFontPath  string `yaml:"report_font_path"`
	ReportOutputDir string `yaml:"report_output_dir"`

	Location *time.Location `yaml:"-"`
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Load reads config.yaml (or CONFIG_PATH) when present, applies env
// overrides and defaults, then validates the result.
func Load() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read %s: %w", configPath, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.DatabaseDriver, "DATABASE_DRIVER")
	envOverride(&cfg.DatabaseURL, "DATABASE_URL")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.LogFormat, "LOG_FORMAT")
	envOverride(&cfg.SymptomCatalogPath, "SYMPTOM_CATALOG_PATH")
	envOverride(&cfg.HealthQACatalogPath, "HEALTH_QA_CATALOG_PATH")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.ReportFontPath, "REPORT_FONT_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	if err := envOverrideDuration(&cfg.AssistantReplyDelay, "ASSISTANT_REPLY_DELAY"); err != nil {
		return err
	}
	return envOverrideBool(&cfg.ReminderEnabled, "REMINDER_ENABLED")
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = DriverSQLite
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == DriverSQLite {
		cfg.DatabaseURL = "./mellow.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.AssistantReplyDelay == 0 {
		cfg.AssistantReplyDelay = 800 * time.Millisecond
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
}

// Validate checks required fields and resolves the timezone.
func Validate(cfg *Config) error {
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database_driver %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url is required for driver %s", cfg.DatabaseDriver)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("invalid port %q", cfg.Port)
	}
	if cfg.AssistantReplyDelay < 0 {
		return fmt.Errorf("assistant_reply_delay must not be negative")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc
	return nil
}

func envOverride(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envOverrideBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func envOverrideDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
