package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
app:
  name: Coptic League
  environment: development
  port: 8080
  allowed_origins:
    - http://localhost:5173
database:
  driver: sqlite
  filename: build/db/league.db
features:
  enable_metrics: true
`

func TestParseFillsJobDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Jobs.RecordAudit != defaultRecordAuditSchedule {
		t.Fatalf("expected default audit schedule, got %q", cfg.Jobs.RecordAudit)
	}
	if cfg.Jobs.RegistrationClose != defaultRegistrationCloseSchedule {
		t.Fatalf("expected default close schedule, got %q", cfg.Jobs.RegistrationClose)
	}
	if len(cfg.App.AllowedOrigins) != 1 || !cfg.Features.EnableMetrics || !cfg.IsDevelopment() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Parse([]byte(validYAML))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		cfg.App.SecretKey = "secret"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.App.SecretKey = "" }, "APP_SECRET_KEY"},
		{"missing port", func(c *Config) { c.App.Port = 0 }, "port"},
		{"unsupported driver", func(c *Config) { c.Database.Driver = "postgres" }, "unsupported"},
		{"bad cron", func(c *Config) { c.Jobs.RecordAudit = "every night" }, "record_audit"},
		{"email without sender", func(c *Config) {
			c.Email.Enabled = true
			c.Email.Region = "us-east-1"
		}, "sender"},
		{"email without credentials", func(c *Config) {
			c.Email.Enabled = true
			c.Email.Region = "us-east-1"
			c.Email.Sender = "league@example.com"
		}, "AWS_ACCESS_KEY_ID"},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestLoadReadsSecretFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(validYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "from-env")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SecretKey != "from-env" {
		t.Fatalf("expected secret from environment, got %q", cfg.App.SecretKey)
	}
}
