// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Data.ReferenceDate != DefaultReferenceDate {
		t.Errorf("Data.ReferenceDate = %q, want %q", cfg.Data.ReferenceDate, DefaultReferenceDate)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.Sentiment.URL != "http://localhost:5001" {
		t.Errorf("Sentiment.URL = %q", cfg.Sentiment.URL)
	}
}

func TestReferenceTime(t *testing.T) {
	cfg := validConfig()
	ref := cfg.ReferenceTime()
	want := time.Date(2025, 5, 29, 23, 59, 59, 999_000_000, time.UTC)
	if !ref.Equal(want) {
		t.Errorf("ReferenceTime() = %v, want %v", ref, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, "JWT_SECRET"},
		{"auth none in dev", func(c *Config) { c.Security.AuthMode = "none"; c.Security.JWTSecret = "" }, ""},
		{"auth none in prod", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Server.Environment = "production"
		}, "AUTH_MODE=none"},
		{"unknown auth mode", func(c *Config) { c.Security.AuthMode = "oidc" }, "AUTH_MODE"},
		{"badger without path", func(c *Config) {
			c.Storage.Backend = "badger"
			c.Storage.Path = ""
		}, "STORAGE_PATH"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "STORAGE_BACKEND"},
		{"bad reference date", func(c *Config) { c.Data.ReferenceDate = "29/05/2025" }, "DATA_REFERENCE_DATE"},
		{"admin without password", func(c *Config) { c.Security.AdminUsername = "admin" }, "ADMIN_USERNAME"},
		{"short admin password", func(c *Config) {
			c.Security.AdminUsername = "admin"
			c.Security.AdminPassword = "short"
		}, "ADMIN_PASSWORD"},
		{"textblob url scheme", func(c *Config) { c.Sentiment.URL = "localhost:5001" }, "TEXTBLOB_URL"},
		{"sentiment disabled skips url", func(c *Config) {
			c.Sentiment.Enabled = false
			c.Sentiment.URL = ""
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"wildcard cors in prod", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"audit retention too short", func(c *Config) { c.Security.AuditRetentionDays = 0 }, "AUDIT_RETENTION_DAYS"},
		{"audit disabled skips retention", func(c *Config) {
			c.Security.AuditEnabled = false
			c.Security.AuditRetentionDays = 0
		}, ""},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"JWT_SECRET":      "security.jwt_secret",
		"TEXTBLOB_URL":    "sentiment.url",
		"STORAGE_BACKEND": "storage.backend",
		"HTTP_PORT":       "server.port",
		"HOME":            "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadWithKoanfLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 8080\ndata:\n  dir: /srv/exports\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080 from file", cfg.Server.Port)
	}
	if cfg.Data.Dir != "/srv/exports" {
		t.Errorf("Data.Dir = %q, want /srv/exports", cfg.Data.Dir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override warn", cfg.Logging.Level)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if cfg.Sentiment.Timeout != 5*time.Second {
		t.Errorf("Sentiment.Timeout = %v, want default 5s", cfg.Sentiment.Timeout)
	}
}

func TestLoadWithKoanfRejectsInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_MODE", "jwt")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error without JWT_SECRET")
	}
}
