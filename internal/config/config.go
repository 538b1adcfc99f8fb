// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package config loads SocialPulse configuration.
//
// Sources are layered with koanf, highest priority last:
//  1. built-in defaults (defaultConfig)
//  2. an optional YAML file (CONFIG_PATH, ./config.yaml, /etc/socialpulse/config.yaml)
//  3. environment variables (see envMappings)
//
// Config is immutable after Load and safe for concurrent reads.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Sentiment SentimentConfig `koanf:"sentiment"`
	Storage   StorageConfig   `koanf:"storage"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DataConfig locates the CSV exports and fixes the reference date used for
// relative date ranges such as "7days".
type DataConfig struct {
	Dir string `koanf:"dir"`

	// ReferenceDate is an RFC3339 timestamp. The exports end on this date, so
	// "last 7 days" is measured back from it rather than from time.Now.
	ReferenceDate string `koanf:"reference_date"`

	// CacheTTL controls how long rendered analytics responses are reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SentimentConfig configures the TextBlob sentiment service client.
type SentimentConfig struct {
	Enabled           bool          `koanf:"enabled"`
	URL               string        `koanf:"url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CachePath         string        `koanf:"cache_path"`
	RefreshInterval   time.Duration `koanf:"refresh_interval"`

	// Circuit breaker (sony/gobreaker)
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// StorageConfig selects the backend for onboarding flags and user accounts.
type StorageConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`
	// Path is the BadgerDB directory when Backend is "badger".
	Path string `koanf:"path"`
}

// SecurityConfig holds authentication and authorization settings.
type SecurityConfig struct {
	// AuthMode is "jwt" (default) or "none" for local development.
	AuthMode       string        `koanf:"auth_mode"`
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	CookieSecure   bool          `koanf:"cookie_secure"`

	// AdminUsername and AdminPassword seed an admin account at startup when both are set.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// CasbinPolicyPath overrides the embedded RBAC policy.
	CasbinPolicyPath string `koanf:"casbin_policy_path"`

	// Audit trail of logins and administrative actions.
	AuditEnabled       bool `koanf:"audit_enabled"`
	AuditRetentionDays int  `koanf:"audit_retention_days"`
	AuditMaxEvents     int  `koanf:"audit_max_events"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads and validates configuration.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// ReferenceTime parses Data.ReferenceDate. Validate guarantees it parses.
func (c *Config) ReferenceTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, c.Data.ReferenceDate)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
