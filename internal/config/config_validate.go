// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	minJWTSecretLength   = 32
	minAdminPasswordLen  = 8
	maxRateLimitRequests = 100000
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateData,
		c.validateSentiment,
		c.validateStorage,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if _, err := time.Parse(time.RFC3339Nano, c.Data.ReferenceDate); err != nil {
		return fmt.Errorf("DATA_REFERENCE_DATE must be an RFC3339 timestamp: %w", err)
	}
	if c.Data.CacheTTL < 0 {
		return fmt.Errorf("DATA_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateSentiment() error {
	if !c.Sentiment.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Sentiment.URL, "http://") && !strings.HasPrefix(c.Sentiment.URL, "https://") {
		return fmt.Errorf("TEXTBLOB_URL must start with http:// or https://")
	}
	if c.Sentiment.RequestsPerSecond <= 0 {
		return fmt.Errorf("SENTIMENT_RPS must be positive")
	}
	if c.Sentiment.Burst < 1 {
		return fmt.Errorf("SENTIMENT_BURST must be at least 1")
	}
	if c.Sentiment.CachePath == "" {
		return fmt.Errorf("SENTIMENT_CACHE_PATH is required")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case "memory":
		return nil
	case "badger":
		if c.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required when STORAGE_BACKEND=badger")
		}
		return nil
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: memory, badger")
	}
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE is jwt", minJWTSecretLength)
		}
	case "none":
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: jwt, none")
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if (c.Security.AdminUsername == "") != (c.Security.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.Security.AdminPassword != "" && len(c.Security.AdminPassword) < minAdminPasswordLen {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", minAdminPasswordLen)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > maxRateLimitRequests {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and %d", maxRateLimitRequests)
		}
		if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h")
		}
	}

	if c.Security.AuditEnabled && c.Security.AuditRetentionDays < 1 {
		return fmt.Errorf("AUDIT_RETENTION_DAYS must be at least 1")
	}

	if c.IsProduction() && c.hasWildcardCORS() && c.Security.AuthMode != "none" {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production with authentication enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
}

func (c *Config) hasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard origin combined with authentication.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

// IsProduction reports ENVIRONMENT=production (or prod).
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}
