// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/models"
)

func testJWTConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:       "jwt",
		JWTSecret:      "this_is_a_very_long_secret_key_for_testing_purposes_12345",
		SessionTimeout: time.Hour,
	}
}

func testUser() *models.User {
	return &models.User{ID: "8d4f3c1e-1111-4a2b-9c3d-000000000001", Username: "analyst", Role: models.RoleViewer}
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.SecurityConfig
		wantErr     bool
		wantTimeout time.Duration
	}{
		{
			name:        "valid secret",
			cfg:         testJWTConfig(),
			wantTimeout: time.Hour,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{SessionTimeout: time.Hour},
			wantErr: true,
		},
		{
			name:        "zero timeout takes default",
			cfg:         &config.SecurityConfig{JWTSecret: testJWTConfig().JWTSecret},
			wantTimeout: 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout() = %v, want %v", manager.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	user := testUser()
	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q is not a compact JWT", token)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != user.ID {
		t.Errorf("UserID() = %q, want %q", claims.UserID(), user.ID)
	}
	if claims.Username != user.Username {
		t.Errorf("Username = %q, want %q", claims.Username, user.Username)
	}
	if claims.Role != user.Role {
		t.Errorf("Role = %q, want %q", claims.Role, user.Role)
	}
	if claims.Issuer != tokenIssuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, tokenIssuer)
	}

	again, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	second, err := manager.ValidateToken(again)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ID == "" || claims.ID == second.ID {
		t.Errorf("token IDs %q and %q should be set and distinct", claims.ID, second.ID)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	otherCfg := testJWTConfig()
	otherCfg.JWTSecret = "a_completely_different_secret_that_is_long_enough"
	other, err := NewJWTManager(otherCfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreign, err := other.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredManager := &JWTManager{secret: manager.secret, timeout: -time.Minute}
	expired, err := expiredManager.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Username: "mallory",
		Role:     models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "x",
			Issuer:  tokenIssuer,
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString(none) error = %v", err)
	}

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x", Issuer: "elsewhere"},
	}).SignedString(manager.secret)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	}).SignedString(manager.secret)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"foreign secret", foreign},
		{"expired", expired},
		{"alg none", noneToken},
		{"wrong issuer", wrongIssuer},
		{"missing subject", noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error, got nil")
			}
		})
	}
}
