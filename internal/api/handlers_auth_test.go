// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/models"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{"valid", map[string]string{"username": "analyst", "password": "longenough1"}, http.StatusOK, ""},
		{"duplicate", map[string]string{"username": "Analyst", "password": "longenough1"}, http.StatusConflict, models.ErrCodeConflict},
		{"short password", map[string]string{"username": "other", "password": "short"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"short username", map[string]string{"username": "ab", "password": "longenough1"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"symbols in username", map[string]string{"username": "bad name!", "password": "longenough1"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"unknown field", map[string]string{"username": "other", "password": "longenough1", "role": "admin"}, http.StatusBadRequest, models.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/register", "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("envelope = %+v, want code %s", env, tt.wantCode)
				}
				return
			}

			var user models.User
			decodeData(t, rec, &user)
			if user.Role != models.RoleViewer || user.ID == "" {
				t.Errorf("user = %+v", user)
			}
			cookie := sessionCookie(rec)
			if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
				t.Errorf("session cookie = %+v", cookie)
			}
		})
	}
}

func TestLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.token("analyst", models.RoleViewer)

	rec := env.do(http.MethodPost, "/api/login", "", map[string]string{
		"username": "analyst",
		"password": "correct-horse-battery",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	env.handler.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("current user status = %d, body = %s", me.Code, me.Body.String())
	}
	var user models.User
	decodeData(t, me, &user)
	if user.Username != "analyst" {
		t.Errorf("username = %q, want analyst", user.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.token("analyst", models.RoleViewer)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "analyst", "nope-nope-nope"},
		{"unknown user", "ghost", "correct-horse-battery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/login", "", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if sessionCookie(rec) != nil {
				t.Error("failed login set a cookie")
			}
		})
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv(t)
	env.token("analyst", models.RoleViewer)
	bad := map[string]string{"username": "analyst", "password": "wrong-password"}

	max := auth.DefaultLockoutConfig().MaxAttempts
	for i := 1; i < max; i++ {
		if rec := env.do(http.MethodPost, "/api/login", "", bad); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want %d", i, rec.Code, http.StatusUnauthorized)
		}
	}

	rec := env.do(http.MethodPost, "/api/login", "", bad)
	if rec.Code != http.StatusLocked {
		t.Fatalf("attempt %d status = %d, want %d", max, rec.Code, http.StatusLocked)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	// The right password does not get through while locked.
	rec = env.do(http.MethodPost, "/api/login", "", map[string]string{
		"username": "analyst",
		"password": "correct-horse-battery",
	})
	if rec.Code != http.StatusLocked {
		t.Errorf("locked login status = %d, want %d", rec.Code, http.StatusLocked)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != models.ErrCodeLocked {
		t.Errorf("envelope = %+v", env)
	}

	lockouts := env.auditEvents(audit.EventTypeAuthLockout, 1)
	if lockouts[0].Actor.Name != "analyst" || lockouts[0].Severity != audit.SeverityCritical {
		t.Errorf("lockout event = %+v", lockouts[0])
	}
	env.auditEvents(audit.EventTypeAuthFailure, max)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			rec := env.do(method, "/api/logout", "", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			setCookie := rec.Header().Get("Set-Cookie")
			if !strings.Contains(setCookie, auth.SessionCookieName+"=") || !strings.Contains(setCookie, "Max-Age=0") {
				t.Errorf("Set-Cookie = %q, want expired session cookie", setCookie)
			}
		})
	}
}

func TestAuthModeNone(t *testing.T) {
	sec := testSecurityConfig()
	sec.AuthMode = auth.AuthModeNone
	env := newTestEnvWithConfig(t, sec)

	rec := env.do(http.MethodGet, "/api/auth/user", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var user models.User
	decodeData(t, rec, &user)
	if user.Username == "" || user.Role != models.RoleAdmin {
		t.Errorf("user = %+v, want local developer admin", user)
	}

	if rec := env.do(http.MethodGet, "/api/brands/1/summary", "", nil); rec.Code != http.StatusOK {
		t.Errorf("summary status = %d without a session in mode none", rec.Code)
	}
}
