// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/socialpulse/internal/models"
	"github.com/tomtom215/socialpulse/internal/onboarding"
)

func newTestUserStore() (*UserStore, *onboarding.MemoryStore) {
	kv := onboarding.NewMemoryStore()
	return NewUserStore(kv, bcrypt.MinCost), kv
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestUserStore()

	user, err := store.Register(ctx, "Analyst", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned empty ID")
	}
	if user.Role != models.RoleViewer {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleViewer)
	}

	raw, found, err := kv.Get(ctx, "user:analyst")
	if err != nil || !found {
		t.Fatalf("user record missing: found=%v err=%v", found, err)
	}
	if strings.Contains(raw, "password123") {
		t.Error("stored record contains the plaintext password")
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"exact username", "Analyst", "password123", nil},
		{"case-insensitive username", "analyst", "password123", nil},
		{"wrong password", "Analyst", "password124", ErrInvalidCredentials},
		{"unknown user", "nobody", "password123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("Authenticate() ID = %q, want %q", got.ID, user.ID)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestUserStore()

	if _, err := store.Register(ctx, "analyst", "password123", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := store.Register(ctx, "ANALYST", "otherpass1", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() duplicate error = %v, want ErrUserExists", err)
	}
}

func TestRegisterConcurrentSameName(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestUserStore()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Register(ctx, "race", "password123", ""); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successful registrations = %d, want 1", successes)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	store, _ := newTestUserStore()
	if _, err := store.Register(context.Background(), "  ", "password123", ""); err == nil {
		t.Error("Register() with blank username expected error")
	}
	if _, err := store.Register(context.Background(), "analyst", "", ""); err == nil {
		t.Error("Register() with empty password expected error")
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestUserStore()

	user, err := store.Register(ctx, "analyst", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "analyst" {
		t.Errorf("Username = %q, want analyst", got.Username)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		store, _ := newTestUserStore()
		if err := store.EnsureAdmin(ctx, "admin", "adminpass1"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
		user, err := store.Authenticate(ctx, "admin", "adminpass1")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Role != models.RoleAdmin {
			t.Errorf("Role = %q, want admin", user.Role)
		}
	})

	t.Run("promotes existing user and keeps password", func(t *testing.T) {
		store, _ := newTestUserStore()
		if _, err := store.Register(ctx, "admin", "original1", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if err := store.EnsureAdmin(ctx, "admin", "replacement1"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
		user, err := store.Authenticate(ctx, "admin", "original1")
		if err != nil {
			t.Fatalf("Authenticate() with original password error = %v", err)
		}
		if user.Role != models.RoleAdmin {
			t.Errorf("Role = %q, want admin", user.Role)
		}
		byID, err := store.GetByID(ctx, user.ID)
		if err != nil || byID.Role != models.RoleAdmin {
			t.Errorf("GetByID() = %+v, %v; want admin role", byID, err)
		}
	})

	t.Run("no credentials is a no-op", func(t *testing.T) {
		store, kv := newTestUserStore()
		if err := store.EnsureAdmin(ctx, "", ""); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
		if _, found, _ := kv.Get(ctx, "user:"); found {
			t.Error("EnsureAdmin() with empty username wrote a record")
		}
	})
}

func TestNewUserStoreClampsCost(t *testing.T) {
	store := NewUserStore(onboarding.NewMemoryStore(), 99)
	if store.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", store.cost, bcrypt.DefaultCost)
	}
}
