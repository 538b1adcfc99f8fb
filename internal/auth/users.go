// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/models"
)

var (
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already taken")
	// ErrInvalidCredentials covers unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound is returned by lookups for unknown IDs.
	ErrUserNotFound = errors.New("user not found")
)

// KVStore is the subset of a string key-value store the user store needs.
// The onboarding stores satisfy it, so both share one database.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

// UserStore persists accounts with bcrypt-hashed passwords.
type UserStore struct {
	kv   KVStore
	cost int

	// serializes registration so the uniqueness check and write are atomic
	mu sync.Mutex

	// compared against when the user is unknown to keep timing uniform
	dummyHash []byte
}

// NewUserStore creates a user store. A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func NewUserStore(kv KVStore, cost int) *UserStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("socialpulse-dummy-password"), cost) //nolint:errcheck // cost is validated
	return &UserStore{kv: kv, cost: cost, dummyHash: dummy}
}

func userKey(username string) string {
	return "user:" + strings.ToLower(username)
}

func userIDKey(id string) string {
	return "user_id:" + id
}

// Register creates an account and returns it.
func (s *UserStore) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if role == "" {
		role = models.RoleViewer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found, err := s.kv.Get(ctx, userKey(username)); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if found {
		return nil, ErrUserExists
	}

	rec := &userRecord{
		User: models.User{
			ID:        uuid.New().String(),
			Username:  username,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: string(hash),
	}
	if err := s.put(ctx, rec); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("username", rec.Username).
		Str("role", rec.Role).
		Msg("User registered")

	user := rec.User
	return &user, nil
}

func (s *UserStore) put(ctx context.Context, rec *userRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.kv.Set(ctx, userKey(rec.Username), string(data)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if err := s.kv.Set(ctx, userIDKey(rec.ID), strings.ToLower(rec.Username)); err != nil {
		return fmt.Errorf("failed to index user: %w", err)
	}
	return nil
}

func (s *UserStore) load(ctx context.Context, username string) (*userRecord, error) {
	raw, found, err := s.kv.Get(ctx, userKey(username))
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &rec, nil
}

// Authenticate verifies the password and returns the account.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	rec, err := s.load(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password)) //nolint:errcheck // timing only
		metrics.RecordAuthAttempt("failure")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.RecordAuthAttempt("error")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthAttempt("failure")
		return nil, ErrInvalidCredentials
	}

	metrics.RecordAuthAttempt("success")
	user := rec.User
	return &user, nil
}

// GetByID looks up an account by its ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	username, found, err := s.kv.Get(ctx, userIDKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load user index: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	rec, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	user := rec.User
	return &user, nil
}

// EnsureAdmin creates the bootstrap administrator if the username is free
// and promotes it to admin if it already exists. The password of an
// existing account is left unchanged.
func (s *UserStore) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	rec, err := s.load(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		_, err = s.Register(ctx, username, password, models.RoleAdmin)
		if errors.Is(err, ErrUserExists) {
			return nil
		}
		return err
	case err != nil:
		return err
	}

	if rec.Role == models.RoleAdmin {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Role = models.RoleAdmin
	if err := s.put(ctx, rec); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Str("username", rec.Username).Msg("Promoted bootstrap user to admin")
	return nil
}
