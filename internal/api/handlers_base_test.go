// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/authz"
	"github.com/tomtom215/socialpulse/internal/cache"
	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/models"
	"github.com/tomtom215/socialpulse/internal/onboarding"
)

var testReference = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testReference.AddDate(0, 0, -n)
}

func score(v float64) *float64 { return &v }

// fakeSource serves fixed posts and counts reads so tests can observe caching.
// modified plays the role of the newest export's modification time.
type fakeSource struct {
	mu       sync.Mutex
	reads    int
	posts    map[int][]models.Post
	modified time.Time
}

func newFakeSource() *fakeSource {
	return &fakeSource{posts: map[int][]models.Post{
		1: {
			{BrandID: 1, Platform: models.PlatformInstagram, Likes: 100, Comments: 10, Reach: 1000, Date: daysAgo(1), Topic: "Quality", Sentiment: score(80), Text: "love the new range #fashion"},
			{BrandID: 1, Platform: models.PlatformInstagram, Likes: 50, Comments: 5, Reach: 500, Date: daysAgo(3), Topic: "Price", Sentiment: score(20), Text: "too pricey #fashion #style"},
			{BrandID: 1, Platform: models.PlatformTikTok, Likes: 300, Comments: 30, Reach: 0, Date: daysAgo(40), Topic: "Quality", Sentiment: score(60), Text: "haul video #style"},
		},
		2: {
			{BrandID: 2, Platform: models.PlatformYouTube, Likes: 10, Comments: 1, Reach: 100, Date: daysAgo(2), Topic: "Service", Text: "great service #fashion"},
		},
	}}
}

func (f *fakeSource) Posts(_ context.Context, brandID int) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.posts[brandID], nil
}

func (f *fakeSource) OfficialPosts(ctx context.Context, brandID int) ([]models.Post, error) {
	return f.Posts(ctx, brandID)
}

func (f *fakeSource) HashtagPosts(_ context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var all []models.Post
	for _, id := range []int{1, 2} {
		all = append(all, f.posts[id]...)
	}
	return all, nil
}

// addPost appends a post to brandID and moves the data version forward, as
// rewriting an export would.
func (f *fakeSource) addPost(brandID int, p models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[brandID] = append(f.posts[brandID], p)
	f.modified = f.modified.Add(time.Second)
}

func (f *fakeSource) dataVersion(context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modified, nil
}

func (f *fakeSource) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// fakeSentiment records refreshes.
type fakeSentiment struct {
	mu        sync.Mutex
	refreshes int
	records   []models.SentimentRecord
	err       error
}

func (f *fakeSentiment) Records(_ context.Context, brandID int, _ models.Platform, _ analytics.DateRange) []models.SentimentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SentimentRecord
	for _, r := range f.records {
		if r.BrandID == brandID {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeSentiment) Refresh(_ context.Context) (models.ExtractResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.err != nil {
		return models.ExtractResult{}, f.err
	}
	return models.ExtractResult{Records: len(f.records), Brands: []int{1, 2}, ComputedAt: testReference}, nil
}

// testEnv is a fully wired router over in-memory stores.
type testEnv struct {
	t         *testing.T
	handler   http.Handler
	api       *Handler
	source    *fakeSource
	sentiment *fakeSentiment
	users     *auth.UserStore
	jwt       *auth.JWTManager
	cache     *cache.Cache
	audit     *audit.MemoryStore
}

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:          "jwt",
		JWTSecret:         "this_is_a_very_long_secret_key_for_testing_purposes_12345",
		SessionTimeout:    time.Hour,
		RateLimitDisabled: true,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, testSecurityConfig())
}

func newTestEnvWithConfig(t *testing.T, sec *config.SecurityConfig) *testEnv {
	t.Helper()

	jwtManager, err := auth.NewJWTManager(sec)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer("")
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	kv := onboarding.NewMemoryStore()
	users := auth.NewUserStore(kv, bcrypt.MinCost)
	session := auth.NewMiddleware(jwtManager, sec)
	source := newFakeSource()
	sent := &fakeSentiment{records: []models.SentimentRecord{{BrandID: 1, Sentiment: "positive"}}}
	responses := cache.New("responses", time.Minute)

	auditStore := audit.NewMemoryStore(100)
	auditLogger := audit.NewLogger(auditStore, audit.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = auditLogger.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h := NewHandler(HandlerDeps{
		Analytics:  analytics.NewService(source, nil, testReference),
		Sentiment:  sent,
		Users:      users,
		JWT:        jwtManager,
		Session:    session,
		Onboarding: onboarding.NewService(kv),
		Cache:      responses,
		Audit:      auditLogger,
		Version:    "test",

		DataVersion: source.dataVersion,
	})
	router := NewRouter(h, NewChiMiddleware(NewChiMiddlewareConfig(sec)), session, authz.NewMiddleware(enforcer))

	return &testEnv{
		t:         t,
		handler:   router.SetupChi(),
		api:       h,
		source:    source,
		sentiment: sent,
		users:     users,
		jwt:       jwtManager,
		cache:     responses,
		audit:     auditStore,
	}
}

// auditEvents waits until the audit store holds at least n events of type
// and returns them, newest first.
func (e *testEnv) auditEvents(typ audit.EventType, n int) []audit.Event {
	e.t.Helper()
	filter := audit.QueryFilter{Types: []audit.EventType{typ}}
	deadline := time.Now().Add(2 * time.Second)
	for {
		events, err := e.audit.Query(context.Background(), filter)
		if err != nil {
			e.t.Fatalf("audit Query() error = %v", err)
		}
		if len(events) >= n || time.Now().After(deadline) {
			if len(events) < n {
				e.t.Fatalf("audit trail holds %d %s events, want %d", len(events), typ, n)
			}
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// token registers a user with role and returns a session token for it.
func (e *testEnv) token(username, role string) string {
	e.t.Helper()
	user, err := e.users.Register(context.Background(), username, "correct-horse-battery", role)
	if err != nil {
		e.t.Fatalf("Register() error = %v", err)
	}
	token, err := e.jwt.GenerateToken(user)
	if err != nil {
		e.t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata models.Metadata `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body = %s", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v; data = %s", err, env.Data)
	}
	return env
}
