// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/models"
)

func testConfig(url string) *config.SentimentConfig {
	return &config.SentimentConfig{
		Enabled:            true,
		URL:                url,
		Timeout:            2 * time.Second,
		RequestsPerSecond:  1000,
		Burst:              10,
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	}
}

func TestClientAnalyze(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotText = body["text"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sentiment":"positive","score":0.8,"polarity":0.6,"subjectivity":0.7}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL + "/"))
	res := c.Analyze(context.Background(), "Love the new range")

	if gotText != "Love the new range" {
		t.Errorf("service received %q", gotText)
	}
	want := Result{Sentiment: models.SentimentPositive, Score: 0.8, Polarity: 0.6, Subjectivity: 0.7}
	if res != want {
		t.Errorf("Analyze = %+v, want %+v", res, want)
	}
	if got := c.Label(context.Background(), "again"); got != models.SentimentPositive {
		t.Errorf("Label = %q", got)
	}
}

func TestClientFallbacks(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	ctx := context.Background()

	if res := c.Analyze(ctx, "   "); res != Neutral() {
		t.Errorf("blank text = %+v, want neutral", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("blank text should not reach the service")
	}

	for i := 0; i < 2; i++ {
		if res := c.Analyze(ctx, "text"); res != Neutral() {
			t.Errorf("failed call %d = %+v, want neutral", i, res)
		}
	}
	if c.State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open after 2 failures", c.State())
	}

	if res := c.Analyze(ctx, "text"); res != Neutral() {
		t.Errorf("open breaker = %+v, want neutral", res)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("service hit %d times, want 2 (open breaker must short-circuit)", n)
	}
}

func TestClientDisabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false
	if res := NewClient(cfg).Analyze(context.Background(), "anything"); res != Neutral() {
		t.Errorf("disabled client = %+v, want neutral", res)
	}
}

func TestClientCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sentiment":"negative","polarity":-0.5}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if res := NewClient(testConfig(server.URL)).Analyze(ctx, "text"); res != Neutral() {
		t.Errorf("canceled context = %+v, want neutral", res)
	}
}

func TestBreakerIgnoresCallerCancellation(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"sentiment":"positive","polarity":0.4}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// BreakerMaxFailures is 2; abandoned calls must not count toward it.
	for i := 0; i < 5; i++ {
		c.Analyze(ctx, "dashboard closed mid-request")
	}
	if c.State() != gobreaker.StateClosed {
		t.Fatalf("breaker state = %v after canceled calls, want closed", c.State())
	}

	if got := c.Label(context.Background(), "still reachable"); got != models.SentimentPositive {
		t.Errorf("Label after canceled calls = %q, want positive", got)
	}
	if hits.Load() == 0 {
		t.Error("service never reached after canceled calls")
	}
}

func TestClientNormalizesPartialResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"polarity":-0.5}`))
	}))
	defer server.Close()

	res := NewClient(testConfig(server.URL)).Analyze(context.Background(), "awful service")
	if res.Sentiment != models.SentimentNegative || res.Score != 0.25 || res.Subjectivity != 0.5 {
		t.Errorf("normalized = %+v", res)
	}
}
