// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package sentiment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
)

const breakerName = "textblob"

// maxResponseBytes bounds how much of a service response is read.
const maxResponseBytes = 64 << 10

// errCallerGone marks a call abandoned because the caller's context ended.
// The breaker does not count it against the service.
var errCallerGone = errors.New("caller context done")

// Client calls the TextBlob /analyze endpoint. Calls are throttled by a token
// bucket and guarded by a circuit breaker.
type Client struct {
	baseURL string
	enabled bool
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[Result]
}

// NewClient creates a client from configuration.
func NewClient(cfg *config.SentimentConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client using the supplied HTTP client.
func NewClientWithHTTP(cfg *config.SentimentConfig, httpClient *http.Client) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	metrics.SetCircuitBreakerState(breakerName, 0)

	cb := gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Sentiment circuit breaker state change")
			metrics.SetCircuitBreakerState(name, stateValue(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		enabled: cfg.Enabled,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		cb:      cb,
	}
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Analyze scores text. It never fails: any problem yields Neutral().
func (c *Client) Analyze(ctx context.Context, text string) Result {
	if !c.enabled || strings.TrimSpace(text) == "" {
		return Neutral()
	}

	res, err := c.cb.Execute(func() (Result, error) {
		res, err := c.analyze(ctx, text)
		if err != nil && ctx.Err() != nil {
			return res, fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return res, err
	})
	if err != nil {
		outcome := "fallback"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = "rejected"
		case errors.Is(err, errCallerGone):
			outcome = "canceled"
		}
		metrics.RecordSentimentRequest(outcome)
		logging.Ctx(ctx).Debug().Err(err).Str("outcome", outcome).Msg("Sentiment analysis unavailable, using neutral")
		return Neutral()
	}

	metrics.RecordSentimentRequest("success")
	return res
}

// Label returns just the sentiment label of text.
func (c *Client) Label(ctx context.Context, text string) string {
	return c.Analyze(ctx, text).Sentiment
}

// State reports the circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

func (c *Client) analyze(ctx context.Context, text string) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return Result{}, fmt.Errorf("sentiment service returned status %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}

	logging.Ctx(ctx).Debug().Dur("duration", time.Since(start)).Str("sentiment", res.Sentiment).Msg("Sentiment analysed")
	return normalize(res), nil
}
