// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Dataset Metrics
	DatasetRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_loaded_total",
			Help: "Total number of rows read from CSV exports",
		},
		[]string{"platform", "source"},
	)

	DatasetFileErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_file_errors_total",
			Help: "Total number of CSV exports skipped because they could not be read",
		},
		[]string{"reason"}, // "missing", "read"
	)

	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of analytics reductions in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// Sentiment Metrics
	SentimentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_requests_total",
			Help: "Total number of sentiment service calls by outcome",
		},
		[]string{"outcome"}, // "success", "fallback", "rejected", "canceled"
	)

	SentimentCacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_cache_refreshes_total",
			Help: "Total number of sentiment cache rebuilds",
		},
		[]string{"result"}, // "success", "error", "skipped"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Auth and onboarding
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts by result",
		},
		[]string{"result"},
	)

	OnboardingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_transitions_total",
			Help: "Total number of onboarding gate transitions",
		},
		[]string{"transition"}, // "complete", "reset"
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialpulse_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDatasetRows adds n rows read from a platform's export.
func RecordDatasetRows(platform, source string, n int) {
	if n <= 0 {
		return
	}
	DatasetRowsLoaded.WithLabelValues(platform, source).Add(float64(n))
}

// RecordDatasetFileError counts a skipped export.
func RecordDatasetFileError(reason string) {
	DatasetFileErrors.WithLabelValues(reason).Inc()
}

// ObserveAggregation records how long an analytics reduction took.
func ObserveAggregation(operation string, d time.Duration) {
	AggregationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordSentimentRequest counts a sentiment service call.
func RecordSentimentRequest(outcome string) {
	SentimentRequests.WithLabelValues(outcome).Inc()
}

// RecordSentimentCacheRefresh counts a sentiment cache rebuild attempt.
func RecordSentimentCacheRefresh(result string) {
	SentimentCacheRefreshes.WithLabelValues(result).Inc()
}

// SetCircuitBreakerState sets the breaker gauge (0=closed, 1=half-open, 2=open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTransition counts a breaker state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordAuthAttempt counts a login or token validation by result.
func RecordAuthAttempt(result string) {
	AuthAttempts.WithLabelValues(result).Inc()
}

// RecordOnboardingTransition counts an onboarding gate transition.
func RecordOnboardingTransition(transition string) {
	OnboardingTransitions.WithLabelValues(transition).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel formats an HTTP status code for use as a label value.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
