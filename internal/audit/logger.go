// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package audit

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/socialpulse/internal/logging"
)

// Config holds configuration for the audit logger.
type Config struct {
	// MinSeverity drops events below this level.
	MinSeverity Severity

	// RetentionDays is how long events are kept.
	RetentionDays int

	// CleanupInterval is how often retention is enforced.
	CleanupInterval time.Duration

	// BufferSize is the capacity of the async write buffer.
	BufferSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinSeverity:     SeverityInfo,
		RetentionDays:   90,
		CleanupInterval: time.Hour,
		BufferSize:      1000,
	}
}

// Logger buffers events and writes them to a Store from Serve.
type Logger struct {
	config Config
	store  Store
	events chan *Event
	now    func() time.Time
}

// NewLogger creates an audit logger. Zero config fields take defaults.
func NewLogger(store Store, config Config) *Logger {
	def := DefaultConfig()
	if config.MinSeverity == "" {
		config.MinSeverity = def.MinSeverity
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = def.RetentionDays
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = def.CleanupInterval
	}
	if config.BufferSize <= 0 {
		config.BufferSize = def.BufferSize
	}
	return &Logger{
		config: config,
		store:  store,
		events: make(chan *Event, config.BufferSize),
		now:    time.Now,
	}
}

// Serve drains the buffer into the store and enforces retention until ctx is
// cancelled. Buffered events are flushed before it returns.
func (l *Logger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.drain()
			return ctx.Err()
		case event := <-l.events:
			l.write(event)
		case <-ticker.C:
			l.cleanup(ctx)
		}
	}
}

// String names the service for the supervisor.
func (l *Logger) String() string {
	return "audit-logger"
}

func (l *Logger) drain() {
	for {
		select {
		case event := <-l.events:
			l.write(event)
		default:
			return
		}
	}
}

func (l *Logger) write(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("event_type", string(event.Type)).Msg("Failed to save audit event")
	}
}

func (l *Logger) cleanup(ctx context.Context) {
	cutoff := l.now().AddDate(0, 0, -l.config.RetentionDays)
	count, err := l.store.Delete(ctx, cutoff)
	if err != nil {
		logging.Error().Err(err).Msg("Audit cleanup failed")
		return
	}
	if count > 0 {
		logging.Info().Int64("count", count).Msg("Removed expired audit events")
	}
}

// Log queues an event. It never blocks: when the buffer is full the event is
// dropped with a warning.
func (l *Logger) Log(event *Event) {
	if l == nil {
		return
	}
	if severityOrder[event.Severity] < severityOrder[l.config.MinSeverity] {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}

	select {
	case l.events <- event:
	default:
		logging.Warn().Str("event_type", string(event.Type)).Msg("Audit buffer full, dropping event")
	}
}

// Query returns stored events matching the filter, newest first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// Record builds an event from an HTTP request and queues it.
func (l *Logger) Record(r *http.Request, typ EventType, outcome Outcome, actor Actor, description string, metadata map[string]interface{}) {
	if l == nil {
		return
	}
	severity := SeverityInfo
	switch {
	case typ == EventTypeAuthLockout:
		severity = SeverityCritical
	case outcome == OutcomeFailure:
		severity = SeverityWarning
	}

	event := &Event{
		Type:        typ,
		Severity:    severity,
		Outcome:     outcome,
		Actor:       actor,
		Source:      SourceFromRequest(r),
		Description: description,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	}
	if len(metadata) > 0 {
		event.Metadata = mustJSON(metadata)
	}
	l.Log(event)
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// SourceFromRequest extracts the client address and user agent. RemoteAddr is
// expected to have been rewritten by the real-IP middleware already.
func SourceFromRequest(r *http.Request) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}
