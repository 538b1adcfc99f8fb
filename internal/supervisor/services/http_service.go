// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/socialpulse/internal/logging"
)

// DefaultShutdownTimeout is how long in-flight dashboard requests get to
// finish on shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the dashboard API server in the supervisor's API
// layer.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps server. A non-positive timeout takes
// DefaultShutdownTimeout.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve runs the dashboard API until ctx is canceled, then drains in-flight
// requests. A listener failure is returned so suture restarts the server
// with backoff.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	served := make(chan error, 1)
	go func() {
		served <- h.server.ListenAndServe()
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: listen: %w", h.name, err)
	case <-ctx.Done():
	}

	if err := h.drain(); err != nil {
		return err
	}
	<-served
	return ctx.Err()
}

// drain shuts the server down under its own deadline, since the serving
// context is already canceled.
func (h *HTTPServerService) drain() error {
	logging.Info().Str("service", h.name).Dur("timeout", h.shutdownTimeout).Msg("Draining API requests")

	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", h.name, err)
	}
	return nil
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string {
	return h.name
}
