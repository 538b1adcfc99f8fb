// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/socialpulse/internal/logging"
)

// DefaultRefreshInterval is how often the sentiment cache is checked.
const DefaultRefreshInterval = 5 * time.Minute

// Refresher rebuilds derived data when its inputs changed.
// *sentiment.Analyzer satisfies it.
type Refresher interface {
	RefreshIfOutdated(ctx context.Context) (bool, error)
}

// RefreshService checks for outdated sentiment data on start and then
// every interval. onRefresh runs after each rebuild.
type RefreshService struct {
	refresher Refresher
	interval  time.Duration
	onRefresh func()
	name      string
}

// NewRefreshService creates the refresh loop. A non-positive interval takes
// DefaultRefreshInterval; onRefresh may be nil.
func NewRefreshService(refresher Refresher, interval time.Duration, onRefresh func()) *RefreshService {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshService{
		refresher: refresher,
		interval:  interval,
		onRefresh: onRefresh,
		name:      "sentiment-refresh",
	}
}

// Serve runs until ctx is canceled. Refresh errors are logged and retried
// on the next tick; the sentiment service being down is not a crash.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *RefreshService) tick(ctx context.Context) {
	refreshed, err := s.refresher.RefreshIfOutdated(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.Warn().Err(err).Msg("Sentiment refresh failed, keeping cached records")
		}
		return
	}
	if refreshed && s.onRefresh != nil {
		s.onRefresh()
	}
}

// String names the service in supervisor events.
func (s *RefreshService) String() string {
	return s.name
}
