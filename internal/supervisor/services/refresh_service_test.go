// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRefresher struct {
	calls     atomic.Int32
	refreshed bool
	err       error
}

func (f *fakeRefresher) RefreshIfOutdated(context.Context) (bool, error) {
	f.calls.Add(1)
	return f.refreshed, f.err
}

func TestNewRefreshServiceDefaults(t *testing.T) {
	svc := NewRefreshService(&fakeRefresher{}, 0, nil)
	if svc.interval != DefaultRefreshInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultRefreshInterval)
	}
	if svc.String() != "sentiment-refresh" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestRefreshServiceTicks(t *testing.T) {
	tests := []struct {
		name          string
		refreshed     bool
		err           error
		wantCallbacks bool
	}{
		{"rebuild runs hook", true, nil, true},
		{"up to date skips hook", false, nil, false},
		{"failure skips hook", false, errors.New("sentiment service unavailable"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &fakeRefresher{refreshed: tt.refreshed, err: tt.err}
			var hooks atomic.Int32
			svc := NewRefreshService(refresher, 20*time.Millisecond, func() { hooks.Add(1) })

			ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
			defer cancel()

			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want DeadlineExceeded", err)
			}
			// One immediate check plus roughly five ticks.
			if refresher.calls.Load() < 3 {
				t.Errorf("RefreshIfOutdated calls = %d, want >= 3", refresher.calls.Load())
			}
			if got := hooks.Load() > 0; got != tt.wantCallbacks {
				t.Errorf("hook ran = %v, want %v", got, tt.wantCallbacks)
			}
		})
	}
}

func TestRefreshServiceChecksImmediately(t *testing.T) {
	refresher := &fakeRefresher{}
	svc := NewRefreshService(refresher, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = svc.Serve(ctx)

	if refresher.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 check before the first tick", refresher.calls.Load())
	}
}
