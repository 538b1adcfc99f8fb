// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package supervisor

import (
	"context"
	"fmt"
	"sync/atomic"
)

// stubService stands in for the janitor, refresh loop or HTTP server. It
// fails its first failures runs, then blocks until canceled or returns exit.
type stubService struct {
	name     string
	failures int32
	exit     error

	runs     atomic.Int32
	returned atomic.Int32
}

func newStub(name string) *stubService { return &stubService{name: name} }

func (s *stubService) Serve(ctx context.Context) error {
	n := s.runs.Add(1)
	defer s.returned.Add(1)

	if n <= s.failures {
		return fmt.Errorf("%s: run %d crashed", s.name, n)
	}
	if s.exit != nil {
		return s.exit
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }
