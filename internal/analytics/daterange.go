// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/socialpulse/internal/models"
)

// Canonical date range presets.
const (
	Preset7Days  = "7days"
	Preset30Days = "30days"
	Preset90Days = "90days"
	PresetAll    = "all"
	PresetCustom = "custom"
)

const day = 24 * time.Hour

// ErrInvalidDate is returned for startDate/endDate values that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// DateRange is an inclusive window of publication times. A zero Start means
// the range is unbounded and every post matches, dated or not. A zero End on
// a bounded range leaves it open-ended.
type DateRange struct {
	Preset string
	Start  time.Time
	End    time.Time
}

// Bounded reports whether the range filters anything.
func (r DateRange) Bounded() bool {
	return !r.Start.IsZero()
}

// Contains reports whether t falls inside the range. Undated posts only match
// an unbounded range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Bounded() {
		return true
	}
	if t.IsZero() {
		return false
	}
	return !t.Before(r.Start) && (r.End.IsZero() || !t.After(r.End))
}

// Echo reports the range in the form returned to clients.
func (r DateRange) Echo() models.RangeEcho {
	var echo models.RangeEcho
	if !r.End.IsZero() {
		end := r.End
		echo.End = &end
	}
	if r.Bounded() {
		start := r.Start
		echo.Start = &start
	}
	return echo
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(day - time.Nanosecond)
}

// presetDays maps accepted preset spellings to their canonical name and length.
var presetDays = map[string]struct {
	name string
	days int
}{
	"7days":  {Preset7Days, 7},
	"7d":     {Preset7Days, 7},
	"30days": {Preset30Days, 30},
	"30d":    {Preset30Days, 30},
	"90days": {Preset90Days, 90},
	"90d":    {Preset90Days, 90},
}

// PresetRange resolves a preset relative to ref. The last day of the range is
// ref's day; the first is N-1 days earlier at midnight UTC. "all" and the
// empty string are unbounded. Unknown presets fall back to 30 days.
func PresetRange(preset string, ref time.Time) DateRange {
	ref = ref.UTC()
	preset = strings.ToLower(strings.TrimSpace(preset))

	if preset == "" || preset == PresetAll {
		return DateRange{Preset: preset, End: ref}
	}

	p, ok := presetDays[preset]
	if !ok {
		p = presetDays[Preset30Days]
	}
	return DateRange{
		Preset: p.name,
		Start:  startOfDay(ref).AddDate(0, 0, -(p.days - 1)),
		End:    ref,
	}
}

// ResolveRange builds the range for a request. Explicit start/end dates
// (YYYY-MM-DD) take precedence over the preset; a missing side stays open,
// so a start date alone also matches posts after ref.
func ResolveRange(preset, start, end string, ref time.Time) (DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return PresetRange(preset, ref), nil
	}

	r := DateRange{Preset: PresetCustom}
	if start != "" {
		t, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return DateRange{}, fmt.Errorf("startDate %q: %w", start, ErrInvalidDate)
		}
		r.Start = t
	} else {
		// Open start still has to filter out undated posts once an end is given.
		r.Start = time.Unix(0, 0).UTC()
	}
	if end != "" {
		t, err := time.Parse(time.DateOnly, end)
		if err != nil {
			return DateRange{}, fmt.Errorf("endDate %q: %w", end, ErrInvalidDate)
		}
		r.End = endOfDay(t)
	}
	if !r.End.IsZero() && r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("endDate %s is before startDate %s: %w", end, start, ErrInvalidDate)
	}
	return r, nil
}

// Filter returns the posts on platform (all platforms when empty) inside r.
func Filter(posts []models.Post, platform models.Platform, r DateRange) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		if platform != "" && posts[i].Platform != platform {
			continue
		}
		if !r.Contains(posts[i].Date) {
			continue
		}
		out = append(out, posts[i])
	}
	return out
}
