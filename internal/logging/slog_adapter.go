// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

// SlogHandler lets slog callers, sutureslog in particular, write through
// zerolog. Groups become dotted key prefixes.
type SlogHandler struct {
	logger zerolog.Logger
	prefix string
}

// NewSlogHandler wraps the current global logger.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{logger: Logger()}
}

// NewSlogLogger returns a slog.Logger backed by the global zerolog logger.
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return zerolog.GlobalLevel() <= zerologLevel(level)
}

//nolint:gocritic // slog.Handler passes Record by value
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(zerologLevel(record.Level))
	record.Attrs(func(a slog.Attr) bool {
		event = addAttr(event, h.prefix, a)
		return true
	})
	event.Msg(record.Message)
	return nil
}

// WithAttrs binds attrs into a child zerolog context.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	lctx := h.logger.With()
	for _, a := range attrs {
		lctx = addAttr(lctx, h.prefix, a)
	}
	return &SlogHandler{logger: lctx.Logger(), prefix: h.prefix}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, prefix: h.prefix + name + "."}
}

// fieldAdder is satisfied by both *zerolog.Event and zerolog.Context.
type fieldAdder[T any] interface {
	Str(string, string) T
	Int64(string, int64) T
	Uint64(string, uint64) T
	Float64(string, float64) T
	Bool(string, bool) T
	Dur(string, time.Duration) T
	Time(string, time.Time) T
	Interface(string, interface{}) T
}

func addAttr[T fieldAdder[T]](dst T, prefix string, a slog.Attr) T {
	key := prefix + a.Key
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return dst.Str(key, v.String())
	case slog.KindInt64:
		return dst.Int64(key, v.Int64())
	case slog.KindUint64:
		return dst.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		return dst.Float64(key, v.Float64())
	case slog.KindBool:
		return dst.Bool(key, v.Bool())
	case slog.KindDuration:
		return dst.Dur(key, v.Duration())
	case slog.KindTime:
		return dst.Time(key, v.Time())
	case slog.KindGroup:
		for _, ga := range v.Group() {
			dst = addAttr(dst, key+".", ga)
		}
		return dst
	default:
		return dst.Interface(key, v.Any())
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
