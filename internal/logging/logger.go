// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package logging is the process-wide zerolog facade for SocialPulse.
//
// Every package logs through this facade rather than holding its own logger:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("brand_id", 1).Msg("Dataset loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Sentiment service unavailable")
//
// Terminate every event chain with Msg or Send, otherwise nothing is written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AppName is attached to every entry as the "app" field.
const AppName = "socialpulse"

// Config holds logging configuration.
type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, panic, disabled.
	Level string

	// Format is json (default) or console.
	Format string

	// Caller adds file:line to each entry.
	Caller bool

	// Version, when set, is attached to every entry.
	Version string

	// Output defaults to os.Stderr.
	Output io.Writer
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // logging must work before Init is called from main
func init() {
	global = build(Config{Level: "info"})
}

// Init replaces the global logger. It may be called more than once; tests
// use it to capture output.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	lctx := zerolog.New(out).With().Timestamp().Str("app", AppName)
	if cfg.Version != "" {
		lctx = lctx.Str("version", cfg.Version)
	}
	if cfg.Caller {
		lctx = lctx.Caller()
	}
	return lctx.Logger()
}

// parseLevel maps a level name to zerolog. Unknown names fall back to info.
func parseLevel(name string) zerolog.Level {
	if level, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether name is a known level.
func ValidLevel(name string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Debug starts a debug event.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info event.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn event.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error event.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal starts a fatal event; os.Exit(1) follows the write.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}
