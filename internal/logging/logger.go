// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, encoding and destination of the process logger.
type Config struct {
	// Level is a zerolog level name: trace, debug, info, warn, error or
	// disabled. Unknown or empty names mean info.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

// current is the process logger handed out by Logger.
var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // components may log before main calls Init
func init() {
	cfg := DefaultConfig()
	if os.Getenv("RECWIRE_QUIET") == "1" {
		cfg.Level = "error"
	}
	Init(cfg)
}

// Init builds the process logger from cfg, installs it and returns it.
// Calling it again replaces the logger.
//
//	logger := logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	c := inject.New(inject.DefaultConfig(), logger)
func Init(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(levelOf(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	current.Store(&l)
	return l
}

// levelOf maps a level name to a zerolog level, falling back to info.
func levelOf(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	return *current.Load()
}

// WithComponent returns the process logger tagged with a component field,
// the same field inject and recommend add to their own loggers.
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// Fatal logs at fatal level through the process logger and exits.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// NewTestLogger returns a debug-level JSON logger writing to w, for tests
// that assert on resolver log output.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
