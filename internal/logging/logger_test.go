// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// The tests below replace the process logger and global level, so they do
// not run in parallel.

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	returned := Init(Config{Level: "debug", Format: "json", Output: &buf})
	returned.Debug().Msg("from returned logger")
	l := Logger()
	l.Info().Msg("from process logger")

	output := buf.String()
	for _, want := range []string{"from returned logger", "from process logger", `"level":"debug"`, `"time"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %s, got: %s", want, output)
		}
	}
}

func TestInit_Caller(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	l := Init(Config{Level: "info", Caller: true, Output: &buf})
	l.Info().Msg("with caller")

	if !strings.Contains(buf.String(), `"caller"`) {
		t.Errorf("expected caller field: %s", buf.String())
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := levelOf(tt.input); got != tt.expected {
				t.Errorf("levelOf(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInit_SetsGlobalLevel(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	l := Init(Config{Level: "error", Output: &buf})
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("global level = %v, want error", zerolog.GlobalLevel())
	}
	l.Info().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info entry written at error level: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())
	Init(Config{Level: "info", Output: &buf})

	logger := WithComponent("recwire")
	logger.Info().Msg("component message")

	if !strings.Contains(buf.String(), `"component":"recwire"`) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewTestLogger(&buf)
	logger.Info().Str("key", "value").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, `"key":"value"`) {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	defer Init(DefaultConfig())

	l := Init(Config{Level: "info", Format: "console", Output: &buf})
	l.Info().Msg("console test")

	output := buf.String()
	if !strings.Contains(output, "console test") {
		t.Errorf("expected message in output: %s", output)
	}
	if strings.Contains(output, `"level"`) {
		t.Errorf("expected console format (not JSON): %s", output)
	}
}
