/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the leveled diagnostic logger used by every other
// package in this module, in place of ad hoc fmt.Println calls. It wraps
// log/slog with a small set of named severities, a package-level minimum
// level, and short call-site helpers (Trace, Fine, Info, Warning, Error)
// rather than a configuration object threaded through every call.
package trace

import (
	"log/slog"
	"os"
)

// Level names a trace severity, ordered low to high.
type Level int

const (
	LevelTrace Level = iota
	LevelFine
	LevelInfo
	LevelWarning
	LevelSevere
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelFine:
		return "FINE"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelSevere:
		return "SEVERE"
	default:
		return "UNKNOWN"
	}
}

var (
	minLevel = LevelInfo
	logger   = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// Init installs the default stderr-backed logger and resets the minimum
// level to Info. Tests that need to capture output call SetOutput after
// Init.
func Init() {
	minLevel = LevelInfo
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLevel sets the minimum severity that will actually be emitted.
func SetLevel(l Level) {
	minLevel = l
}

// SetOutput redirects subsequent log output, used by tests that pipe
// stderr to a buffer to assert on emitted messages.
func SetOutput(w *os.File) {
	logger = slog.New(slog.NewTextHandler(w, nil))
}

func emit(l Level, msg string) {
	if l < minLevel {
		return
	}
	logger.Info(msg, "severity", l.String())
}

// Trace logs at the lowest severity: step-by-step interpreter detail.
func Trace(msg string) { emit(LevelTrace, msg) }

// Fine logs diagnostic detail one notch above Trace.
func Fine(msg string) { emit(LevelFine, msg) }

// Log logs at the given level, for call sites that want to name the
// severity explicitly rather than through one of the fixed helpers.
func Log(msg string, l Level) { emit(l, msg) }

// Info logs at the default operating severity.
func Info(msg string) { emit(LevelInfo, msg) }

// Warning logs a recoverable anomaly.
func Warning(msg string) { emit(LevelWarning, msg) }

// Error logs a fatal condition immediately before the caller returns an
// error to its own caller. It does not panic or exit; that decision
// belongs to the boundary (CLI) layer.
func Error(msg string) { emit(LevelSevere, msg) }
