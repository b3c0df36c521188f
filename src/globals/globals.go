/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds process-wide state that every other package may
// need to read without importing each other: the running version string,
// start time, and a handful of flags the CLI sets before any real work
// begins — a single place to stash cross-cutting state instead of
// threading it through every function signature.
package globals

import (
	"sync"
	"time"
)

// Globals is the process-wide state block. A single instance lives at
// package scope (Global) and is populated once by InitGlobals.
type Globals struct {
	VmModel   string // "classvm"
	Version   string
	StartTime time.Time

	// Strict controls whether unrecognized attribute names are a parse
	// error (true) or are silently skipped (false). See attribute.Decoder.
	Strict bool

	// TraceLevel is not read by the trace package, which keeps its own
	// minimum severity (see trace.SetLevel); nothing in this module sets it.
	TraceLevel int

	mu sync.RWMutex
}

// Global is the single process-wide instance.
var Global Globals

// InitGlobals resets Global to its zero-configured defaults for the named
// entry point (normally os.Args[0] or a test name). It must be called once
// before any other package reads Global.
func InitGlobals(vmModel string) {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	Global.VmModel = vmModel
	Global.Version = "0.1.0"
	Global.StartTime = time.Now()
	Global.Strict = true
}

// SetStrict toggles strict attribute-name checking at runtime, guarded by
// the same RWMutex discipline the rest of this package uses for any field
// that might be read concurrently with a CLI flag parse.
func SetStrict(strict bool) {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	Global.Strict = strict
}

// IsStrict reports the current strict-attribute-name setting.
func IsStrict() bool {
	Global.mu.RLock()
	defer Global.mu.RUnlock()
	return Global.Strict
}
