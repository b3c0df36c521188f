/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classloader is the host-facing registry of loaded classes: a
// name-keyed map the host populates from bytes it already has. There is
// no archive/jar support, no jmod scanning, no classpath search, and no
// superclass auto-load chain here — class path resolution and dynamic
// loading at runtime are explicitly out of scope for this module, so
// this package keeps only a name-keyed map of parsed classes, guarded
// by a simple RWMutex.
package classloader

import (
	"fmt"
	"runtime"
	"sync"

	"classvm/classfile"
	"classvm/errs"
	"classvm/trace"
)

// Registry is a name-keyed table of fully parsed classes.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*classfile.ClassFile
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{classes: make(map[string]*classfile.ClassFile)}
}

// Register installs cf under name, overwriting any previous entry. The
// host is responsible for resolving name consistently with how the
// class refers to itself (normally cf.Name()).
func (r *Registry) Register(name string, cf *classfile.ClassFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = cf
	trace.Trace(fmt.Sprintf("registered class %s", name))
}

// Lookup returns the class registered under name, or a MissingMainClass
// error naming it.
func (r *Registry) Lookup(name string) (*classfile.ClassFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cf, ok := r.classes[name]
	if !ok {
		return nil, cfe(&errs.MissingMainClass{Name: name})
	}
	return cf, nil
}

// Count returns the number of registered classes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}

// cfe attaches the caller's file:line to a returned error's trace log
// entry before returning it unchanged, a "class format error" wrapping
// idiom applied at every fallible call site.
func cfe(err error) error {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		trace.Error(fmt.Sprintf("%s:%d: %v", file, line, err))
	} else {
		trace.Error(err.Error())
	}
	return err
}
