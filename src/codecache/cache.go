/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package codecache memoizes a class's methods' Code attributes by
// method index, so the interpreter only walks a method's attribute
// list once per method even across many invocations. The insert-once,
// read-many discipline mirrors the sync.RWMutex-guarded class tables
// elsewhere in this module, generalized here to a small typed cache
// rather than one bespoke map per concern.
package codecache

import (
	"sync"

	"classvm/attribute"
	"classvm/classfile"
	"classvm/errs"
)

// Cache memoizes Code attributes for one ClassFile's methods, keyed by
// the method's index into ClassFile.Methods.
type Cache struct {
	cf *classfile.ClassFile

	mu  sync.RWMutex
	hit map[int]attribute.Code
}

// New returns a Cache over cf's methods. Nothing is resolved until the
// first Get call for a given index.
func New(cf *classfile.ClassFile) *Cache {
	return &Cache{cf: cf, hit: make(map[int]attribute.Code)}
}

// Get returns the Code attribute for the method at methodIndex,
// resolving and caching it on first access. It fails if the index is
// out of range or the method has no Code attribute (native or
// abstract).
func (c *Cache) Get(methodIndex int) (attribute.Code, error) {
	c.mu.RLock()
	if code, ok := c.hit[methodIndex]; ok {
		c.mu.RUnlock()
		return code, nil
	}
	c.mu.RUnlock()

	if methodIndex < 0 || methodIndex >= len(c.cf.Methods) {
		return attribute.Code{}, &errs.VariableOutOfScope{Index: methodIndex}
	}
	code, ok := c.cf.Methods[methodIndex].Code()
	if !ok {
		return attribute.Code{}, &errs.MissingEntryPoint{Class: "", Method: "<no Code attribute>"}
	}

	c.mu.Lock()
	c.hit[methodIndex] = code
	c.mu.Unlock()
	return code, nil
}
