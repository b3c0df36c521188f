/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"context"

	"classvm/classloader"
	"classvm/codecache"
	"classvm/errs"
	"classvm/frame"
	"classvm/trace"
)

// entryMethodName is the method the interpreter looks for when Run is
// asked to execute a class: there is no argv/String[] plumbing in this
// interpreter's scope, so any method so named is eligible regardless of
// descriptor.
const entryMethodName = "main"

// Run resolves entryClassName in reg, locates its entry-point method,
// and executes it to completion, returning the method's result (the
// zero Value for a void return). It checks ctx before every instruction
// so a long-running or looping method can be cancelled from outside.
func Run(ctx context.Context, reg *classloader.Registry, entryClassName string) (frame.Value, error) {
	cf, err := reg.Lookup(entryClassName)
	if err != nil {
		return frame.Value{}, err
	}

	index, ok, err := cf.FindMethodIndex(entryMethodName)
	if err != nil {
		return frame.Value{}, err
	}
	if !ok {
		return frame.Value{}, &errs.MissingEntryPoint{Class: entryClassName, Method: entryMethodName}
	}

	cache := codecache.New(cf)
	code, err := cache.Get(index)
	if err != nil {
		return frame.Value{}, err
	}

	trace.Trace("entering " + entryClassName + "." + entryMethodName)
	f := frame.New(int(code.MaxStack), int(code.MaxLocals))

	pc := 0
	for {
		if err := ctx.Err(); err != nil {
			return frame.Value{}, err
		}
		state, err := execute(f, code.Bytes, pc)
		if err != nil {
			return frame.Value{}, err
		}
		switch state.Kind {
		case KindContinue:
			pc = state.Addr
		case KindGotoRelative:
			pc += state.Delta
		case KindGotoAbsolute:
			pc = state.Addr
		case KindReturn:
			trace.Trace("returned from " + entryClassName + "." + entryMethodName)
			return state.Value, nil
		}
	}
}
