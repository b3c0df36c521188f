/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package interpreter is the stack-machine core: it decodes one
// instruction at a time from a method's Code bytes, applies it to the
// current Frame, and advances according to a small control-flow state
// machine (continue, relative branch, absolute branch, return) rather
// than mutating the program counter inline at every call site.
package interpreter

import "classvm/frame"

// Kind discriminates the four control-flow outcomes an instruction can
// produce.
type Kind int

const (
	KindContinue Kind = iota
	KindGotoRelative
	KindGotoAbsolute
	KindReturn
)

// State is the result of executing one instruction. Exactly one of
// Delta/Addr/Value is meaningful, selected by Kind. For KindContinue,
// Addr carries the already-computed next program counter (the
// instruction's address plus its own encoded length), so the dispatch
// loop never has to re-derive instruction widths itself.
type State struct {
	Kind     Kind
	Delta    int         // KindGotoRelative: signed offset from the branching instruction's address
	Addr     int         // KindGotoAbsolute / KindContinue: absolute bytecode offset
	Value    frame.Value // KindReturn: the method's result, zero value if void
	HasValue bool
}

func Continue(nextPC int) State { return State{Kind: KindContinue, Addr: nextPC} }

func GotoRelative(delta int) State { return State{Kind: KindGotoRelative, Delta: delta} }

func GotoAbsolute(addr int) State { return State{Kind: KindGotoAbsolute, Addr: addr} }

func Return(v frame.Value) State { return State{Kind: KindReturn, Value: v, HasValue: true} }

func ReturnVoid() State { return State{Kind: KindReturn} }
