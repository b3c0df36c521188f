/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"classvm/errs"
	"classvm/frame"
)

// alignedOperandStart returns the first byte of a switch instruction's
// operands: 0-3 padding bytes after the opcode bring the following
// int32s onto a 4-byte boundary measured from the start of the method's
// bytecode.
func alignedOperandStart(pc int) int {
	start := pc + 1
	if rem := start % 4; rem != 0 {
		start += 4 - rem
	}
	return start
}

func i32At(code []byte, at int) int32 { return int32(u32(code, at)) }

// tableswitch implements TABLESWITCH: pop the int key, branch to the
// jump table entry for key (clamped by low/high), or to default if out
// of range. All offsets are relative to pc, the switch instruction's
// own address.
func tableswitch(f *frame.Frame, code []byte, pc int) (State, error) {
	key, err := f.PopCategory("tableswitch", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	start := alignedOperandStart(pc)
	if start+12 > len(code) {
		return State{}, &errs.OutOfRange{Index: uint16(start + 12)}
	}
	defaultOffset := i32At(code, start)
	low := i32At(code, start+4)
	high := i32At(code, start+8)
	if high < low {
		return GotoRelative(int(defaultOffset)), nil
	}
	n := int(high-low) + 1
	tableStart := start + 12
	if tableStart+4*n > len(code) {
		return State{}, &errs.OutOfRange{Index: uint16(tableStart + 4*n)}
	}
	if key.I < low || key.I > high {
		return GotoRelative(int(defaultOffset)), nil
	}
	entry := int(key.I - low)
	offset := i32At(code, tableStart+4*entry)
	return GotoRelative(int(offset)), nil
}

// lookupswitch implements LOOKUPSWITCH: pop the int key, linear-scan
// the sorted (match, offset) pairs for an exact match, falling back to
// default when none matches.
func lookupswitch(f *frame.Frame, code []byte, pc int) (State, error) {
	key, err := f.PopCategory("lookupswitch", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	start := alignedOperandStart(pc)
	if start+8 > len(code) {
		return State{}, &errs.OutOfRange{Index: uint16(start + 8)}
	}
	defaultOffset := i32At(code, start)
	npairs := i32At(code, start+4)
	if npairs < 0 {
		return State{}, &errs.OutOfRange{Index: uint16(start + 4)}
	}
	pairsStart := start + 8
	if pairsStart+8*int(npairs) > len(code) {
		return State{}, &errs.OutOfRange{Index: uint16(pairsStart + 8*int(npairs))}
	}
	for i := 0; i < int(npairs); i++ {
		at := pairsStart + 8*i
		match := i32At(code, at)
		if match == key.I {
			return GotoRelative(int(i32At(code, at+4))), nil
		}
	}
	return GotoRelative(int(defaultOffset)), nil
}
