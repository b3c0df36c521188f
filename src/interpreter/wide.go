/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"classvm/errs"
	"classvm/frame"
	"classvm/opcodes"
)

// wide implements the WIDE prefix: the following opcode is re-decoded
// with a 16-bit local-variable index instead of the usual 8-bit one.
// IINC additionally carries a 16-bit signed constant in place of its
// usual 8-bit one.
func wide(f *frame.Frame, code []byte, pc int) (State, error) {
	if pc+1 >= len(code) {
		return State{}, &errs.VariableOutOfScope{Index: pc + 1}
	}
	op := code[pc+1]
	if op == opcodes.Iinc {
		if pc+6 > len(code) {
			return State{}, &errs.VariableOutOfScope{Index: pc + 6}
		}
		index := int(u16(code, pc+2))
		delta := int32(int16(u16(code, pc+4)))
		return iinc(f, pc+6, index, delta)
	}

	if pc+4 > len(code) {
		return State{}, &errs.VariableOutOfScope{Index: pc + 4}
	}
	index := int(u16(code, pc+2))
	nextPC := pc + 4

	switch op {
	case opcodes.Iload:
		return loadContinue(f, nextPC, index, frame.CategoryInt)
	case opcodes.Lload:
		return loadContinue(f, nextPC, index, frame.CategoryLong)
	case opcodes.Fload:
		return loadContinue(f, nextPC, index, frame.CategoryFloat)
	case opcodes.Dload:
		return loadContinue(f, nextPC, index, frame.CategoryDouble)
	case opcodes.Aload:
		return loadContinue(f, nextPC, index, frame.CategoryReference)
	case opcodes.Istore:
		return storeContinue(f, nextPC, index, frame.CategoryInt)
	case opcodes.Lstore:
		return storeContinue(f, nextPC, index, frame.CategoryLong)
	case opcodes.Fstore:
		return storeContinue(f, nextPC, index, frame.CategoryFloat)
	case opcodes.Dstore:
		return storeContinue(f, nextPC, index, frame.CategoryDouble)
	case opcodes.Astore:
		return storeContinue(f, nextPC, index, frame.CategoryReference)
	case opcodes.Ret:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "jsr/ret subroutines are future work"}
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "opcode is not valid after a wide prefix"}
	}
}
