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

// branchOffset reads the signed 16-bit branch offset that follows a
// two-byte branch opcode at code[pc].
func branchOffset(code []byte, pc int) int {
	return int(int16(u16(code, pc+1)))
}

// branchUnary implements IFEQ/IFNE/IFLT/IFGE/IFGT/IFLE: pop one int,
// compare against zero, branch relative to pc on success or fall
// through to pc+3 on failure.
func branchUnary(f *frame.Frame, code []byte, pc int, op byte) (State, error) {
	v, err := f.PopCategory("if", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	var taken bool
	switch op {
	case opcodes.Ifeq:
		taken = v.I == 0
	case opcodes.Ifne:
		taken = v.I != 0
	case opcodes.Iflt:
		taken = v.I < 0
	case opcodes.Ifge:
		taken = v.I >= 0
	case opcodes.Ifgt:
		taken = v.I > 0
	case opcodes.Ifle:
		taken = v.I <= 0
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not a unary branch"}
	}
	return branchResult(taken, code, pc), nil
}

// branchIntCompare implements IF_ICMP<cond>: pop two ints and branch on
// their relative order.
func branchIntCompare(f *frame.Frame, code []byte, pc int, op byte) (State, error) {
	b, err := f.PopCategory("if_icmp", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("if_icmp", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	var taken bool
	switch op {
	case opcodes.IfIcmpeq:
		taken = a.I == b.I
	case opcodes.IfIcmpne:
		taken = a.I != b.I
	case opcodes.IfIcmplt:
		taken = a.I < b.I
	case opcodes.IfIcmpge:
		taken = a.I >= b.I
	case opcodes.IfIcmpgt:
		taken = a.I > b.I
	case opcodes.IfIcmple:
		taken = a.I <= b.I
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not an int comparison branch"}
	}
	return branchResult(taken, code, pc), nil
}

// branchRefCompare implements IF_ACMPEQ/IF_ACMPNE: pop two references
// and branch on identity. Two Null values are equal to each other;
// any other comparison between non-comparable references falls back
// to Go's own equality on the Ref field, which is enough for the
// reference shapes this interpreter's object-free scope produces.
func branchRefCompare(f *frame.Frame, code []byte, pc int, op byte) (State, error) {
	b, err := popReference(f, "if_acmp")
	if err != nil {
		return State{}, err
	}
	a, err := popReference(f, "if_acmp")
	if err != nil {
		return State{}, err
	}
	eq := a.Ref == b.Ref
	var taken bool
	switch op {
	case opcodes.IfAcmpeq:
		taken = eq
	case opcodes.IfAcmpne:
		taken = !eq
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not a reference comparison branch"}
	}
	return branchResult(taken, code, pc), nil
}

// branchNullity implements IFNULL/IFNONNULL.
func branchNullity(f *frame.Frame, code []byte, pc int, wantNull bool) (State, error) {
	v, err := popReference(f, "ifnull")
	if err != nil {
		return State{}, err
	}
	isNull := v.Cat == frame.CategoryNull
	taken := isNull == wantNull
	return branchResult(taken, code, pc), nil
}

// popReference pops the top of the stack, accepting either a concrete
// reference or the null category (ACONST_NULL's result), since both are
// valid operands to IF_ACMP*/IFNULL/IFNONNULL.
func popReference(f *frame.Frame, op string) (frame.Value, error) {
	v, err := f.Pop(op)
	if err != nil {
		return frame.Value{}, err
	}
	if v.Cat != frame.CategoryReference && v.Cat != frame.CategoryNull {
		return frame.Value{}, &errs.StackType{Expected: "reference", Got: v.Cat.String()}
	}
	return v, nil
}

func branchResult(taken bool, code []byte, pc int) State {
	if taken {
		return GotoRelative(branchOffset(code, pc))
	}
	return Continue(pc + 3)
}
