/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"math"

	"classvm/errs"
	"classvm/frame"
	"classvm/opcodes"
)

// intBinOp implements the infallible int binary operators (IADD, ISUB,
// IMUL, IAND, IOR, IXOR): pop two ints, apply op, push the int result.
func intBinOp(f *frame.Frame, nextPC int, op byte) (State, error) {
	b, err := f.PopCategory("int-binop", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("int-binop", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	var r int32
	switch op {
	case opcodes.Iadd:
		r = a.I + b.I
	case opcodes.Isub:
		r = a.I - b.I
	case opcodes.Imul:
		r = a.I * b.I
	case opcodes.Iand:
		r = a.I & b.I
	case opcodes.Ior:
		r = a.I | b.I
	case opcodes.Ixor:
		r = a.I ^ b.I
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not an int binop"}
	}
	return pushContinue(f, nextPC, frame.IntValue(r))
}

// intBinOpFallible implements IDIV/IREM, which can fault on division by
// zero.
func intBinOpFallible(f *frame.Frame, nextPC int, op func(a, b int32) (int32, error)) (State, error) {
	b, err := f.PopCategory("int-binop", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("int-binop", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	r, err := op(a.I, b.I)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.IntValue(r))
}

func longBinOp(f *frame.Frame, nextPC int, op byte) (State, error) {
	b, err := f.PopCategory("long-binop", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("long-binop", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	var r int64
	switch op {
	case opcodes.Ladd:
		r = a.L + b.L
	case opcodes.Lsub:
		r = a.L - b.L
	case opcodes.Lmul:
		r = a.L * b.L
	case opcodes.Land:
		r = a.L & b.L
	case opcodes.Lor:
		r = a.L | b.L
	case opcodes.Lxor:
		r = a.L ^ b.L
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not a long binop"}
	}
	return pushContinue(f, nextPC, frame.LongValue(r))
}

func longBinOpFallible(f *frame.Frame, nextPC int, op func(a, b int64) (int64, error)) (State, error) {
	b, err := f.PopCategory("long-binop", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("long-binop", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	r, err := op(a.L, b.L)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.LongValue(r))
}

func floatBinOp(f *frame.Frame, nextPC int, op byte) (State, error) {
	b, err := f.PopCategory("float-binop", frame.CategoryFloat)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("float-binop", frame.CategoryFloat)
	if err != nil {
		return State{}, err
	}
	var r float32
	switch op {
	case opcodes.Fadd:
		r = a.F + b.F
	case opcodes.Fsub:
		r = a.F - b.F
	case opcodes.Fmul:
		r = a.F * b.F
	case opcodes.Fdiv:
		r = a.F / b.F
	case opcodes.Frem:
		r = float32(modFloat(float64(a.F), float64(b.F)))
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not a float binop"}
	}
	return pushContinue(f, nextPC, frame.FloatValue(r))
}

func doubleBinOp(f *frame.Frame, nextPC int, op byte) (State, error) {
	b, err := f.PopCategory("double-binop", frame.CategoryDouble)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("double-binop", frame.CategoryDouble)
	if err != nil {
		return State{}, err
	}
	var r float64
	switch op {
	case opcodes.Dadd:
		r = a.D + b.D
	case opcodes.Dsub:
		r = a.D - b.D
	case opcodes.Dmul:
		r = a.D * b.D
	case opcodes.Ddiv:
		r = a.D / b.D
	case opcodes.Drem:
		r = modFloat(a.D, b.D)
	default:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "not a double binop"}
	}
	return pushContinue(f, nextPC, frame.DoubleValue(r))
}

// modFloat implements the truncating remainder FREM/DREM use: the result
// takes the dividend's sign and is smaller in magnitude than the divisor,
// which is what Go's math.Mod computes.
func modFloat(a, b float64) float64 {
	return math.Mod(a, b)
}

func trunc(v float64) float64 {
	if v < 0 {
		return -float64(int64(-v))
	}
	return float64(int64(v))
}

func intUnaryOp(f *frame.Frame, nextPC int, op func(int32) int32) (State, error) {
	a, err := f.PopCategory("int-unaryop", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.IntValue(op(a.I)))
}

func longUnaryOp(f *frame.Frame, nextPC int, op func(int64) int64) (State, error) {
	a, err := f.PopCategory("long-unaryop", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.LongValue(op(a.L)))
}

func floatUnaryOp(f *frame.Frame, nextPC int, op func(float32) float32) (State, error) {
	a, err := f.PopCategory("float-unaryop", frame.CategoryFloat)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.FloatValue(op(a.F)))
}

func doubleUnaryOp(f *frame.Frame, nextPC int, op func(float64) float64) (State, error) {
	a, err := f.PopCategory("double-unaryop", frame.CategoryDouble)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.DoubleValue(op(a.D)))
}

// intShift and longShift implement ISHL/ISHR/IUSHR and LSHL/LSHR/LUSHR:
// the shift count always comes off the stack as an int, independent of
// the shifted value's own category.
func intShift(f *frame.Frame, nextPC int, op func(a int32, s uint) int32) (State, error) {
	shift, err := f.PopCategory("shift-count", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("int-shift", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.IntValue(op(a.I, shiftMaskInt(shift.I))))
}

func longShift(f *frame.Frame, nextPC int, op func(a int64, s uint) int64) (State, error) {
	shift, err := f.PopCategory("shift-count", frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("long-shift", frame.CategoryLong)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.LongValue(op(a.L, shiftMaskLong(shift.I))))
}

// iinc implements IINC: add a signed byte constant directly to a local
// int variable without touching the operand stack.
func iinc(f *frame.Frame, nextPC, index int, delta int32) (State, error) {
	v, err := f.GetLocal(index, frame.CategoryInt)
	if err != nil {
		return State{}, err
	}
	if err := f.SetLocal(index, frame.IntValue(v.I+delta)); err != nil {
		return State{}, err
	}
	return Continue(nextPC), nil
}

// convert implements the twelve numeric conversion opcodes (I2L..D2F),
// each of which pops one category's value and pushes another's.
func convert(f *frame.Frame, nextPC int, from, to frame.Category) (State, error) {
	v, err := f.PopCategory("convert", from)
	if err != nil {
		return State{}, err
	}
	var src float64
	switch from {
	case frame.CategoryInt:
		src = float64(v.I)
	case frame.CategoryLong:
		src = float64(v.L)
	case frame.CategoryFloat:
		src = float64(v.F)
	case frame.CategoryDouble:
		src = v.D
	}
	var out frame.Value
	switch to {
	case frame.CategoryInt:
		out = frame.IntValue(truncToInt32(from, v))
	case frame.CategoryLong:
		out = frame.LongValue(truncToInt64(from, v))
	case frame.CategoryFloat:
		out = frame.FloatValue(float32(src))
	case frame.CategoryDouble:
		out = frame.DoubleValue(src)
	}
	return pushContinue(f, nextPC, out)
}

// truncToInt32 and truncToInt64 implement JLS 5.1.3's narrowing rules:
// narrowing a float/double to an integral type rounds toward zero and
// saturates rather than wrapping, and converting from a wider integral
// type truncates bits.
func truncToInt32(from frame.Category, v frame.Value) int32 {
	switch from {
	case frame.CategoryLong:
		return int32(v.L)
	case frame.CategoryFloat:
		return int32(saturate(float64(v.F), -(1 << 31), (1<<31)-1))
	case frame.CategoryDouble:
		return int32(saturate(v.D, -(1 << 31), (1<<31)-1))
	default:
		return v.I
	}
}

func truncToInt64(from frame.Category, v frame.Value) int64 {
	var x float64
	switch from {
	case frame.CategoryInt:
		return int64(v.I)
	case frame.CategoryFloat:
		x = float64(v.F)
	case frame.CategoryDouble:
		x = v.D
	default:
		return v.L
	}
	// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold, so the
	// upper bound is checked before converting.
	if x >= 1<<63 {
		return math.MaxInt64
	}
	return int64(saturate(x, -(1 << 63), (1<<63)-1))
}

func saturate(v, min, max float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return trunc(v)
}

// cmpOp implements LCMP/FCMPL/FCMPG/DCMPL/DCMPG: pop two values of cat,
// push the int result of cmp(a, b).
func cmpOp(f *frame.Frame, nextPC int, cat frame.Category, cmp func(a, b frame.Value) int32) (State, error) {
	b, err := f.PopCategory("compare", cat)
	if err != nil {
		return State{}, err
	}
	a, err := f.PopCategory("compare", cat)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, frame.IntValue(cmp(a, b)))
}
