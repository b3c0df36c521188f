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

// execute decodes and runs the single instruction at code[pc], mutating
// f's operand stack and locals, and returns the resulting control-flow
// State. code is the method's raw Code.Bytes; pc must be a valid
// instruction boundary.
func execute(f *frame.Frame, code []byte, pc int) (State, error) {
	if pc < 0 || pc >= len(code) {
		return State{}, &errs.VariableOutOfScope{Index: pc}
	}
	op := code[pc]

	switch op {
	case opcodes.Breakpoint, opcodes.Impdep1, opcodes.Impdep2:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "reserved opcode"}
	}

	info, ok := opcodes.Lookup(op)
	if !ok {
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "unrecognized opcode"}
	}

	switch op {
	// --- constants ---
	case opcodes.Nop:
		return Continue(pc + 1), nil
	case opcodes.AconstNull:
		return pushContinue(f, pc+1, frame.NullValue())
	case opcodes.IconstM1, opcodes.Iconst0, opcodes.Iconst1, opcodes.Iconst2,
		opcodes.Iconst3, opcodes.Iconst4, opcodes.Iconst5:
		return pushContinue(f, pc+1, frame.IntValue(int32(op)-int32(opcodes.Iconst0)))
	case opcodes.Lconst0, opcodes.Lconst1:
		return pushContinue(f, pc+1, frame.LongValue(int64(op-opcodes.Lconst0)))
	case opcodes.Fconst0, opcodes.Fconst1, opcodes.Fconst2:
		return pushContinue(f, pc+1, frame.FloatValue(float32(op-opcodes.Fconst0)))
	case opcodes.Dconst0, opcodes.Dconst1:
		return pushContinue(f, pc+1, frame.DoubleValue(float64(op-opcodes.Dconst0)))
	case opcodes.Bipush:
		v := int32(int8(code[pc+1]))
		return pushContinue(f, pc+2, frame.IntValue(v))
	case opcodes.Sipush:
		v := int32(int16(u16(code, pc+1)))
		return pushContinue(f, pc+2, frame.IntValue(v))

	// --- loads ---
	case opcodes.Iload:
		return loadContinue(f, pc+2, int(code[pc+1]), frame.CategoryInt)
	case opcodes.Lload:
		return loadContinue(f, pc+2, int(code[pc+1]), frame.CategoryLong)
	case opcodes.Fload:
		return loadContinue(f, pc+2, int(code[pc+1]), frame.CategoryFloat)
	case opcodes.Dload:
		return loadContinue(f, pc+2, int(code[pc+1]), frame.CategoryDouble)
	case opcodes.Aload:
		return loadContinue(f, pc+2, int(code[pc+1]), frame.CategoryReference)
	case opcodes.Iload0, opcodes.Iload1, opcodes.Iload2, opcodes.Iload3:
		return loadContinue(f, pc+1, int(op-opcodes.Iload0), frame.CategoryInt)
	case opcodes.Lload0, opcodes.Lload1, opcodes.Lload2, opcodes.Lload3:
		return loadContinue(f, pc+1, int(op-opcodes.Lload0), frame.CategoryLong)
	case opcodes.Fload0, opcodes.Fload1, opcodes.Fload2, opcodes.Fload3:
		return loadContinue(f, pc+1, int(op-opcodes.Fload0), frame.CategoryFloat)
	case opcodes.Dload0, opcodes.Dload1, opcodes.Dload2, opcodes.Dload3:
		return loadContinue(f, pc+1, int(op-opcodes.Dload0), frame.CategoryDouble)
	case opcodes.Aload0, opcodes.Aload1, opcodes.Aload2, opcodes.Aload3:
		return loadContinue(f, pc+1, int(op-opcodes.Aload0), frame.CategoryReference)

	// --- stores ---
	case opcodes.Istore:
		return storeContinue(f, pc+2, int(code[pc+1]), frame.CategoryInt)
	case opcodes.Lstore:
		return storeContinue(f, pc+2, int(code[pc+1]), frame.CategoryLong)
	case opcodes.Fstore:
		return storeContinue(f, pc+2, int(code[pc+1]), frame.CategoryFloat)
	case opcodes.Dstore:
		return storeContinue(f, pc+2, int(code[pc+1]), frame.CategoryDouble)
	case opcodes.Astore:
		return storeContinue(f, pc+2, int(code[pc+1]), frame.CategoryReference)
	case opcodes.Istore0, opcodes.Istore1, opcodes.Istore2, opcodes.Istore3:
		return storeContinue(f, pc+1, int(op-opcodes.Istore0), frame.CategoryInt)
	case opcodes.Lstore0, opcodes.Lstore1, opcodes.Lstore2, opcodes.Lstore3:
		return storeContinue(f, pc+1, int(op-opcodes.Lstore0), frame.CategoryLong)
	case opcodes.Fstore0, opcodes.Fstore1, opcodes.Fstore2, opcodes.Fstore3:
		return storeContinue(f, pc+1, int(op-opcodes.Fstore0), frame.CategoryFloat)
	case opcodes.Dstore0, opcodes.Dstore1, opcodes.Dstore2, opcodes.Dstore3:
		return storeContinue(f, pc+1, int(op-opcodes.Dstore0), frame.CategoryDouble)
	case opcodes.Astore0, opcodes.Astore1, opcodes.Astore2, opcodes.Astore3:
		return storeContinue(f, pc+1, int(op-opcodes.Astore0), frame.CategoryReference)

	// --- stack manipulation ---
	case opcodes.Pop:
		if _, err := f.Pop("pop"); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Pop2:
		if err := pop2(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Dup:
		if err := dup(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.DupX1:
		if err := dupX1(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.DupX2:
		if err := dupX2(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Dup2:
		if err := dup2(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Dup2X1:
		if err := dup2X1(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Dup2X2:
		if err := dup2X2(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil
	case opcodes.Swap:
		if err := swap(f); err != nil {
			return State{}, err
		}
		return Continue(pc + 1), nil

	// --- arithmetic ---
	case opcodes.Iadd, opcodes.Isub, opcodes.Imul, opcodes.Iand, opcodes.Ior, opcodes.Ixor:
		return intBinOp(f, pc+1, op)
	case opcodes.Idiv:
		return intBinOpFallible(f, pc+1, idiv32)
	case opcodes.Irem:
		return intBinOpFallible(f, pc+1, irem32)
	case opcodes.Ladd, opcodes.Lsub, opcodes.Lmul, opcodes.Land, opcodes.Lor, opcodes.Lxor:
		return longBinOp(f, pc+1, op)
	case opcodes.Ldiv:
		return longBinOpFallible(f, pc+1, idiv64)
	case opcodes.Lrem:
		return longBinOpFallible(f, pc+1, irem64)
	case opcodes.Fadd, opcodes.Fsub, opcodes.Fmul, opcodes.Fdiv, opcodes.Frem:
		return floatBinOp(f, pc+1, op)
	case opcodes.Dadd, opcodes.Dsub, opcodes.Dmul, opcodes.Ddiv, opcodes.Drem:
		return doubleBinOp(f, pc+1, op)
	case opcodes.Ineg:
		return intUnaryOp(f, pc+1, func(a int32) int32 { return -a })
	case opcodes.Lneg:
		return longUnaryOp(f, pc+1, func(a int64) int64 { return -a })
	case opcodes.Fneg:
		return floatUnaryOp(f, pc+1, func(a float32) float32 { return -a })
	case opcodes.Dneg:
		return doubleUnaryOp(f, pc+1, func(a float64) float64 { return -a })
	case opcodes.Ishl:
		return intShift(f, pc+1, func(a int32, s uint) int32 { return a << s })
	case opcodes.Ishr:
		return intShift(f, pc+1, func(a int32, s uint) int32 { return a >> s })
	case opcodes.Iushr:
		return intShift(f, pc+1, func(a int32, s uint) int32 { return int32(uint32(a) >> s) })
	case opcodes.Lshl:
		return longShift(f, pc+1, func(a int64, s uint) int64 { return a << s })
	case opcodes.Lshr:
		return longShift(f, pc+1, func(a int64, s uint) int64 { return a >> s })
	case opcodes.Lushr:
		return longShift(f, pc+1, func(a int64, s uint) int64 { return int64(uint64(a) >> s) })
	case opcodes.Iinc:
		index := int(code[pc+1])
		delta := int32(int8(code[pc+2]))
		return iinc(f, pc+3, index, delta)

	// --- conversions ---
	case opcodes.I2l:
		return convert(f, pc+1, frame.CategoryInt, frame.CategoryLong)
	case opcodes.I2f:
		return convert(f, pc+1, frame.CategoryInt, frame.CategoryFloat)
	case opcodes.I2d:
		return convert(f, pc+1, frame.CategoryInt, frame.CategoryDouble)
	case opcodes.L2i:
		return convert(f, pc+1, frame.CategoryLong, frame.CategoryInt)
	case opcodes.L2f:
		return convert(f, pc+1, frame.CategoryLong, frame.CategoryFloat)
	case opcodes.L2d:
		return convert(f, pc+1, frame.CategoryLong, frame.CategoryDouble)
	case opcodes.F2i:
		return convert(f, pc+1, frame.CategoryFloat, frame.CategoryInt)
	case opcodes.F2l:
		return convert(f, pc+1, frame.CategoryFloat, frame.CategoryLong)
	case opcodes.F2d:
		return convert(f, pc+1, frame.CategoryFloat, frame.CategoryDouble)
	case opcodes.D2i:
		return convert(f, pc+1, frame.CategoryDouble, frame.CategoryInt)
	case opcodes.D2l:
		return convert(f, pc+1, frame.CategoryDouble, frame.CategoryLong)
	case opcodes.D2f:
		return convert(f, pc+1, frame.CategoryDouble, frame.CategoryFloat)
	case opcodes.I2b:
		return intUnaryOp(f, pc+1, func(a int32) int32 { return int32(int8(a)) })
	case opcodes.I2c:
		return intUnaryOp(f, pc+1, func(a int32) int32 { return int32(uint16(a)) })
	case opcodes.I2s:
		return intUnaryOp(f, pc+1, func(a int32) int32 { return int32(int16(a)) })

	// --- comparisons ---
	case opcodes.Lcmp:
		return cmpOp(f, pc+1, frame.CategoryLong, func(a, b frame.Value) int32 { return lcmp(a.L, b.L) })
	case opcodes.Fcmpl:
		return cmpOp(f, pc+1, frame.CategoryFloat, func(a, b frame.Value) int32 { return fcmp(float64(a.F), float64(b.F), -1) })
	case opcodes.Fcmpg:
		return cmpOp(f, pc+1, frame.CategoryFloat, func(a, b frame.Value) int32 { return fcmp(float64(a.F), float64(b.F), 1) })
	case opcodes.Dcmpl:
		return cmpOp(f, pc+1, frame.CategoryDouble, func(a, b frame.Value) int32 { return fcmp(a.D, b.D, -1) })
	case opcodes.Dcmpg:
		return cmpOp(f, pc+1, frame.CategoryDouble, func(a, b frame.Value) int32 { return fcmp(a.D, b.D, 1) })

	// --- branches ---
	case opcodes.Ifeq, opcodes.Ifne, opcodes.Iflt, opcodes.Ifge, opcodes.Ifgt, opcodes.Ifle:
		return branchUnary(f, code, pc, op)
	case opcodes.IfIcmpeq, opcodes.IfIcmpne, opcodes.IfIcmplt, opcodes.IfIcmpge, opcodes.IfIcmpgt, opcodes.IfIcmple:
		return branchIntCompare(f, code, pc, op)
	case opcodes.IfAcmpeq, opcodes.IfAcmpne:
		return branchRefCompare(f, code, pc, op)
	case opcodes.Ifnull:
		return branchNullity(f, code, pc, true)
	case opcodes.Ifnonnull:
		return branchNullity(f, code, pc, false)
	case opcodes.Goto:
		return GotoRelative(int(int16(u16(code, pc+1)))), nil
	case opcodes.GotoW:
		return GotoAbsolute(pc + int(int32(u32(code, pc+1)))), nil
	case opcodes.Jsr:
		if err := f.Push(frame.RefValue(pc + 3)); err != nil {
			return State{}, err
		}
		return GotoRelative(int(int16(u16(code, pc+1)))), nil
	case opcodes.JsrW:
		if err := f.Push(frame.RefValue(pc + 5)); err != nil {
			return State{}, err
		}
		return GotoAbsolute(pc + int(int32(u32(code, pc+1)))), nil
	case opcodes.Ret:
		return State{}, &errs.UnexpectedOpcode{Opcode: op, Reason: "jsr/ret subroutines are future work"}

	case opcodes.Tableswitch:
		return tableswitch(f, code, pc)
	case opcodes.Lookupswitch:
		return lookupswitch(f, code, pc)

	// --- returns ---
	case opcodes.Ireturn:
		return returnOp(f, frame.CategoryInt)
	case opcodes.Lreturn:
		return returnOp(f, frame.CategoryLong)
	case opcodes.Freturn:
		return returnOp(f, frame.CategoryFloat)
	case opcodes.Dreturn:
		return returnOp(f, frame.CategoryDouble)
	case opcodes.Areturn:
		return returnOp(f, frame.CategoryReference)
	case opcodes.Return:
		return ReturnVoid(), nil

	case opcodes.Monitorenter, opcodes.Monitorexit:
		// No-ops for the single-threaded core; decoded correctly so
		// bytecode containing them still advances the PC properly.
		return Continue(pc + 1), nil

	case opcodes.Wide:
		return wide(f, code, pc)

	default:
		// Object/array/invoke/field opcodes: their object-model
		// semantics are out of scope for this interpreter. Report the
		// stub explicitly rather than silently misinterpreting operands.
		return State{}, &errs.UnexpectedOpcode{
			Opcode: op,
			Reason: "opcode " + info.Mnemonic + " requires object-model support this interpreter does not implement",
		}
	}
}

func pushContinue(f *frame.Frame, nextPC int, v frame.Value) (State, error) {
	if err := f.Push(v); err != nil {
		return State{}, err
	}
	return Continue(nextPC), nil
}

func loadContinue(f *frame.Frame, nextPC, index int, cat frame.Category) (State, error) {
	v, err := f.GetLocal(index, cat)
	if err != nil {
		return State{}, err
	}
	return pushContinue(f, nextPC, v)
}

func storeContinue(f *frame.Frame, nextPC, index int, cat frame.Category) (State, error) {
	v, err := f.PopCategory(opName(cat), cat)
	if err != nil {
		return State{}, err
	}
	if err := f.SetLocal(index, v); err != nil {
		return State{}, err
	}
	return Continue(nextPC), nil
}

func opName(cat frame.Category) string { return "store " + cat.String() }

func returnOp(f *frame.Frame, cat frame.Category) (State, error) {
	v, err := f.PopCategory("return", cat)
	if err != nil {
		return State{}, err
	}
	return Return(v), nil
}

func u16(code []byte, at int) uint16 { return uint16(code[at])<<8 | uint16(code[at+1]) }

func u32(code []byte, at int) uint32 {
	return uint32(code[at])<<24 | uint32(code[at+1])<<16 | uint32(code[at+2])<<8 | uint32(code[at+3])
}
