/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"math"

	"classvm/errs"
)

// idiv32 implements IDIV's two's-complement semantics: division by zero
// faults, and Int::MIN / -1 wraps back to Int::MIN rather than
// overflowing.
func idiv32(a, b int32) (int32, error) {
	if b == 0 {
		return 0, &errs.ArithmeticFault{Op: "idiv"}
	}
	if a == math.MinInt32 && b == -1 {
		return math.MinInt32, nil
	}
	return a / b, nil
}

// irem32 implements IREM: the result's sign follows the dividend, as Go's
// own % operator already guarantees for integers.
func irem32(a, b int32) (int32, error) {
	if b == 0 {
		return 0, &errs.ArithmeticFault{Op: "irem"}
	}
	return a % b, nil
}

func idiv64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &errs.ArithmeticFault{Op: "ldiv"}
	}
	if a == math.MinInt64 && b == -1 {
		return math.MinInt64, nil
	}
	return a / b, nil
}

func irem64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &errs.ArithmeticFault{Op: "lrem"}
	}
	return a % b, nil
}

// shiftMaskInt masks a shift count to 0x1F, as ISHL/ISHR/IUSHR require.
func shiftMaskInt(count int32) uint { return uint(count) & 0x1F }

// shiftMaskLong masks a shift count to 0x3F, as LSHL/LSHR/LUSHR require.
func shiftMaskLong(count int32) uint { return uint(count) & 0x3F }

// lcmp implements LCMP: -1, 0, or 1 with no NaN case (longs have none).
func lcmp(a, b int64) int32 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// fcmp implements the shared comparison body of FCMPL/FCMPG/DCMPL/DCMPG:
// nanResult is pushed when either operand is NaN (-1 for the L variant,
// +1 for the G variant).
func fcmp(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
