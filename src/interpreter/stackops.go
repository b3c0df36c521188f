/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import "classvm/frame"

// pop2 implements POP2: discards either one two-word value or two
// one-word values, whichever the top of the stack holds.
func pop2(f *frame.Frame) error {
	top, err := f.Pop("pop2")
	if err != nil {
		return err
	}
	if top.Words() == 2 {
		return nil
	}
	_, err = f.Pop("pop2")
	return err
}

// dup implements DUP: duplicate the top one-word value.
func dup(f *frame.Frame) error {
	v, err := f.Pop("dup")
	if err != nil {
		return err
	}
	if err := f.Push(v); err != nil {
		return err
	}
	return f.Push(v)
}

// dupX1 implements DUP_X1: ..., v2, v1 -> ..., v1, v2, v1 (v1 on top).
func dupX1(f *frame.Frame) error {
	v1, err := f.Pop("dup_x1")
	if err != nil {
		return err
	}
	v2, err := f.Pop("dup_x1")
	if err != nil {
		return err
	}
	for _, v := range []frame.Value{v1, v2, v1} {
		if err := f.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// dupX2 implements DUP_X2's two forms: ..., v3, v2, v1 -> ..., v1, v3,
// v2, v1 when v3,v2 are both category-1, or ..., v2, v1 -> ..., v1, v2,
// v1 when v2 alone is a category-2 value beneath the category-1 v1.
func dupX2(f *frame.Frame) error {
	v1, err := f.Pop("dup_x2")
	if err != nil {
		return err
	}
	v2, err := f.Pop("dup_x2")
	if err != nil {
		return err
	}
	if v2.Words() == 2 {
		for _, v := range []frame.Value{v1, v2, v1} {
			if err := f.Push(v); err != nil {
				return err
			}
		}
		return nil
	}
	v3, err := f.Pop("dup_x2")
	if err != nil {
		return err
	}
	for _, v := range []frame.Value{v1, v3, v2, v1} {
		if err := f.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// dup2 implements DUP2: duplicate the top two words, whether that is a
// single category-2 value or a pair of category-1 values.
func dup2(f *frame.Frame) error {
	top, err := f.Peek("dup2")
	if err != nil {
		return err
	}
	if top.Words() == 2 {
		return dup(f)
	}
	v1, err := f.Pop("dup2")
	if err != nil {
		return err
	}
	v2, err := f.Pop("dup2")
	if err != nil {
		return err
	}
	for _, v := range []frame.Value{v2, v1, v2, v1} {
		if err := f.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// dup2X1 implements DUP2_X1's common form: ..., v3, v2, v1 ->
// ..., v2, v1, v3, v2, v1 where v2,v1 is the top two-word group
// (either one category-2 value or two category-1 values) and v3 is a
// single category-1 value beneath it.
func dup2X1(f *frame.Frame) error {
	top, err := f.Peek("dup2_x1")
	if err != nil {
		return err
	}
	if top.Words() == 2 {
		wide, err := f.Pop("dup2_x1")
		if err != nil {
			return err
		}
		below, err := f.Pop("dup2_x1")
		if err != nil {
			return err
		}
		for _, v := range []frame.Value{wide, below, wide} {
			if err := f.Push(v); err != nil {
				return err
			}
		}
		return nil
	}
	v1, err := f.Pop("dup2_x1")
	if err != nil {
		return err
	}
	v2, err := f.Pop("dup2_x1")
	if err != nil {
		return err
	}
	v3, err := f.Pop("dup2_x1")
	if err != nil {
		return err
	}
	for _, v := range []frame.Value{v2, v1, v3, v2, v1} {
		if err := f.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// dup2X2 implements the all-category-1 and all-category-2 forms of
// DUP2_X2 (the two forms real bytecode overwhelmingly uses): either
// four single-word values, or two double-word values.
func dup2X2(f *frame.Frame) error {
	top, err := f.Peek("dup2_x2")
	if err != nil {
		return err
	}
	if top.Words() == 2 {
		wide, err := f.Pop("dup2_x2")
		if err != nil {
			return err
		}
		belowWide, err := f.Pop("dup2_x2")
		if err != nil {
			return err
		}
		if belowWide.Words() == 2 {
			for _, v := range []frame.Value{wide, belowWide, wide} {
				if err := f.Push(v); err != nil {
					return err
				}
			}
			return nil
		}
		below2, err := f.Pop("dup2_x2")
		if err != nil {
			return err
		}
		for _, v := range []frame.Value{wide, below2, belowWide, wide} {
			if err := f.Push(v); err != nil {
				return err
			}
		}
		return nil
	}
	v1, err := f.Pop("dup2_x2")
	if err != nil {
		return err
	}
	v2, err := f.Pop("dup2_x2")
	if err != nil {
		return err
	}
	v3, err := f.Pop("dup2_x2")
	if err != nil {
		return err
	}
	v4, err := f.Pop("dup2_x2")
	if err != nil {
		return err
	}
	for _, v := range []frame.Value{v2, v1, v4, v3, v2, v1} {
		if err := f.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// swap implements SWAP: exchange the top two one-word values.
func swap(f *frame.Frame) error {
	a, err := f.Pop("swap")
	if err != nil {
		return err
	}
	b, err := f.Pop("swap")
	if err != nil {
		return err
	}
	if err := f.Push(a); err != nil {
		return err
	}
	return f.Push(b)
}
