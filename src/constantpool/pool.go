/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package constantpool

import (
	"classvm/bytereader"
	"classvm/errs"
)

// Index is a 1-based constant-pool index, as it appears on the wire.
type Index uint16

func readIndex(r *bytereader.Reader) (Index, error) {
	v, err := r.ReadU16("constant index")
	return Index(v), err
}

// Pool is the parsed constant pool for one class file: a 0-based Go
// slice standing in for the format's 1-based table, with Padding
// entries inserted after every Long/Double the way the format requires.
type Pool struct {
	entries []Constant
}

// Parse reads constant_pool_count followed by constant_pool_count-1
// logical entries, synthesizing a Padding entry after each Long/Double so
// 1-based indices into the resulting pool line up exactly as the
// format intends. This is deliberately NOT a straight ReadMany over the
// declared count: the count is taken as logical entries, not pool slots, and
// the two diverge whenever a Long or Double is present.
func Parse(r *bytereader.Reader) (*Pool, error) {
	count, err := r.ReadU16("constant_pool_count")
	if err != nil {
		return nil, err
	}
	logical := int(count) - 1
	entries := make([]Constant, 0, logical)
	for read := 0; read < logical; read++ {
		c, err := readConstant(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, c)
		switch c.(type) {
		case Long, Double:
			entries = append(entries, Padding{})
		}
	}
	return &Pool{entries: entries}, nil
}

// Len returns the number of slots in the pool, including Padding slots.
func (p *Pool) Len() int { return len(p.entries) }

// Lookup resolves a 1-based index to its constant, enforcing the three
// invariants the format requires: index 0 is never valid, an index
// beyond the pool's length is out of range, and an index landing on a
// Padding slot (the second half of a Long/Double) is an error.
func (p *Pool) Lookup(idx Index) (Constant, error) {
	if idx == 0 {
		return nil, &errs.ZeroIndex{}
	}
	if int(idx) > len(p.entries) {
		return nil, &errs.OutOfRange{Index: uint16(idx)}
	}
	c := p.entries[idx-1]
	if _, ok := c.(Padding); ok {
		return nil, &errs.IndexInsideDoubleWidthConstant{Index: uint16(idx)}
	}
	return c, nil
}

// Utf8At resolves idx and requires it to be a Utf8 constant, the
// pattern every attribute-name and descriptor lookup in this module
// needs.
func (p *Pool) Utf8At(idx Index) (string, error) {
	c, err := p.Lookup(idx)
	if err != nil {
		return "", err
	}
	u, ok := c.(Utf8)
	if !ok {
		return "", &errs.InvalidAttributeType{Index: uint16(idx)}
	}
	return u.Value, nil
}

// ClassNameAt resolves a ClassRef index down to the class's name
// string, following the ClassRef -> Utf8 chain in one step.
func (p *Pool) ClassNameAt(idx Index) (string, error) {
	c, err := p.Lookup(idx)
	if err != nil {
		return "", err
	}
	ref, ok := c.(ClassRef)
	if !ok {
		return "", &errs.InvalidAttributeType{Index: uint16(idx)}
	}
	return p.Utf8At(ref.NameIndex)
}

// NameAndTypeAt resolves a NameAndType index to its (name, descriptor)
// strings in one step.
func (p *Pool) NameAndTypeAt(idx Index) (name, descriptor string, err error) {
	c, err := p.Lookup(idx)
	if err != nil {
		return "", "", err
	}
	nt, ok := c.(NameAndType)
	if !ok {
		return "", "", &errs.InvalidAttributeType{Index: uint16(idx)}
	}
	name, err = p.Utf8At(nt.Name)
	if err != nil {
		return "", "", err
	}
	descriptor, err = p.Utf8At(nt.Descriptor)
	return name, descriptor, err
}

// MethodRefInfo resolves a MethodRef index down to (className,
// methodName, descriptor), the chain every INVOKE* opcode needs.
func (p *Pool) MethodRefInfo(idx Index) (class, name, descriptor string, err error) {
	c, err := p.Lookup(idx)
	if err != nil {
		return "", "", "", err
	}
	ref, ok := c.(MethodRef)
	if !ok {
		return "", "", "", &errs.InvalidAttributeType{Index: uint16(idx)}
	}
	class, err = p.ClassNameAt(ref.Class)
	if err != nil {
		return "", "", "", err
	}
	name, descriptor, err = p.NameAndTypeAt(ref.NameAndType)
	return class, name, descriptor, err
}

// FieldRefInfo resolves a FieldRef index down to (className, fieldName,
// descriptor), the chain GETFIELD/PUTFIELD/GETSTATIC/PUTSTATIC need.
func (p *Pool) FieldRefInfo(idx Index) (class, name, descriptor string, err error) {
	c, err := p.Lookup(idx)
	if err != nil {
		return "", "", "", err
	}
	ref, ok := c.(FieldRef)
	if !ok {
		return "", "", "", &errs.InvalidAttributeType{Index: uint16(idx)}
	}
	class, err = p.ClassNameAt(ref.Class)
	if err != nil {
		return "", "", "", err
	}
	name, descriptor, err = p.NameAndTypeAt(ref.NameAndType)
	return class, name, descriptor, err
}
