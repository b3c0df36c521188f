/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package constantpool decodes and resolves the constant pool: the
// 1-indexed, self-referential table every other part of a class file
// points into. The tagged union the format describes is rendered here as
// a Go interface (Constant) with one concrete type per variant and
// type-switch dispatch at every lookup site, the idiomatic Go stand-in
// for a closed sum.
package constantpool

import (
	"errors"
	"unicode/utf8"

	"classvm/bytereader"
	"classvm/errs"
)

var errInvalidUTF8 = errors.New("invalid utf-8 sequence")

func isValidUTF8(b []byte) bool { return utf8.Valid(b) }

// Constant is implemented by every constant-pool entry variant. The
// method is unexported so the set of implementations is closed to this
// package, matching the original format's fixed tag set.
type Constant interface {
	constantTag() byte
}

// Tag values as they appear in the class-file format.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClassRef           = 7
	TagStringRef          = 8
	TagFieldRef           = 9
	TagMethodRef          = 10
	TagInterfaceMethodRef = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagInvokeDynamic      = 18
)

type (
	// Integer holds a constant's raw 32 bits, reinterpreted as int32 by
	// the caller if a signed value is wanted.
	Integer struct{ Value uint32 }

	// Float holds a constant's raw bits already decoded to float32.
	Float struct{ Value float32 }

	// Long holds a constant's raw 64 bits. It occupies two pool slots;
	// the slot following it is always Padding.
	Long struct{ Value uint64 }

	// Double holds a constant's raw bits already decoded to float64. It
	// occupies two pool slots, as Long does.
	Double struct{ Value float64 }

	// Utf8 holds a decoded modified-UTF-8 string, read here as plain
	// UTF-8 (sufficient for this module's scope).
	Utf8 struct{ Value string }

	// ClassRef names a class by the index of its name's Utf8 constant.
	ClassRef struct{ NameIndex Index }

	// StringRef names a string constant by the index of its Utf8 value.
	StringRef struct{ StringIndex Index }

	// FieldRef, MethodRef, and InterfaceMethodRef each point at the
	// declaring class and a NameAndType describing the member.
	FieldRef          struct{ Class, NameAndType Index }
	MethodRef         struct{ Class, NameAndType Index }
	InterfaceMethodRef struct{ Class, NameAndType Index }

	// NameAndType pairs a member's name with its descriptor.
	NameAndType struct{ Name, Descriptor Index }

	// MethodType names a method descriptor string.
	MethodType struct{ DescriptorIndex Index }

	// InvokeDynamicRef points at a bootstrap-method-table entry and a
	// NameAndType describing the call site.
	InvokeDynamicRef struct {
		Bootstrap   uint16
		NameAndType Index
	}

	// MethodHandleRef names a reference-kind (1..9) and the index of the
	// field/method/interface-method it targets.
	MethodHandleRef struct {
		Kind  MethodHandleKind
		Index Index
	}

	// Padding occupies the slot immediately after a Long or Double;
	// looking it up is always an error.
	Padding struct{}
)

func (Integer) constantTag() byte            { return TagInteger }
func (Float) constantTag() byte              { return TagFloat }
func (Long) constantTag() byte               { return TagLong }
func (Double) constantTag() byte             { return TagDouble }
func (Utf8) constantTag() byte               { return TagUtf8 }
func (ClassRef) constantTag() byte           { return TagClassRef }
func (StringRef) constantTag() byte          { return TagStringRef }
func (FieldRef) constantTag() byte           { return TagFieldRef }
func (MethodRef) constantTag() byte          { return TagMethodRef }
func (InterfaceMethodRef) constantTag() byte { return TagInterfaceMethodRef }
func (NameAndType) constantTag() byte        { return TagNameAndType }
func (MethodType) constantTag() byte         { return TagMethodType }
func (InvokeDynamicRef) constantTag() byte   { return TagInvokeDynamic }
func (MethodHandleRef) constantTag() byte    { return TagMethodHandle }
func (Padding) constantTag() byte            { return 0 }

// MethodHandleKind is the reference-kind byte (1..9) of a MethodHandleRef.
type MethodHandleKind byte

const (
	HandleGetField MethodHandleKind = iota + 1
	HandleGetStatic
	HandlePutField
	HandlePutStatic
	HandleInvokeVirtual
	HandleInvokeStatic
	HandleInvokeSpecial
	HandleNewInvokeSpecial
	HandleInvokeInterface
)

func methodHandleKind(b byte) (MethodHandleKind, error) {
	if b < 1 || b > 9 {
		return 0, &errs.InvalidMethodHandleKind{Kind: b}
	}
	return MethodHandleKind(b), nil
}

// readConstant decodes a single constant-pool entry from the tag byte
// onward. It never reads the Padding entry itself; Padding is inserted
// synthetically by Parse after a Long or Double.
func readConstant(r *bytereader.Reader) (Constant, error) {
	tag, err := r.ReadU8("constant tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagUtf8:
		return readUtf8(r)
	case TagInteger:
		v, err := r.ReadU32("integer constant")
		return Integer{Value: v}, err
	case TagFloat:
		v, err := r.ReadF32("float constant")
		return Float{Value: v}, err
	case TagLong:
		v, err := r.ReadU64("long constant")
		return Long{Value: v}, err
	case TagDouble:
		v, err := r.ReadF64("double constant")
		return Double{Value: v}, err
	case TagClassRef:
		idx, err := readIndex(r)
		return ClassRef{NameIndex: idx}, err
	case TagStringRef:
		idx, err := readIndex(r)
		return StringRef{StringIndex: idx}, err
	case TagFieldRef:
		class, nt, err := readClassNameAndType(r)
		return FieldRef{Class: class, NameAndType: nt}, err
	case TagMethodRef:
		class, nt, err := readClassNameAndType(r)
		return MethodRef{Class: class, NameAndType: nt}, err
	case TagInterfaceMethodRef:
		class, nt, err := readClassNameAndType(r)
		return InterfaceMethodRef{Class: class, NameAndType: nt}, err
	case TagNameAndType:
		name, err := readIndex(r)
		if err != nil {
			return nil, err
		}
		desc, err := readIndex(r)
		return NameAndType{Name: name, Descriptor: desc}, err
	case TagMethodHandle:
		kindByte, err := r.ReadU8("method handle kind")
		if err != nil {
			return nil, err
		}
		kind, err := methodHandleKind(kindByte)
		if err != nil {
			return nil, err
		}
		idx, err := readIndex(r)
		return MethodHandleRef{Kind: kind, Index: idx}, err
	case TagMethodType:
		idx, err := readIndex(r)
		return MethodType{DescriptorIndex: idx}, err
	case TagInvokeDynamic:
		bootstrap, err := r.ReadU16("invoke dynamic bootstrap index")
		if err != nil {
			return nil, err
		}
		nt, err := readIndex(r)
		return InvokeDynamicRef{Bootstrap: bootstrap, NameAndType: nt}, err
	default:
		return nil, &errs.UnknownTag{Tag: tag}
	}
}

func readUtf8(r *bytereader.Reader) (Constant, error) {
	length, err := r.ReadU16("utf8 length")
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if err := r.ReadExact(buf, "utf8 bytes"); err != nil {
		return nil, err
	}
	if !isValidUTF8(buf) {
		return nil, &errs.InvalidString{Cause: errInvalidUTF8}
	}
	return Utf8{Value: string(buf)}, nil
}

func readClassNameAndType(r *bytereader.Reader) (class, nameAndType Index, err error) {
	class, err = readIndex(r)
	if err != nil {
		return
	}
	nameAndType, err = readIndex(r)
	return
}
