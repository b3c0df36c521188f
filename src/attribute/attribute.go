/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package attribute decodes class-file attributes: name-indexed,
// length-prefixed extension records attached to classes, fields,
// methods, and (recursively) to the Code attribute itself. Recognized
// names dispatch to a concrete parser; everything else either fails or
// is skipped, depending on the decoder's Strict setting.
package attribute

import (
	"classvm/bytereader"
	"classvm/constantpool"
	"classvm/errs"
)

// Attribute is implemented by every recognized attribute variant plus
// Unknown, the permissive-mode catch-all.
type Attribute interface {
	attributeName() string
}

// ExceptionTableRow is one entry of a Code attribute's exception table.
type ExceptionTableRow struct {
	StartPc, EndPc, HandlerPc uint16
	CatchType                 constantpool.Index // 0 means catch-all
}

type (
	// Code is a method's executable body: the raw instruction bytes
	// plus the stack/locals sizing and exception-handling metadata the
	// interpreter needs to run them.
	Code struct {
		MaxStack, MaxLocals uint16
		Bytes               []byte
		ExceptionTable      []ExceptionTableRow
		Attributes          []Attribute
	}

	// SourceFile names the source file a class was compiled from.
	SourceFile struct{ Index constantpool.Index }

	// ConstantValue gives a static final field's compile-time constant.
	ConstantValue struct{ Index constantpool.Index }

	// Exceptions lists the checked exception classes a method declares.
	Exceptions struct{ Index []constantpool.Index }

	// LineNumberTableRow maps a bytecode offset to a source line.
	LineNumberTableRow struct{ StartPc, LineNumber uint16 }

	// LineNumberTable is debug metadata mapping code offsets to source
	// lines.
	LineNumberTable struct{ Rows []LineNumberTableRow }

	// StackMapTable is the verification metadata the JVM format attaches
	// to a Code attribute: the expected types of locals/stack at
	// selected bytecode offsets.
	StackMapTable struct{ Frames []StackMapFrame }

	// Unknown preserves an unrecognized attribute's raw bytes rather
	// than discarding them, so permissive-mode callers can still see
	// what was skipped.
	Unknown struct {
		Name string
		Raw  []byte
	}
)

func (Code) attributeName() string            { return "Code" }
func (SourceFile) attributeName() string      { return "SourceFile" }
func (ConstantValue) attributeName() string   { return "ConstantValue" }
func (Exceptions) attributeName() string      { return "Exceptions" }
func (LineNumberTable) attributeName() string { return "LineNumberTable" }
func (StackMapTable) attributeName() string   { return "StackMapTable" }
func (u Unknown) attributeName() string       { return u.Name }

// GetCode returns the method/class's Code attribute, if present.
func GetCode(attrs []Attribute) (Code, bool) {
	for _, a := range attrs {
		if c, ok := a.(Code); ok {
			return c, true
		}
	}
	return Code{}, false
}

// Decoder decodes attributes against a constant pool. Strict controls
// whether an unrecognized attribute name is a parse error
// (UnknownAttributeType) or silently becomes an Unknown record; the
// default, matching globals.Global.Strict, is strict.
type Decoder struct {
	Pool   *constantpool.Pool
	Strict bool
}

// NewDecoder returns a Decoder over pool with the given strictness.
func NewDecoder(pool *constantpool.Pool, strict bool) *Decoder {
	return &Decoder{Pool: pool, Strict: strict}
}

// ReadOne decodes a single attribute: name index, declared length, then
// the variant body, verifying afterward that the declared length
// matches what the variant parser actually consumed.
func (d *Decoder) ReadOne(r *bytereader.Reader) (Attribute, error) {
	nameIdx, err := r.ReadU16("attribute_name_index")
	if err != nil {
		return nil, err
	}
	name, err := d.Pool.Utf8At(constantpool.Index(nameIdx))
	if err != nil {
		return nil, &errs.InvalidAttributeType{Index: nameIdx}
	}
	declaredLength, err := r.ReadU32("attribute_length")
	if err != nil {
		return nil, err
	}
	start := r.Pos()

	attr, err := d.readBody(r, name, declaredLength)
	if err != nil {
		return nil, err
	}

	actual := uint32(r.Pos() - start)
	if actual != declaredLength {
		return nil, &errs.LengthMismatch{Name: name, Declared: declaredLength, Actual: actual}
	}
	return attr, nil
}

// ReadMany decodes a u16-prefixed list of attributes, the shape every
// attribute-bearing entity (class, field, method, Code) uses.
func (d *Decoder) ReadMany(r *bytereader.Reader) ([]Attribute, error) {
	return bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("attributes_count")
			return int(n), err
		},
		d.ReadOne,
	)
}

func (d *Decoder) readBody(r *bytereader.Reader, name string, declaredLength uint32) (Attribute, error) {
	switch name {
	case "Code":
		return d.readCode(r)
	case "SourceFile":
		idx, err := readConstantIndex(r)
		return SourceFile{Index: idx}, err
	case "ConstantValue":
		idx, err := readConstantIndex(r)
		return ConstantValue{Index: idx}, err
	case "Exceptions":
		indices, err := bytereader.ReadMany(r,
			func(r *bytereader.Reader) (int, error) {
				n, err := r.ReadU16("number_of_exceptions")
				return int(n), err
			},
			readConstantIndex,
		)
		return Exceptions{Index: indices}, err
	case "LineNumberTable":
		rows, err := bytereader.ReadMany(r,
			func(r *bytereader.Reader) (int, error) {
				n, err := r.ReadU16("line_number_table_length")
				return int(n), err
			},
			readLineNumberTableRow,
		)
		return LineNumberTable{Rows: rows}, err
	case "StackMapTable":
		frames, err := bytereader.ReadMany(r,
			func(r *bytereader.Reader) (int, error) {
				n, err := r.ReadU16("number_of_entries")
				return int(n), err
			},
			readStackMapFrame,
		)
		return StackMapTable{Frames: frames}, err
	default:
		if d.Strict {
			return nil, &errs.UnknownAttributeType{Name: name}
		}
		raw := make([]byte, declaredLength)
		if err := r.ReadExact(raw, "unknown attribute body"); err != nil {
			return nil, err
		}
		return Unknown{Name: name, Raw: raw}, nil
	}
}

func (d *Decoder) readCode(r *bytereader.Reader) (Attribute, error) {
	maxStack, err := r.ReadU16("max_stack")
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.ReadU16("max_locals")
	if err != nil {
		return nil, err
	}
	codeLength, err := r.ReadU32("code_length")
	if err != nil {
		return nil, err
	}
	code := make([]byte, codeLength)
	if err := r.ReadExact(code, "code"); err != nil {
		return nil, err
	}
	exTable, err := bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("exception_table_length")
			return int(n), err
		},
		readExceptionTableRow,
	)
	if err != nil {
		return nil, err
	}
	attrs, err := d.ReadMany(r)
	if err != nil {
		return nil, err
	}
	return Code{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Bytes:          code,
		ExceptionTable: exTable,
		Attributes:     attrs,
	}, nil
}

func readConstantIndex(r *bytereader.Reader) (constantpool.Index, error) {
	v, err := r.ReadU16("constant index")
	return constantpool.Index(v), err
}

func readLineNumberTableRow(r *bytereader.Reader) (LineNumberTableRow, error) {
	startPc, err := r.ReadU16("start_pc")
	if err != nil {
		return LineNumberTableRow{}, err
	}
	lineNo, err := r.ReadU16("line_number")
	return LineNumberTableRow{StartPc: startPc, LineNumber: lineNo}, err
}

func readExceptionTableRow(r *bytereader.Reader) (ExceptionTableRow, error) {
	startPc, err := r.ReadU16("start_pc")
	if err != nil {
		return ExceptionTableRow{}, err
	}
	endPc, err := r.ReadU16("end_pc")
	if err != nil {
		return ExceptionTableRow{}, err
	}
	handlerPc, err := r.ReadU16("handler_pc")
	if err != nil {
		return ExceptionTableRow{}, err
	}
	catchType, err := readConstantIndex(r)
	return ExceptionTableRow{
		StartPc: startPc, EndPc: endPc, HandlerPc: handlerPc, CatchType: catchType,
	}, err
}
