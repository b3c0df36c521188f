/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classfile parses the complete class-file binary format: the
// magic number, version, constant pool, access flags, superclass chain,
// interfaces, fields, methods, and top-level attributes. It is the
// assembly point for the bytereader, constantpool, and attribute
// packages below it.
package classfile

import (
	"io"

	"classvm/attribute"
	"classvm/bytereader"
	"classvm/constantpool"
	"classvm/errs"
	"classvm/trace"
)

const magic = 0xCAFEBABE

// ClassFile is the fully parsed contents of one .class file.
type ClassFile struct {
	MinorVersion, MajorVersion uint16
	Pool                       *constantpool.Pool
	Flags                      ClassFlags
	ThisClass, SuperClass      constantpool.Index
	Interfaces                 []constantpool.Index
	Fields                     []Field
	Methods                    []Method
	Attributes                 []attribute.Attribute
}

// Parse reads a complete class file from r. strict selects whether
// unrecognized attribute names are a parse error or are silently
// skipped; callers outside the CLI normally pass globals.IsStrict().
func Parse(source io.Reader, strict bool) (*ClassFile, error) {
	r := bytereader.New(source)

	got, err := r.ReadU32("magic")
	if err != nil {
		return nil, err
	}
	if got != magic {
		return nil, &errs.Expected{
			Got:      hexU32(got),
			Expected: hexU32(magic),
		}
	}

	minor, err := r.ReadU16("minor_version")
	if err != nil {
		return nil, err
	}
	major, err := r.ReadU16("major_version")
	if err != nil {
		return nil, err
	}

	pool, err := constantpool.Parse(r)
	if err != nil {
		return nil, err
	}
	trace.Trace("parsed constant pool")

	flags, err := r.ReadU16("access_flags")
	if err != nil {
		return nil, err
	}
	thisClass, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	superClass, err := readIndex(r)
	if err != nil {
		return nil, err
	}

	interfaces, err := bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("interfaces_count")
			return int(n), err
		},
		readIndex,
	)
	if err != nil {
		return nil, err
	}

	decoder := attribute.NewDecoder(pool, strict)

	fields, err := bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("fields_count")
			return int(n), err
		},
		func(r *bytereader.Reader) (Field, error) { return readField(r, decoder) },
	)
	if err != nil {
		return nil, err
	}

	methods, err := bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("methods_count")
			return int(n), err
		},
		func(r *bytereader.Reader) (Method, error) { return readMethod(r, decoder) },
	)
	if err != nil {
		return nil, err
	}

	attrs, err := decoder.ReadMany(r)
	if err != nil {
		return nil, err
	}

	trace.Trace("parsed class file")
	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		Pool:         pool,
		Flags:        ClassFlags(flags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
	}, nil
}

// Name resolves the class's own fully-qualified name via ThisClass.
func (cf *ClassFile) Name() (string, error) {
	return cf.Pool.ClassNameAt(cf.ThisClass)
}

// SuperName resolves the superclass's fully-qualified name. A class
// file with super_class == 0 (only java/lang/Object may have this) has
// no superclass.
func (cf *ClassFile) SuperName() (string, bool, error) {
	if cf.SuperClass == 0 {
		return "", false, nil
	}
	name, err := cf.Pool.ClassNameAt(cf.SuperClass)
	return name, true, err
}

// FindMethod returns the first method with the given name, if any. The
// descriptor is not matched; overload resolution is out of scope.
func (cf *ClassFile) FindMethod(name string) (Method, bool, error) {
	for _, m := range cf.Methods {
		n, err := cf.Pool.Utf8At(m.NameIndex)
		if err != nil {
			return Method{}, false, err
		}
		if n == name {
			return m, true, nil
		}
	}
	return Method{}, false, nil
}

// FindMethodIndex returns the index into Methods of the first method
// with the given name, for callers (the method code cache) that key on
// position rather than holding the Method value itself.
func (cf *ClassFile) FindMethodIndex(name string) (int, bool, error) {
	for i, m := range cf.Methods {
		n, err := cf.Pool.Utf8At(m.NameIndex)
		if err != nil {
			return 0, false, err
		}
		if n == name {
			return i, true, nil
		}
	}
	return 0, false, nil
}

func readIndex(r *bytereader.Reader) (constantpool.Index, error) {
	v, err := r.ReadU16("constant index")
	return constantpool.Index(v), err
}

func hexU32(v uint32) string {
	const digits = "0123456789ABCDEF"
	buf := [10]byte{'0', 'x'}
	for i := 0; i < 8; i++ {
		shift := uint(28 - 4*i)
		buf[2+i] = digits[(v>>shift)&0xF]
	}
	return string(buf[:])
}
