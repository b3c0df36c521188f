/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"classvm/attribute"
	"classvm/bytereader"
	"classvm/constantpool"
)

// Field is one field_info entry: an access-flags bitset plus name and
// descriptor indices into the constant pool, and its own attribute
// list (commonly just ConstantValue for a static final field).
type Field struct {
	Flags      FieldFlags
	NameIndex  constantpool.Index
	DescIndex  constantpool.Index
	Attributes []attribute.Attribute
}

func readField(r *bytereader.Reader, d *attribute.Decoder) (Field, error) {
	flags, err := r.ReadU16("field access_flags")
	if err != nil {
		return Field{}, err
	}
	name, err := r.ReadU16("field name_index")
	if err != nil {
		return Field{}, err
	}
	desc, err := r.ReadU16("field descriptor_index")
	if err != nil {
		return Field{}, err
	}
	attrs, err := d.ReadMany(r)
	if err != nil {
		return Field{}, err
	}
	return Field{
		Flags:      FieldFlags(flags),
		NameIndex:  constantpool.Index(name),
		DescIndex:  constantpool.Index(desc),
		Attributes: attrs,
	}, nil
}

// Method is one method_info entry. Its Code attribute, if present, is
// the method's executable body; native and abstract methods have none.
type Method struct {
	Flags      MethodFlags
	NameIndex  constantpool.Index
	DescIndex  constantpool.Index
	Attributes []attribute.Attribute
}

// Code returns the method's Code attribute, if it has one.
func (m Method) Code() (attribute.Code, bool) {
	return attribute.GetCode(m.Attributes)
}

func readMethod(r *bytereader.Reader, d *attribute.Decoder) (Method, error) {
	flags, err := r.ReadU16("method access_flags")
	if err != nil {
		return Method{}, err
	}
	name, err := r.ReadU16("method name_index")
	if err != nil {
		return Method{}, err
	}
	desc, err := r.ReadU16("method descriptor_index")
	if err != nil {
		return Method{}, err
	}
	attrs, err := d.ReadMany(r)
	if err != nil {
		return Method{}, err
	}
	return Method{
		Flags:      MethodFlags(flags),
		NameIndex:  constantpool.Index(name),
		DescIndex:  constantpool.Index(desc),
		Attributes: attrs,
	}, nil
}
