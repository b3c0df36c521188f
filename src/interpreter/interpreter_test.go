/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package interpreter

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"classvm/classfile"
	"classvm/classloader"
	"classvm/frame"
)

// classWithMain builds a complete class file whose sole method is named
// "main" with the given Code body, and runs it end to end through a
// fresh Registry. This exercises the full parse-then-interpret path
// rather than hand-assembling interpreter-internal types.
func classWithMain(t *testing.T, maxStack, maxLocals uint16, code []byte) frame.Value {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	buf.Write([]byte{0x00, 0x00}) // minor
	buf.Write([]byte{0x00, 0x41}) // major

	// pool: 1 Utf8 "Entry", 2 ClassRef->1, 3 Utf8 "main", 4 Utf8 "()I",
	// 5 Utf8 "Code"
	buf.Write([]byte{0x00, 0x06})
	buf.Write([]byte{0x01, 0x00, 0x05, 'E', 'n', 't', 'r', 'y'})
	buf.Write([]byte{0x07, 0x00, 0x01})
	buf.Write([]byte{0x01, 0x00, 0x04, 'm', 'a', 'i', 'n'})
	buf.Write([]byte{0x01, 0x00, 0x03, '(', ')', 'I'})
	buf.Write([]byte{0x01, 0x00, 0x04, 'C', 'o', 'd', 'e'})

	buf.Write([]byte{0x00, 0x21}) // access_flags
	buf.Write([]byte{0x00, 0x02}) // this_class
	buf.Write([]byte{0x00, 0x00}) // super_class
	buf.Write([]byte{0x00, 0x00}) // interfaces_count
	buf.Write([]byte{0x00, 0x00}) // fields_count

	buf.Write([]byte{0x00, 0x01}) // methods_count = 1
	buf.Write([]byte{0x00, 0x09}) // access_flags PUBLIC|STATIC
	buf.Write([]byte{0x00, 0x03}) // name_index -> "main"
	buf.Write([]byte{0x00, 0x04}) // descriptor_index -> "()I"
	buf.Write([]byte{0x00, 0x01}) // attributes_count = 1
	buf.Write([]byte{0x00, 0x05}) // attribute_name_index -> "Code"

	var codeAttr bytes.Buffer
	binary.Write(&codeAttr, binary.BigEndian, maxStack)
	binary.Write(&codeAttr, binary.BigEndian, maxLocals)
	binary.Write(&codeAttr, binary.BigEndian, uint32(len(code)))
	codeAttr.Write(code)
	codeAttr.Write([]byte{0x00, 0x00}) // exception_table_length
	codeAttr.Write([]byte{0x00, 0x00}) // nested attributes_count

	binary.Write(&buf, binary.BigEndian, uint32(codeAttr.Len()))
	buf.Write(codeAttr.Bytes())

	buf.Write([]byte{0x00, 0x00}) // top-level attributes_count

	cf, err := classfile.Parse(bytes.NewReader(buf.Bytes()), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	reg := classloader.New()
	reg.Register("Entry", cf)

	v, err := Run(context.Background(), reg, "Entry")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return v
}

func TestRunLocalsAddition(t *testing.T) {
	// S2: ICONST_0, ISTORE_1, ICONST_1, ISTORE_2, ILOAD_1, ILOAD_2,
	// IADD, IRETURN -> 0 + 1 = 1.
	code := []byte{0x03, 0x3C, 0x04, 0x3D, 0x1B, 0x1C, 0x60, 0xAC}
	v := classWithMain(t, 2, 4, code)
	if v.Cat != frame.CategoryInt || v.I != 1 {
		t.Fatalf("got %+v, want Int(1)", v)
	}
}

func TestRunMultiplication(t *testing.T) {
	// S3: BIPUSH 42, BIPUSH 3, IMUL, IRETURN -> 126.
	code := []byte{0x10, 0x2A, 0x10, 0x03, 0x68, 0xAC}
	v := classWithMain(t, 2, 1, code)
	if v.Cat != frame.CategoryInt || v.I != 126 {
		t.Fatalf("got %+v, want Int(126)", v)
	}
}

func TestRunSignedSubtraction(t *testing.T) {
	// S4: BIPUSH -1, BIPUSH 1, ISUB, IRETURN -> -2.
	code := []byte{0x10, 0xFF, 0x10, 0x01, 0x64, 0xAC}
	v := classWithMain(t, 2, 1, code)
	if v.Cat != frame.CategoryInt || v.I != -2 {
		t.Fatalf("got %+v, want Int(-2)", v)
	}
}

// TestRunIincLoopSum exercises IINC-driven looping (S5: sum 0..9 via a
// counted loop). The loop sums i from 0 through 9 into local 1,
// incrementing the counter in local 2 with IINC and branching back with
// a relative GOTO, exiting via IF_ICMPGE once the counter reaches 10.
func TestRunIincLoopSum(t *testing.T) {
	code := []byte{
		0x03, 0x3C, // iconst_0; istore_1   sum = 0
		0x03, 0x3D, // iconst_0; istore_2   i = 0
		// loop (pc=4):
		0x1C,             // iload_2          push i
		0x10, 0x0A,       // bipush 10        push 10
		0xA2, 0x00, 0x0D, // if_icmpge +13 -> pc 20 (exit)
		0x1B,             // iload_1          push sum
		0x1C,             // iload_2          push i
		0x60,             // iadd
		0x3C,             // istore_1         sum += i
		0x84, 0x02, 0x01, // iinc 2, +1       i++
		0xA7, 0xFF, 0xF3, // goto -13 -> pc 4 (loop top)
		// exit (pc=20):
		0x1B, // iload_1          push sum
		0xAC, // ireturn
	}
	v := classWithMain(t, 2, 3, code)
	if v.Cat != frame.CategoryInt || v.I != 45 {
		t.Fatalf("got %+v, want Int(45)", v)
	}
}
