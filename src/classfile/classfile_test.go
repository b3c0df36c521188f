package classfile

import (
	"bytes"
	"errors"
	"testing"

	"classvm/errs"
)

func TestParseBadMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	_, err := Parse(bytes.NewReader(data), true)
	var exp *errs.Expected
	if !errors.As(err, &exp) {
		t.Fatalf("expected *errs.Expected, got %v", err)
	}
	if exp.Got != "0xDEADBEEF" || exp.Expected != "0xCAFEBABE" {
		t.Fatalf("got %+v", exp)
	}
}

// minimalClassBytes builds the smallest class file this parser accepts:
// no interfaces, no fields, no methods, no attributes, and a constant
// pool holding only the two ClassRef/Utf8 pairs needed for this_class
// and super_class to resolve.
func minimalClassBytes() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE}) // magic
	buf.Write([]byte{0x00, 0x00})             // minor
	buf.Write([]byte{0x00, 0x41})             // major (65 = Java 21, arbitrary)

	// constant pool: count = 5 (4 logical entries)
	// 1: Utf8 "Main"
	// 2: ClassRef -> 1
	// 3: Utf8 "java/lang/Object"
	// 4: ClassRef -> 3
	buf.Write([]byte{0x00, 0x05})
	buf.Write([]byte{0x01, 0x00, 0x04, 'M', 'a', 'i', 'n'})
	buf.Write([]byte{0x07, 0x00, 0x01})
	buf.Write([]byte{0x01, 0x00, 0x10})
	buf.WriteString("java/lang/Object")
	buf.Write([]byte{0x07, 0x00, 0x03})

	buf.Write([]byte{0x00, 0x21}) // access_flags: PUBLIC|SUPER
	buf.Write([]byte{0x00, 0x02}) // this_class -> entry 2 (ClassRef "Main")
	buf.Write([]byte{0x00, 0x04}) // super_class -> entry 4 (ClassRef Object)
	buf.Write([]byte{0x00, 0x00}) // interfaces_count
	buf.Write([]byte{0x00, 0x00}) // fields_count
	buf.Write([]byte{0x00, 0x00}) // methods_count
	buf.Write([]byte{0x00, 0x00}) // attributes_count
	return buf.Bytes()
}

func TestParseMinimalClass(t *testing.T) {
	cf, err := Parse(bytes.NewReader(minimalClassBytes()), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	name, err := cf.Name()
	if err != nil || name != "Main" {
		t.Fatalf("Name() = %q, %v", name, err)
	}
	super, ok, err := cf.SuperName()
	if err != nil || !ok || super != "java/lang/Object" {
		t.Fatalf("SuperName() = %q, %v, %v", super, ok, err)
	}
	if !cf.Flags.Has(ClassPublic) || !cf.Flags.Has(ClassSuper) {
		t.Fatalf("Flags = %v", cf.Flags)
	}
	if len(cf.Methods) != 0 || len(cf.Fields) != 0 {
		t.Fatalf("expected no methods/fields")
	}
}

func TestFindMethodAbsent(t *testing.T) {
	cf, err := Parse(bytes.NewReader(minimalClassBytes()), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, ok, err := cf.FindMethod("main")
	if err != nil {
		t.Fatalf("FindMethod: %v", err)
	}
	if ok {
		t.Fatal("expected no main method in minimal class")
	}
}
