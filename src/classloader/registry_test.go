package classloader

import (
	"bytes"
	"errors"
	"testing"

	"classvm/classfile"
	"classvm/errs"
)

func minimalClass(t *testing.T) *classfile.ClassFile {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x41})
	buf.Write([]byte{0x00, 0x03})
	buf.Write([]byte{0x01, 0x00, 0x04, 'M', 'a', 'i', 'n'})
	buf.Write([]byte{0x07, 0x00, 0x01})
	buf.Write([]byte{0x00, 0x21})
	buf.Write([]byte{0x00, 0x02})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x00})
	cf, err := classfile.Parse(bytes.NewReader(buf.Bytes()), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cf
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	cf := minimalClass(t)
	r.Register("Main", cf)
	got, err := r.Lookup("Main")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != cf {
		t.Fatal("Lookup returned a different ClassFile")
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
}

func TestLookupMissing(t *testing.T) {
	r := New()
	_, err := r.Lookup("Nope")
	var missing *errs.MissingMainClass
	if !errors.As(err, &missing) || missing.Name != "Nope" {
		t.Fatalf("expected MissingMainClass{Nope}, got %v", err)
	}
}
