package codecache

import (
	"bytes"
	"testing"

	"classvm/classfile"
)

// classWithOneMethod builds a class file with a single method named
// "run" carrying a trivial Code attribute (RETURN).
func classWithOneMethod(t *testing.T) *classfile.ClassFile {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0x00, 0x41})

	// pool: 1 Utf8 "Main", 2 ClassRef->1, 3 Utf8 "run", 4 Utf8 "()V",
	// 5 Utf8 "Code"
	buf.Write([]byte{0x00, 0x06})
	buf.Write([]byte{0x01, 0x00, 0x04, 'M', 'a', 'i', 'n'})
	buf.Write([]byte{0x07, 0x00, 0x01})
	buf.Write([]byte{0x01, 0x00, 0x03, 'r', 'u', 'n'})
	buf.Write([]byte{0x01, 0x00, 0x03, '(', ')', 'V'})
	buf.Write([]byte{0x01, 0x00, 0x04, 'C', 'o', 'd', 'e'})

	buf.Write([]byte{0x00, 0x21}) // flags
	buf.Write([]byte{0x00, 0x02}) // this_class
	buf.Write([]byte{0x00, 0x00}) // super_class (0: no super for this test)
	buf.Write([]byte{0x00, 0x00}) // interfaces
	buf.Write([]byte{0x00, 0x00}) // fields

	buf.Write([]byte{0x00, 0x01})       // methods_count = 1
	buf.Write([]byte{0x00, 0x09})       // access_flags = PUBLIC|STATIC
	buf.Write([]byte{0x00, 0x03})       // name_index -> "run"
	buf.Write([]byte{0x00, 0x04})       // descriptor_index -> "()V"
	buf.Write([]byte{0x00, 0x01})       // attributes_count = 1
	buf.Write([]byte{0x00, 0x05})       // attribute_name_index -> "Code"
	buf.Write([]byte{0x00, 0x00, 0x00, 0x0D}) // attribute_length = 13
	buf.Write([]byte{0x00, 0x01})       // max_stack
	buf.Write([]byte{0x00, 0x00})       // max_locals
	buf.Write([]byte{0x00, 0x00, 0x00, 0x01}) // code_length
	buf.Write([]byte{0xB1})             // RETURN
	buf.Write([]byte{0x00, 0x00})       // exception_table_length
	buf.Write([]byte{0x00, 0x00})       // attributes_count (nested)

	buf.Write([]byte{0x00, 0x00}) // top-level attributes_count

	cf, err := classfile.Parse(bytes.NewReader(buf.Bytes()), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cf
}

func TestGetCachesAcrossCalls(t *testing.T) {
	cf := classWithOneMethod(t)
	cache := New(cf)

	code1, err := cache.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if len(code1.Bytes) != 1 || code1.Bytes[0] != 0xB1 {
		t.Fatalf("code bytes = %v", code1.Bytes)
	}

	code2, err := cache.Get(0)
	if err != nil {
		t.Fatalf("Get(0) second call: %v", err)
	}
	if code2.MaxStack != code1.MaxStack {
		t.Fatalf("cached value diverged")
	}
}

func TestGetOutOfRange(t *testing.T) {
	cf := classWithOneMethod(t)
	cache := New(cf)
	if _, err := cache.Get(5); err == nil {
		t.Fatal("expected error for out-of-range method index")
	}
}
