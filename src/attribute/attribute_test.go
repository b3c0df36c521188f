package attribute

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"classvm/bytereader"
	"classvm/constantpool"
	"classvm/errs"
)

// poolWithUtf8 builds a minimal pool containing the given Utf8 strings
// in order, so attribute tests can refer to them by 1-based index.
func poolWithUtf8(t *testing.T, names ...string) *constantpool.Pool {
	t.Helper()
	var body bytes.Buffer
	for _, n := range names {
		body.WriteByte(constantpool.TagUtf8)
		var lenField [2]byte
		binary.BigEndian.PutUint16(lenField[:], uint16(len(n)))
		body.Write(lenField[:])
		body.WriteString(n)
	}
	var buf bytes.Buffer
	var countField [2]byte
	binary.BigEndian.PutUint16(countField[:], uint16(len(names)+1))
	buf.Write(countField[:])
	buf.Write(body.Bytes())
	p, err := constantpool.Parse(bytereader.New(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("pool setup: %v", err)
	}
	return p
}

func TestReadOneConstantValue(t *testing.T) {
	pool := poolWithUtf8(t, "ConstantValue")
	// attribute_name_index=1, attribute_length=2, constant_value_index=1
	body := []byte{0, 1, 0, 0, 0, 2, 0, 1}
	d := NewDecoder(pool, true)
	attr, err := d.ReadOne(bytereader.New(bytes.NewReader(body)))
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	cv, ok := attr.(ConstantValue)
	if !ok || cv.Index != 1 {
		t.Fatalf("got %#v", attr)
	}
}

func TestReadOneLengthMismatch(t *testing.T) {
	pool := poolWithUtf8(t, "Code")
	// Declares length 8 but the Code body (empty code, no exceptions, no
	// attributes, with max_stack/max_locals/code_length fields) consumes
	// more than 8 bytes.
	body := []byte{
		0, 1, // attribute_name_index
		0, 0, 0, 8, // attribute_length (wrong)
		0, 2, // max_stack
		0, 3, // max_locals
		0, 0, 0, 2, // code_length
		0xAC, 0xAC, // code bytes
		0, 0, // exception_table_length
		0, 0, // attributes_count
	}
	d := NewDecoder(pool, true)
	_, err := d.ReadOne(bytereader.New(bytes.NewReader(body)))
	var lm *errs.LengthMismatch
	if !errors.As(err, &lm) {
		t.Fatalf("expected LengthMismatch, got %v", err)
	}
}

func TestReadOneUnknownAttributeStrict(t *testing.T) {
	pool := poolWithUtf8(t, "VendorExtension")
	body := []byte{0, 1, 0, 0, 0, 0}
	d := NewDecoder(pool, true)
	_, err := d.ReadOne(bytereader.New(bytes.NewReader(body)))
	var ua *errs.UnknownAttributeType
	if !errors.As(err, &ua) {
		t.Fatalf("expected UnknownAttributeType, got %v", err)
	}
}

func TestReadOneUnknownAttributePermissive(t *testing.T) {
	pool := poolWithUtf8(t, "VendorExtension")
	body := []byte{0, 1, 0, 0, 0, 3, 0xDE, 0xAD, 0xBE}
	d := NewDecoder(pool, false)
	attr, err := d.ReadOne(bytereader.New(bytes.NewReader(body)))
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	u, ok := attr.(Unknown)
	if !ok || u.Name != "VendorExtension" || len(u.Raw) != 3 {
		t.Fatalf("got %#v", attr)
	}
}

func TestReadStackMapTableFrameVariants(t *testing.T) {
	pool := poolWithUtf8(t, "StackMapTable")
	// 3 frames: SameFrame(5), ChopFrame(offset=10, absent=1), FullFrame(offset=1, no locals, no stack)
	frames := []byte{
		0, 3, // number_of_entries
		5,          // SameFrame, offset 5
		250, 0, 10, // ChopFrame, tag 250 -> absent=251-250=1, offset 10
		255, 0, 1, 0, 0, 0, 0, // FullFrame offset=1, 0 locals, 0 stack items
	}
	length := uint32(len(frames))
	var body bytes.Buffer
	body.Write([]byte{0, 1}) // attribute_name_index
	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], length)
	body.Write(lenField[:])
	body.Write(frames)

	d := NewDecoder(pool, true)
	attr, err := d.ReadOne(bytereader.New(bytes.NewReader(body.Bytes())))
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	smt, ok := attr.(StackMapTable)
	if !ok || len(smt.Frames) != 3 {
		t.Fatalf("got %#v", attr)
	}
	if sf, ok := smt.Frames[0].(SameFrame); !ok || sf.OffsetDelta != 5 {
		t.Fatalf("frame0 = %#v", smt.Frames[0])
	}
	if cf, ok := smt.Frames[1].(ChopFrame); !ok || cf.AbsentLocals != 1 || cf.OffsetDelta != 10 {
		t.Fatalf("frame1 = %#v", smt.Frames[1])
	}
	if ff, ok := smt.Frames[2].(FullFrame); !ok || ff.OffsetDelta != 1 {
		t.Fatalf("frame2 = %#v", smt.Frames[2])
	}
}
