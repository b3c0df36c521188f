package bytereader

import (
	"bytes"
	"errors"
	"testing"

	"classvm/errs"
)

func TestReadPrimitives(t *testing.T) {
	data := []byte{
		0x01,                   // u8
		0x00, 0x02,             // u16
		0x00, 0x00, 0x00, 0x03, // u32
		0x3F, 0x80, 0x00, 0x00, // f32 = 1.0
	}
	r := New(bytes.NewReader(data))

	u8, err := r.ReadU8("tag")
	if err != nil || u8 != 1 {
		t.Fatalf("ReadU8 = %d, %v", u8, err)
	}
	u16, err := r.ReadU16("count")
	if err != nil || u16 != 2 {
		t.Fatalf("ReadU16 = %d, %v", u16, err)
	}
	u32, err := r.ReadU32("length")
	if err != nil || u32 != 3 {
		t.Fatalf("ReadU32 = %d, %v", u32, err)
	}
	f32, err := r.ReadF32("float")
	if err != nil || f32 != 1.0 {
		t.Fatalf("ReadF32 = %v, %v", f32, err)
	}
	if r.Pos() != len(data) {
		t.Fatalf("Pos() = %d, want %d", r.Pos(), len(data))
	}
}

func TestReadExactShortReadWrapsIo(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x01}))
	_, err := r.ReadU32("truncated length")
	var ioErr *errs.Io
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *errs.Io, got %T: %v", err, err)
	}
	if ioErr.Msg != "truncated length" {
		t.Fatalf("Msg = %q", ioErr.Msg)
	}
}

func TestReadMany(t *testing.T) {
	data := []byte{0x00, 0x03, 0x0A, 0x0B, 0x0C}
	r := New(bytes.NewReader(data))

	items, err := ReadMany(r,
		func(r *Reader) (int, error) {
			n, err := r.ReadU16("count")
			return int(n), err
		},
		func(r *Reader) (byte, error) { return r.ReadU8("item") },
	)
	if err != nil {
		t.Fatalf("ReadMany: %v", err)
	}
	want := []byte{0x0A, 0x0B, 0x0C}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %d, want %d", i, items[i], want[i])
		}
	}
}

func TestReadManyPropagatesStepError(t *testing.T) {
	data := []byte{0x00, 0x02, 0x0A}
	r := New(bytes.NewReader(data))
	_, err := ReadMany(r,
		func(r *Reader) (int, error) {
			n, err := r.ReadU16("count")
			return int(n), err
		},
		func(r *Reader) (byte, error) { return r.ReadU8("item") },
	)
	if err == nil {
		t.Fatal("expected error from short stream")
	}
}
