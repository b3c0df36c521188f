/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package bytereader is the positional, big-endian reader every parser in
// this module builds on. Every read advances an internal byte cursor and
// every failure is tagged with the human-readable field it was trying to
// read, so a caller never has to guess where in the stream a short read
// happened.
package bytereader

import (
	"encoding/binary"
	"io"
	"math"

	"classvm/errs"
)

// Reader wraps an io.Reader with a byte cursor. Class files are
// big-endian throughout, so every multi-byte read goes through the
// standard library's encoding/binary.
type Reader struct {
	source io.Reader
	pos    int
}

// New wraps source starting at cursor position 0.
func New(source io.Reader) *Reader {
	return &Reader{source: source}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int { return r.pos }

// ReadExact fills buf completely or returns an Io error tagged with msg.
func (r *Reader) ReadExact(buf []byte, msg string) error {
	if _, err := io.ReadFull(r.source, buf); err != nil {
		return &errs.Io{Msg: msg, Cause: err}
	}
	r.pos += len(buf)
	return nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8(msg string) (byte, error) {
	var buf [1]byte
	if err := r.ReadExact(buf[:], msg); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16(msg string) (uint16, error) {
	var buf [2]byte
	if err := r.ReadExact(buf[:], msg); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32(msg string) (uint32, error) {
	var buf [4]byte
	if err := r.ReadExact(buf[:], msg); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64(msg string) (uint64, error) {
	var buf [8]byte
	if err := r.ReadExact(buf[:], msg); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// ReadF32 reads a big-endian IEEE-754 single.
func (r *Reader) ReadF32(msg string) (float32, error) {
	bits, err := r.ReadU32(msg)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadF64 reads a big-endian IEEE-754 double.
func (r *Reader) ReadF64(msg string) (float64, error) {
	bits, err := r.ReadU64(msg)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadMany reads a count via length, then invokes step that many times,
// collecting results in order. The count is read first and used only to
// size the result, so a step function that itself reads variable-length
// data (nested attributes, switch tables) still works unmodified.
func ReadMany[T any](r *Reader, length func(*Reader) (int, error), step func(*Reader) (T, error)) ([]T, error) {
	n, err := length(r)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := step(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
