package frame

import (
	"errors"
	"testing"

	"classvm/errs"
)

func TestPushPopRoundTrip(t *testing.T) {
	f := New(2, 2)
	if err := f.Push(IntValue(7)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	v, err := f.Pop("test")
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if v.Cat != CategoryInt || v.I != 7 {
		t.Fatalf("got %#v", v)
	}
	if f.StackDepth() != 0 {
		t.Fatalf("StackDepth() = %d after pop", f.StackDepth())
	}
}

func TestPushOverflow(t *testing.T) {
	f := New(1, 0)
	if err := f.Push(IntValue(1)); err != nil {
		t.Fatalf("first push: %v", err)
	}
	if err := f.Push(IntValue(2)); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestLongOccupiesTwoWords(t *testing.T) {
	f := New(2, 0)
	if err := f.Push(LongValue(42)); err != nil {
		t.Fatalf("Push long: %v", err)
	}
	if f.StackDepth() != 2 {
		t.Fatalf("StackDepth() = %d, want 2", f.StackDepth())
	}
	if err := f.Push(IntValue(1)); err == nil {
		t.Fatal("expected overflow: long already used both words")
	}
}

func TestPopEmptyStack(t *testing.T) {
	f := New(1, 0)
	_, err := f.Pop("iadd")
	var empty *errs.EmptyStack
	if !errors.As(err, &empty) || empty.Op != "iadd" {
		t.Fatalf("expected EmptyStack{iadd}, got %v", err)
	}
}

func TestPopCategoryMismatch(t *testing.T) {
	f := New(1, 0)
	f.Push(FloatValue(1.5))
	_, err := f.PopCategory("iadd", CategoryInt)
	var st *errs.StackType
	if !errors.As(err, &st) {
		t.Fatalf("expected StackType, got %v", err)
	}
}

func TestLocalUninitializedRead(t *testing.T) {
	f := New(0, 2)
	_, err := f.GetLocal(0, CategoryInt)
	var vt *errs.VariableType
	if !errors.As(err, &vt) {
		t.Fatalf("expected VariableType, got %v", err)
	}
}

func TestLocalSetAndGet(t *testing.T) {
	f := New(0, 2)
	if err := f.SetLocal(1, IntValue(9)); err != nil {
		t.Fatalf("SetLocal: %v", err)
	}
	v, err := f.GetLocal(1, CategoryInt)
	if err != nil || v.I != 9 {
		t.Fatalf("GetLocal = %#v, %v", v, err)
	}
}

func TestLocalOutOfScope(t *testing.T) {
	f := New(0, 1)
	err := f.SetLocal(5, IntValue(1))
	var oos *errs.VariableOutOfScope
	if !errors.As(err, &oos) {
		t.Fatalf("expected VariableOutOfScope, got %v", err)
	}
}
