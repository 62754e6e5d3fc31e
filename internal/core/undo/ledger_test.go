package undo

import "testing"

func TestLedgerPopsInReverseOrder(t *testing.T) {
	var l Ledger[int]
	l.Push(1)
	l.Push(2)
	l.Push(3)

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	for _, want := range []int{3, 2, 1} {
		got, ok := l.Pop()
		if !ok {
			t.Fatalf("Pop() unexpectedly empty, want %d", want)
		}
		if got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if _, ok := l.Pop(); ok {
		t.Error("Pop() on drained ledger should report empty")
	}
}

func TestLedgerEmptyPop(t *testing.T) {
	var l Ledger[string]
	v, ok := l.Pop()
	if ok {
		t.Error("Pop() on fresh ledger should report empty")
	}
	if v != "" {
		t.Errorf("Pop() on empty ledger returned %q, want zero value", v)
	}
}

func TestLedgerClear(t *testing.T) {
	var l Ledger[int]
	l.Push(1)
	l.Push(2)
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", l.Len())
	}
	if _, ok := l.Pop(); ok {
		t.Error("Pop() after Clear() should report empty")
	}
}

func TestLedgerPushBackAfterFailedRestore(t *testing.T) {
	var l Ledger[int]
	l.Push(7)

	v, ok := l.Pop()
	if !ok {
		t.Fatal("expected a snapshot")
	}
	// Simulates a failed replay: the snapshot goes back on top.
	l.Push(v)

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	got, _ := l.Pop()
	if got != 7 {
		t.Errorf("Pop() after push-back = %d, want 7", got)
	}
}
