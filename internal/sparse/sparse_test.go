package sparse

import "testing"

func TestSparseSetInsertContainsRemove(t *testing.T) {
	s := NewSparseSet(16)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	if s.Contains(5) {
		t.Error("empty set should not contain 5")
	}
	if !s.Insert(5) {
		t.Error("first insert of 5 should report true")
	}
	if s.Insert(5) {
		t.Error("second insert of 5 should report false")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	s.Remove(5)
	if s.Contains(5) {
		t.Error("set should not contain 5 after remove")
	}
}

func TestSparseSetValuesAndSize(t *testing.T) {
	s := NewSparseSet(16)
	for _, v := range []uint32{3, 1, 4, 1, 5} {
		s.Insert(v)
	}
	if s.Size() != 4 {
		t.Fatalf("Size() = %d, want 4 (duplicate 1 collapsed)", s.Size())
	}
	seen := map[uint32]bool{}
	s.Iter(func(v uint32) { seen[v] = true })
	for _, want := range []uint32{3, 1, 4, 5} {
		if !seen[want] {
			t.Errorf("Iter missed value %d", want)
		}
	}
}

func TestSparseSetClear(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after Clear")
	}
	if s.Contains(1) {
		t.Error("Clear should drop membership")
	}
}

func TestSparseSetOutOfRangeContainsFalse(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(100) {
		t.Error("Contains on an out-of-range value should be false, not panic")
	}
}
