package simd

import (
	"strings"
	"testing"
)

func TestIndexPercentEmpty(t *testing.T) {
	if got := IndexPercent(nil); got != -1 {
		t.Errorf("IndexPercent(nil) = %d, want -1", got)
	}
}

func TestIndexPercentNotFound(t *testing.T) {
	data := []byte(strings.Repeat("abcdefgh", 10))
	if got := IndexPercent(data); got != -1 {
		t.Errorf("IndexPercent = %d, want -1", got)
	}
}

func TestIndexPercentVariousOffsets(t *testing.T) {
	for offset := 0; offset < 20; offset++ {
		data := []byte(strings.Repeat("x", offset) + "%" + strings.Repeat("y", 20))
		if got := IndexPercent(data); got != offset {
			t.Errorf("offset %d: IndexPercent = %d, want %d", offset, got, offset)
		}
	}
}

func TestIndexPercentAcrossWordBoundary(t *testing.T) {
	data := []byte(strings.Repeat("a", 7) + "%" + strings.Repeat("b", 7))
	if got := IndexPercent(data); got != 7 {
		t.Errorf("IndexPercent = %d, want 7", got)
	}
}
