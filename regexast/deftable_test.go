package regexast

import "testing"

func TestDefTableDefineAndLookup(t *testing.T) {
	dt := NewDefTable()
	if _, ok := dt.Lookup("LETTER"); ok {
		t.Fatal("empty table should not resolve LETTER")
	}
	dt.Define("LETTER", Byte('a'))
	n, ok := dt.Lookup("LETTER")
	if !ok {
		t.Fatal("expected LETTER to resolve")
	}
	if String(n) != String(Byte('a')) {
		t.Errorf("LETTER resolved to %s, want %s", String(n), String(Byte('a')))
	}
}

func TestDefTableRedefinitionShadowsLaterLookups(t *testing.T) {
	dt := NewDefTable()
	dt.Define("LETTER", Byte('a'))
	before, _ := dt.Lookup("LETTER")
	dt.Define("LETTER", Byte('b'))
	after, _ := dt.Lookup("LETTER")
	if String(before) == String(after) {
		t.Error("redefinition should change what subsequent Lookup calls see")
	}
	if String(after) != String(Byte('b')) {
		t.Errorf("after redefinition, LETTER = %s, want %s", String(after), String(Byte('b')))
	}
}

func TestDefTableNamesTracksFirstDeclarationOrder(t *testing.T) {
	dt := NewDefTable()
	dt.Define("B", Byte('b'))
	dt.Define("A", Byte('a'))
	dt.Define("B", Byte('x')) // redeclare; should not move B later in Names()
	got := dt.Names()
	want := []string{"B", "A"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
