package codegen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/reglex-gen/reglex/dfa"
	"github.com/reglex-gen/reglex/nfa"
	"github.com/reglex-gen/reglex/regexast"
	"github.com/reglex-gen/reglex/regexparse"
)

func buildDFA(t *testing.T, patterns ...string) *dfa.DFA {
	t.Helper()
	defs := regexast.NewDefTable()
	var rules []nfa.Rule
	for i, p := range patterns {
		n, err := regexparse.Parse(p, defs)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		rules = append(rules, nfa.Rule{Tag: i, Pattern: n})
	}
	n, err := nfa.Build(rules)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	d, err := dfa.Determinize(n)
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	d, err = dfa.Minimize(d)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	return d
}

func TestFuncName(t *testing.T) {
	cases := map[string]string{
		"":       "matchDefault",
		"string": "matchString",
		"code":   "matchCode",
	}
	for in, want := range cases {
		if got := FuncName(in); got != want {
			t.Errorf("FuncName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmitProducesOneLabelPerState(t *testing.T) {
	d := buildDFA(t, "[0-9]+")
	var b strings.Builder
	if err := Emit(&b, "matchDefault", d); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := b.String()
	for i := 0; i < d.NumStates(); i++ {
		label := "state" + strconv.Itoa(i) + ":"
		if !strings.Contains(out, label) {
			t.Errorf("output missing label %q:\n%s", label, out)
		}
	}
	if !strings.Contains(out, "func matchDefault(rt *reglexrt.Runtime) {") {
		t.Errorf("output missing function signature:\n%s", out)
	}
	if !strings.Contains(out, "rt.Accept(0)") {
		t.Errorf("output missing accept call:\n%s", out)
	}
	if !strings.Contains(out, "reject:\n\trt.Reject()") {
		t.Errorf("output missing reject label:\n%s", out)
	}
	if !strings.Contains(out, "b >= '0' && b <= '9'") {
		t.Errorf("output missing range-compressed digit condition:\n%s", out)
	}
}

func TestEmitMergesNonContiguousRangesSharingATarget(t *testing.T) {
	// In (a|c)+ both 'a' and 'c' lead to the same accepting loop state
	// while 'b' has no transition, so compress() yields two separate
	// single-byte runs with one target; Emit must join them into one
	// case, matching nex's per-target-equivalence partitioning rather
	// than one case per contiguous run.
	d := buildDFA(t, "(a|c)+")
	var b strings.Builder
	if err := Emit(&b, "matchDefault", d); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := b.String()
	if strings.Count(out, "switch {") == 0 {
		t.Fatalf("expected at least one switch block:\n%s", out)
	}
	if !strings.Contains(out, "case b == 'a' || b == 'c':") {
		t.Errorf("expected 'a' and 'c' merged into one case:\n%s", out)
	}
}

func TestEmitKeywordBeatsIdentifierTagPriority(t *testing.T) {
	d := buildDFA(t, "if", "[a-z]+")
	var b strings.Builder
	if err := Emit(&b, "matchDefault", d); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "rt.Accept(0)") {
		t.Errorf("expected the keyword rule's tag 0 to be reachable:\n%s", out)
	}
	if !strings.Contains(out, "rt.Accept(1)") {
		t.Errorf("expected the identifier rule's tag 1 to be reachable:\n%s", out)
	}
}
