package dfa

import (
	"errors"
	"testing"

	"github.com/reglex-gen/reglex/nfa"
	"github.com/reglex-gen/reglex/regexast"
	"github.com/reglex-gen/reglex/reglexerr"
)

func run(d *DFA, s string) int {
	cur := d.Start
	for i := 0; i < len(s); i++ {
		cur = d.States[cur].Trans[s[i]]
		if cur == NoTransition {
			return NoMatch
		}
	}
	return d.States[cur].Tag
}

func buildMinimal(t *testing.T, rules []nfa.Rule) *DFA {
	t.Helper()
	n, err := nfa.Build(rules)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	d, err := Determinize(n)
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	m, err := Minimize(d)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	return m
}

func TestDeterminizeAndMinimizeDigitsAndLetters(t *testing.T) {
	digit := &regexast.CharClass{Ranges: []regexast.ByteRange{{Lo: '0', Hi: '9'}}}
	letter := &regexast.CharClass{Ranges: []regexast.ByteRange{{Lo: 'a', Hi: 'z'}}}
	d := buildMinimal(t, []nfa.Rule{
		{Tag: 0, Pattern: &regexast.Plus{Sub: digit}},
		{Tag: 1, Pattern: &regexast.Plus{Sub: letter}},
	})
	if got := run(d, "123"); got != 0 {
		t.Errorf("run(123) = %d, want 0", got)
	}
	if got := run(d, "abc"); got != 1 {
		t.Errorf("run(abc) = %d, want 1", got)
	}
	if got := run(d, "1a"); got != NoMatch {
		t.Errorf("run(1a) = %d, want NoMatch", got)
	}
}

func TestKeywordBeatsIdentifierOnTie(t *testing.T) {
	kw := &regexast.Concat{Subs: []regexast.Node{regexast.Byte('i'), regexast.Byte('f')}}
	ident := &regexast.Plus{Sub: &regexast.CharClass{Ranges: []regexast.ByteRange{{Lo: 'a', Hi: 'z'}}}}
	d := buildMinimal(t, []nfa.Rule{{Tag: 0, Pattern: kw}, {Tag: 1, Pattern: ident}})
	if got := run(d, "if"); got != 0 {
		t.Errorf("run(if) = %d, want 0 (keyword rule declared first wins)", got)
	}
	if got := run(d, "ifx"); got != 1 {
		t.Errorf("run(ifx) = %d, want 1 (identifier rule, no keyword prefix match)", got)
	}
}

func TestEmptyMatchRejected(t *testing.T) {
	n, err := nfa.Build([]nfa.Rule{{Tag: 0, Pattern: &regexast.Star{Sub: regexast.Byte('a')}}})
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	_, err = Determinize(n)
	if !errors.Is(err, reglexerr.ErrEmptyMatch) {
		t.Fatalf("Determinize err = %v, want ErrEmptyMatch", err)
	}
}

func TestMinimizeCollapsesEquivalentStates(t *testing.T) {
	// (ab)|(ac) shares the state after 'a', and 'b' and 'c' both lead to
	// the one accepting state; the minimal automaton has exactly three
	// states (start, after 'a', accepting) and keeps the single tag.
	ab := &regexast.Concat{Subs: []regexast.Node{regexast.Byte('a'), regexast.Byte('b')}}
	ac := &regexast.Concat{Subs: []regexast.Node{regexast.Byte('a'), regexast.Byte('c')}}
	d := buildMinimal(t, []nfa.Rule{{Tag: 0, Pattern: &regexast.Alternate{Subs: []regexast.Node{ab, ac}}}})
	if got := d.NumStates(); got != 3 {
		t.Errorf("NumStates() = %d, want 3", got)
	}
	if got := run(d, "ab"); got != 0 {
		t.Errorf("run(ab) = %d, want 0", got)
	}
	if got := run(d, "ac"); got != 0 {
		t.Errorf("run(ac) = %d, want 0", got)
	}
	if got := run(d, "ad"); got != NoMatch {
		t.Errorf("run(ad) = %d, want NoMatch", got)
	}
}
