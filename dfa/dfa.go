// Package dfa turns an nfa.NFA into a minimal deterministic automaton over
// the byte alphabet, by subset construction (spec.md §4.3) followed by
// Hopcroft-style minimization that respects each state's distinct end tag
// (spec.md §4.4). The resulting DFA is what codegen renders into Go
// source; nothing in this package runs at generated-program runtime.
package dfa

import "fmt"

// NoMatch marks a DFA state with no accepting rule.
const NoMatch = -1

// State is one DFA state: a dense transition table over the 256-byte
// alphabet, and the tag of the rule it accepts (NoMatch if non-accepting).
// There is no separate EOF transition: spec.md §4.3 folds EOF into the
// "no transition" case uniformly, so a state with no transition for the
// byte read and a state hit at end-of-input are handled the same way by
// codegen's generated matchers (both goto reject).
type State struct {
	// Trans[b] is the next state on input byte b, or NoTransition.
	Trans [256]int
	// Tag is the end tag this state accepts, or NoMatch.
	Tag int
}

// NoTransition marks a dead transition (reject).
const NoTransition = -1

// DFA is a complete deterministic automaton: Start indexes into States.
type DFA struct {
	States []State
	Start  int
}

// NumStates returns the number of states in the automaton.
func (d *DFA) NumStates() int { return len(d.States) }

func newState() State {
	s := State{Tag: NoMatch}
	for i := range s.Trans {
		s.Trans[i] = NoTransition
	}
	return s
}

func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, start: %d}", len(d.States), d.Start)
}
