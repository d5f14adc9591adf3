package nfa

import "fmt"

// Builder constructs an NFA incrementally via a low-level API, following
// the teacher's coregx/coregex nfa.Builder. The compile package (Build in
// this package) drives it one regexast.Node at a time per spec.md §4.2.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16), start: InvalidState}
}

// AddMatch adds an accepting state tagged with the rule it accepts.
func (b *Builder) AddMatch(endTag int) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch, endTag: endTag})
	return id
}

// AddByteRange adds a state that consumes one byte in [lo, hi] and moves
// to next. For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByteRange, lo: lo, hi: hi, next: next})
	return id
}

// AddSplit adds a state with epsilon transitions to two states, used for
// alternation and closures.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon transition.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// Patch updates the target of a ByteRange or Epsilon state. Used to close
// forward references left open during construction (e.g. closure bodies).
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon:
		s.next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch state of kind %s", s.kind), StateID: stateID}
	}
}

// PatchSplit updates the left and right targets of a Split state.
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{Message: fmt.Sprintf("expected Split state, got %s", s.kind), StateID: stateID}
	}
	s.left, s.right = left, right
	return nil
}

// SetStart sets the NFA's single start state.
func (b *Builder) SetStart(start StateID) { b.start = start }

// NumStates returns the current number of states.
func (b *Builder) NumStates() int { return len(b.states) }

// Validate checks that the NFA is well-formed: the start state is set and
// every transition target refers to a state that exists.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set"}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByteRange, StateEpsilon:
			if int(s.next) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case StateSplit:
			if int(s.left) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid left state %d", s.left), StateID: id}
			}
			if int(s.right) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid right state %d", s.right), StateID: id}
			}
		}
	}
	return nil
}

// Build finalizes and returns the constructed NFA. numRules records how
// many tagged rules contributed match states, reported by NFA.NumRules.
func (b *Builder) Build(numRules int) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{states: b.states, start: b.start, numRules: numRules}, nil
}
