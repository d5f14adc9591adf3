package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reglex-gen/reglex/internal/conv"
	"github.com/reglex-gen/reglex/internal/sparse"
	"github.com/reglex-gen/reglex/nfa"
	"github.com/reglex-gen/reglex/reglexerr"
)

// Determinize runs subset construction (spec.md §4.3) over n, producing a
// DFA whose states are sets of NFA states reachable under the same input.
// When the start state's epsilon closure already contains an accepting
// NFA state, the corresponding rule matches the empty string, which the
// maximal-munch runtime cannot drive without spinning forever; that is
// reported as reglexerr.ErrEmptyMatch rather than silently compiled away.
func Determinize(n *nfa.NFA) (*DFA, error) {
	startSet := closure(n, []nfa.StateID{n.Start()})
	d := &DFA{}
	seen := map[string]int{}
	type pending struct {
		set []nfa.StateID
		id  int
	}
	key := setKey(startSet)
	startID := newDFAState(d, n, startSet)
	seen[key] = startID
	d.Start = startID
	queue := []pending{{set: startSet, id: startID}}

	if d.States[startID].Tag != NoMatch {
		return nil, reglexerr.ErrEmptyMatch
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b := 0; b < 256; b++ {
			nextSet := step(n, cur.set, byte(b))
			if len(nextSet) == 0 {
				continue
			}
			k := setKey(nextSet)
			id, ok := seen[k]
			if !ok {
				id = newDFAState(d, n, nextSet)
				seen[k] = id
				queue = append(queue, pending{set: nextSet, id: id})
			}
			d.States[cur.id].Trans[b] = id
		}
	}
	return d, nil
}

// newDFAState allocates a DFA state for set, tagging it with the smallest
// end tag among any accepting NFA states it contains (spec.md §4.4's
// "numerically-smallest-tag" tie-break, applied here so determinization
// and minimization agree on which rule a multi-accepting subset reports).
func newDFAState(d *DFA, n *nfa.NFA, set []nfa.StateID) int {
	s := newState()
	for _, id := range set {
		st := n.State(id)
		if st.IsMatch() && (s.Tag == NoMatch || st.EndTag() < s.Tag) {
			s.Tag = st.EndTag()
		}
	}
	d.States = append(d.States, s)
	return len(d.States) - 1
}

// closure returns the epsilon closure of states, deduplicated and sorted
// for use as a canonical subset-construction key. Visited-state dedup
// uses a sparse.SparseSet (adapted from the teacher's internal/sparse,
// built for exactly this "track visited NFA states during simulation"
// case) in place of a map[nfa.StateID]bool, since the universe of
// possible values (n.NumStates()) is known up front.
func closure(n *nfa.NFA, states []nfa.StateID) []nfa.StateID {
	seen := sparse.NewSparseSet(conv.IntToUint32(n.NumStates()))
	var out []nfa.StateID
	var visit func(nfa.StateID)
	visit = func(id nfa.StateID) {
		if seen.Contains(uint32(id)) {
			return
		}
		seen.Insert(uint32(id))
		st := n.State(id)
		switch st.Kind() {
		case nfa.StateEpsilon:
			visit(st.Epsilon())
		case nfa.StateSplit:
			l, r := st.Split()
			visit(l)
			visit(r)
		default:
			out = append(out, id)
		}
	}
	for _, s := range states {
		visit(s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// step advances every ByteRange state in states on b and returns the
// epsilon closure of the results.
func step(n *nfa.NFA, states []nfa.StateID, b byte) []nfa.StateID {
	var next []nfa.StateID
	for _, id := range states {
		st := n.State(id)
		if st.Kind() != nfa.StateByteRange {
			continue
		}
		lo, hi, target := st.ByteRange()
		if lo <= b && b <= hi {
			next = append(next, target)
		}
	}
	if len(next) == 0 {
		return nil
	}
	return closure(n, next)
}

// setKey renders a sorted state-id set as a canonical map key.
func setKey(set []nfa.StateID) string {
	var b strings.Builder
	for i, id := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}
