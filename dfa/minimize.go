package dfa

import "github.com/reglex-gen/reglex/reglexerr"

// Minimize collapses equivalent states in d via Hopcroft-style partition
// refinement (spec.md §4.4): states start grouped by end tag — every
// accepting tag in its own group, every non-accepting state in one group —
// and groups are repeatedly split until no two states in the same group
// can be told apart by where their transitions lead. Grouping by tag up
// front, rather than only by "accepting or not," is what keeps two rules
// that happen to accept the same strings from merging into one state and
// losing one rule's identity.
//
// Minimize re-checks the empty-match invariant on its output, so a DFA
// that did not come from Determinize is checked too. Because groups never
// mix tags, the start state keeps its tag through minimization.
func Minimize(d *DFA) (*DFA, error) {
	part := initialPartition(d)
	for {
		next, changed := refine(d, part)
		part = next
		if !changed {
			break
		}
	}
	out := buildMinimized(d, part)
	if out.States[out.Start].Tag != NoMatch {
		return nil, reglexerr.ErrEmptyMatch
	}
	return out, nil
}

// initialPartition groups every state by its Tag: NoMatch states share
// group 0, and every distinct accepting tag gets its own group.
func initialPartition(d *DFA) []int {
	groupOf := map[int]int{NoMatch: 0}
	next := 1
	part := make([]int, len(d.States))
	for i, s := range d.States {
		g, ok := groupOf[s.Tag]
		if !ok {
			g = next
			next++
			groupOf[s.Tag] = g
		}
		part[i] = g
	}
	return part
}

// refine splits part by transition signature: two states in the same
// group stay together only if, for every byte, their transitions land in
// the same group (or both have no transition).
func refine(d *DFA, part []int) ([]int, bool) {
	type sigKey struct {
		group int
		sig   string
	}
	newGroup := map[sigKey]int{}
	next := 0
	out := make([]int, len(d.States))
	// Assign new group ids in state order so minimized output is
	// reproducible across runs.
	for i, s := range d.States {
		k := sigKey{group: part[i], sig: signature(s, part)}
		g, ok := newGroup[k]
		if !ok {
			g = next
			next++
			newGroup[k] = g
		}
		out[i] = g
	}
	// A group only truly split if it now maps to more than one new group;
	// the group count is the simplest fixpoint test, since renumbering
	// alone (same count, different ids) is not a real split.
	if countGroups(part) == countGroups(out) {
		return part, false
	}
	return out, true
}

func countGroups(part []int) int {
	seen := map[int]bool{}
	for _, g := range part {
		seen[g] = true
	}
	return len(seen)
}

func signature(s State, part []int) string {
	buf := make([]byte, 0, 256*4)
	for _, t := range s.Trans {
		buf = appendGroupTag(buf, t, part)
	}
	return string(buf)
}

func appendGroupTag(buf []byte, trans int, part []int) []byte {
	if trans == NoTransition {
		return append(buf, 0xFF)
	}
	g := part[trans]
	return append(buf, byte(g), byte(g>>8), byte(g>>16), byte(g>>24))
}

// buildMinimized constructs one DFA state per distinct group in part,
// using each group's lowest-indexed member as the representative whose
// transitions and tag the merged state inherits.
func buildMinimized(d *DFA, part []int) *DFA {
	rep := map[int]int{} // group -> representative original state index
	for i, g := range part {
		if cur, ok := rep[g]; !ok || i < cur {
			rep[g] = i
		}
	}
	groups := make([]int, 0, len(rep))
	for g := range rep {
		groups = append(groups, g)
	}
	// Deterministic group numbering: order by representative state index.
	sortInts(groups, func(a, b int) bool { return rep[a] < rep[b] })
	groupIndex := make(map[int]int, len(groups))
	for i, g := range groups {
		groupIndex[g] = i
	}

	out := &DFA{States: make([]State, len(groups))}
	for i, g := range groups {
		old := d.States[rep[g]]
		ns := newState()
		ns.Tag = old.Tag
		for b, t := range old.Trans {
			if t != NoTransition {
				ns.Trans[b] = groupIndex[part[t]]
			}
		}
		out.States[i] = ns
	}
	out.Start = groupIndex[part[d.Start]]
	return out
}

// sortInts is a tiny insertion sort to avoid pulling in sort.Slice for a
// handful of group ids per call.
func sortInts(xs []int, less func(a, b int) bool) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && less(xs[j], xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
