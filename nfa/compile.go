package nfa

import "github.com/reglex-gen/reglex/regexast"

// Rule is one tagged regex rule to fold into a single NFA: Tag becomes the
// EndTag recorded on its accepting state, and rules are expected in
// declaration order since dfa's numerically-smallest-tag tie-break
// (spec.md §4.4) depends on Tag ordering matching declaration order.
type Rule struct {
	Tag     int
	Pattern regexast.Node
}

// Build performs Thompson construction (spec.md §4.2) over rules, folding
// every rule's fragment into one NFA epsilon-joined from a single
// synthetic start state. It is grounded on the nfaBuilder.build recursive
// construction from the nex lexer generator, adapted to reglex's tagged
// multi-rule accepting states in place of nex's single-pattern capture
// groups.
func Build(rules []Rule) (*NFA, error) {
	b := NewBuilder()
	starts := make([]StateID, len(rules))
	for i, r := range rules {
		match := b.AddMatch(r.Tag)
		starts[i] = compile(b, r.Pattern, match)
	}
	b.SetStart(joinStarts(b, starts))
	return b.Build(len(rules))
}

// joinStarts folds a list of fragment starts into one entry state via a
// right-leaning chain of Split states. A single rule needs no split.
func joinStarts(b *Builder, starts []StateID) StateID {
	if len(starts) == 1 {
		return starts[0]
	}
	join := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		join = b.AddSplit(starts[i], join)
	}
	return join
}

// compile recursively lowers n into states that, once matched, continue to
// next. It returns the entry state of the fragment it built.
func compile(b *Builder, n regexast.Node, next StateID) StateID {
	switch t := n.(type) {
	case *regexast.CharClass:
		return compileCharClass(b, t, next)

	case *regexast.Concat:
		if len(t.Subs) == 0 {
			return b.AddEpsilon(next)
		}
		cur := next
		for i := len(t.Subs) - 1; i >= 0; i-- {
			cur = compile(b, t.Subs[i], cur)
		}
		return cur

	case *regexast.Alternate:
		starts := make([]StateID, len(t.Subs))
		for i, sub := range t.Subs {
			starts[i] = compile(b, sub, next)
		}
		return joinStarts(b, starts)

	case *regexast.Star:
		// loop is a placeholder Split patched once the body's start is
		// known, since the body's own continuation is the loop itself.
		loop := b.AddSplit(InvalidState, next)
		body := compile(b, t.Sub, loop)
		_ = b.PatchSplit(loop, body, next)
		return loop

	case *regexast.Plus:
		loop := b.AddSplit(InvalidState, next)
		body := compile(b, t.Sub, loop)
		_ = b.PatchSplit(loop, body, next)
		return body

	case *regexast.Quest:
		return b.AddSplit(compile(b, t.Sub, next), next)

	default:
		panic("nfa: unresolved or unhandled regexast node reached compile")
	}
}

// compileCharClass expands a (possibly negated) CharClass into disjoint
// byte ranges and lowers it to a chain of ByteRange states joined by
// Splits, one range per alternative.
func compileCharClass(b *Builder, c *regexast.CharClass, next StateID) StateID {
	ranges := normalizeRanges(c)
	if len(ranges) == 0 {
		// Matches nothing: a Split whose branches both dead-end is not
		// expressible without a sink state, so route to a ByteRange over
		// the empty interval lo=1,hi=0, which no byte b satisfies
		// (lo <= b && b <= hi).
		return b.AddByteRange(1, 0, next)
	}
	starts := make([]StateID, len(ranges))
	for i, r := range ranges {
		starts[i] = b.AddByteRange(r.Lo, r.Hi, next)
	}
	return joinStarts(b, starts)
}

// normalizeRanges returns c's matching set as a sorted, merged, disjoint
// list of byte ranges, resolving negation by complementing over 0..255.
func normalizeRanges(c *regexast.CharClass) []regexast.ByteRange {
	var marks [256]bool
	for _, r := range c.Ranges {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			marks[b] = true
		}
	}
	if c.Negate {
		for b := range marks {
			marks[b] = !marks[b]
		}
	}
	var out []regexast.ByteRange
	inRun := false
	var lo byte
	for b := 0; b < 256; b++ {
		if marks[b] && !inRun {
			inRun = true
			lo = byte(b)
		}
		if !marks[b] && inRun {
			inRun = false
			out = append(out, regexast.ByteRange{Lo: lo, Hi: byte(b - 1)})
		}
	}
	if inRun {
		out = append(out, regexast.ByteRange{Lo: lo, Hi: 255})
	}
	return out
}
