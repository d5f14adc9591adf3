// Package regexast defines the abstract syntax tree for reglex's regular
// expressions: the in-memory form produced by regexparse and consumed by
// the nfa package.
//
// The alphabet is the byte range 0..=255 plus an implicit end-of-file
// sentinel handled by the matcher, never by the AST (spec.md Non-goals:
// no Unicode awareness). Every Node is immutable once built.
package regexast

import "fmt"

// Node is a regex AST node. The concrete types below are the only
// implementations; callers type-switch on them.
type Node interface {
	// isNode is unexported so regexast remains the sole implementer of Node.
	isNode()
}

// CharClass is a leaf matching a single byte drawn from a set of closed
// ranges. A bare literal byte is a CharClass with one range of length 1.
type CharClass struct {
	Ranges []ByteRange
	Negate bool // true when the class excludes Ranges instead of matching them
}

// ByteRange is an inclusive [Lo, Hi] byte range.
type ByteRange struct {
	Lo, Hi byte
}

// Contains reports whether b falls in the range.
func (r ByteRange) Contains(b byte) bool { return r.Lo <= b && b <= r.Hi }

// Matches reports whether b is accepted by the class, accounting for
// negation.
func (c *CharClass) Matches(b byte) bool {
	in := false
	for _, r := range c.Ranges {
		if r.Contains(b) {
			in = true
			break
		}
	}
	if c.Negate {
		return !in
	}
	return in
}

// Concat is an ordered sequence of sub-patterns matched back to back.
type Concat struct {
	Subs []Node
}

// Alternate is an ordered set of alternatives; any one matching suffices.
// Order is semantically irrelevant but preserved for deterministic tag
// tie-break diagnostics.
type Alternate struct {
	Subs []Node
}

// Star is Kleene closure: Sub matched zero or more times.
type Star struct{ Sub Node }

// Plus is positive closure: Sub matched one or more times.
type Plus struct{ Sub Node }

// Quest is the optional quantifier: Sub matched zero or one times.
type Quest struct{ Sub Node }

// Ref is a named reference to a regular definition. regexparse resolves
// every Ref to the referenced AST (structural inlining) before returning;
// a Ref must never appear in a tree handed to the nfa package.
type Ref struct{ Name string }

func (*CharClass) isNode() {}
func (*Concat) isNode()    {}
func (*Alternate) isNode() {}
func (*Star) isNode()      {}
func (*Plus) isNode()      {}
func (*Quest) isNode()     {}
func (*Ref) isNode()       {}

// Byte builds a single-byte CharClass, the common case for literal
// characters.
func Byte(b byte) *CharClass {
	return &CharClass{Ranges: []ByteRange{{Lo: b, Hi: b}}}
}

// Empty builds the node matching only the empty string: an alternation of
// zero alternatives is undefined, so this is represented as an empty
// Concat, which Thompson construction turns into a single epsilon edge.
func Empty() *Concat {
	return &Concat{}
}

// MatchesEmpty reports whether n can match the empty string — used by the
// spec reader's per-rule validation (spec.md §4.3/§4.4 empty-match
// rejection runs post-minimization, but this fast local check lets
// specfile reject trivially-empty top-level rules, e.g. bare `a*`, with
// a located diagnostic before compilation even starts).
func MatchesEmpty(n Node) bool {
	switch t := n.(type) {
	case *CharClass:
		return false
	case *Concat:
		for _, s := range t.Subs {
			if !MatchesEmpty(s) {
				return false
			}
		}
		return true
	case *Alternate:
		for _, s := range t.Subs {
			if MatchesEmpty(s) {
				return true
			}
		}
		return false
	case *Star:
		return true
	case *Plus:
		return MatchesEmpty(t.Sub)
	case *Quest:
		return true
	case *Ref:
		panic(fmt.Sprintf("regexast: unresolved reference %q reached MatchesEmpty", t.Name))
	default:
		panic(fmt.Sprintf("regexast: unhandled node type %T", n))
	}
}

// String renders n as a debug s-expression; useful for -d/--debug dumps
// and test failure messages, not for round-tripping.
func String(n Node) string {
	switch t := n.(type) {
	case *CharClass:
		return charClassString(t)
	case *Concat:
		if len(t.Subs) == 0 {
			return "(empty)"
		}
		s := "(concat"
		for _, sub := range t.Subs {
			s += " " + String(sub)
		}
		return s + ")"
	case *Alternate:
		s := "(alt"
		for _, sub := range t.Subs {
			s += " " + String(sub)
		}
		return s + ")"
	case *Star:
		return "(star " + String(t.Sub) + ")"
	case *Plus:
		return "(plus " + String(t.Sub) + ")"
	case *Quest:
		return "(quest " + String(t.Sub) + ")"
	case *Ref:
		return "(ref " + t.Name + ")"
	default:
		return fmt.Sprintf("(unknown %T)", n)
	}
}

func charClassString(c *CharClass) string {
	s := "["
	if c.Negate {
		s += "^"
	}
	for _, r := range c.Ranges {
		if r.Lo == r.Hi {
			s += fmt.Sprintf("%q", r.Lo)
		} else {
			s += fmt.Sprintf("%q-%q", r.Lo, r.Hi)
		}
	}
	return s + "]"
}
