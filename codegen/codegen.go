// Package codegen renders a minimized dfa.DFA into Go source: one matcher
// function per named parser, each a sequence of labeled states joined by
// goto, dispatching on the next input byte through a dense,
// range-compressed switch (spec.md §4.4 "Codegen shape"). The emission
// shape is grounded on the nex lex-generator's gen() function, which emits
// a labeled "helpful: switch" per rule family and partitions the rune
// alphabet into sorted, non-overlapping ranges before emitting cases
// (see nex's insertLimits helper) — codegen does the same over the
// byte alphabet, since reglex's DFA is already byte-deterministic.
//
// Generated matchers call back into the fixed runtime (package
// reglexrt's Runtime) through a small interface: NextByte, Accept, Reject. Nothing
// in this package runs at generated-program runtime; it only writes Go
// source text.
package codegen

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/reglex-gen/reglex/dfa"
)

// byteRange is one (lo, hi) -> target entry of a range-compressed
// transition table.
type byteRange struct {
	lo, hi byte
	target int
}

// compress groups a DFA state's 256-entry transition table into sorted,
// non-overlapping ranges of bytes that share the same target state,
// following nex's insertLimits strategy of partitioning the alphabet by
// transition equivalence rather than emitting one case per byte.
func compress(s dfa.State) []byteRange {
	var out []byteRange
	i := 0
	for i < 256 {
		t := s.Trans[i]
		if t == dfa.NoTransition {
			i++
			continue
		}
		j := i + 1
		for j < 256 && s.Trans[j] == t {
			j++
		}
		out = append(out, byteRange{lo: byte(i), hi: byte(j - 1), target: t})
		i = j
	}
	return out
}

// FuncName derives a Go-safe matcher function name for a parser, e.g.
// "" -> "matchDefault", "string" -> "matchString".
func FuncName(parserName string) string {
	if parserName == "" {
		return "matchDefault"
	}
	return "match" + exportCase(parserName)
}

func exportCase(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Emit writes a Go function implementing d as funcName(rt *reglexrt.Runtime).
// Each DFA state becomes a label; accepting states call rt.Accept(tag)
// before attempting the next transition (spec.md: "Accepting states call
// accept(tag) before attempting the transition"); a state with no
// transition for the byte read falls through to a shared reject label
// (spec.md: "A state with no transitions for the read byte calls the
// per-parser reject routine").
func Emit(w io.Writer, funcName string, d *dfa.DFA) error {
	var b strings.Builder

	fmt.Fprintf(&b, "func %s(rt *reglexrt.Runtime) {\n", funcName)
	b.WriteString("\tvar b byte\n\tvar ok bool\n")
	fmt.Fprintf(&b, "\tgoto state%d\n", d.Start)

	for i, s := range d.States {
		fmt.Fprintf(&b, "state%d:\n", i)
		if s.Tag != dfa.NoMatch {
			fmt.Fprintf(&b, "\trt.Accept(%d)\n", s.Tag)
		}
		b.WriteString("\tb, ok = rt.NextByte()\n")
		b.WriteString("\tif !ok {\n\t\tgoto reject\n\t}\n")

		ranges := compress(s)
		if len(ranges) > 0 {
			b.WriteString("\tswitch {\n")
			// Merge equal targets' non-adjacent ranges into one case so a
			// state with e.g. 'a'-'z' split around a mid-range exception
			// still emits one case per distinct target, not one per run.
			byTarget := map[int][]byteRange{}
			var order []int
			for _, r := range ranges {
				if _, ok := byTarget[r.target]; !ok {
					order = append(order, r.target)
				}
				byTarget[r.target] = append(byTarget[r.target], r)
			}
			sort.Ints(order)
			for _, target := range order {
				conds := make([]string, 0, len(byTarget[target]))
				for _, r := range byTarget[target] {
					conds = append(conds, condFor(r))
				}
				fmt.Fprintf(&b, "\tcase %s:\n\t\tgoto state%d\n", strings.Join(conds, " || "), target)
			}
			b.WriteString("\t}\n")
		}
		b.WriteString("\tgoto reject\n")
	}

	b.WriteString("reject:\n\trt.Reject()\n}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// condFor renders a byte range as a Go boolean expression, using a single
// equality test for singleton ranges (nex's "sing" singleton set) and a
// bounded comparison otherwise (nex's "lim" range list).
func condFor(r byteRange) string {
	if r.lo == r.hi {
		return fmt.Sprintf("b == %s", byteLit(r.lo))
	}
	return fmt.Sprintf("b >= %s && b <= %s", byteLit(r.lo), byteLit(r.hi))
}

// byteLit renders a byte as a Go literal: a quoted char for printable
// ASCII, a hex escape otherwise.
func byteLit(b byte) string {
	if b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
