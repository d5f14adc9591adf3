// Package delim locates reglex's three spec-file delimiters — "%%",
// "%{", "%}" (spec.md §4.1) — in one pass using a single Aho-Corasick
// automaton, rather than three separate bytes.Index scans. This mirrors
// the teacher's (coregx/coregex) own use of github.com/coregx/ahocorasick
// for multi-literal search in meta.Engine's UseAhoCorasick strategy: one
// automaton walk finds whichever of a literal set occurs first.
package delim

import "github.com/coregx/ahocorasick"

// Kind identifies which delimiter an Occurrence reports.
type Kind int

const (
	// DoubleStop is "%%", the section separator.
	DoubleStop Kind = iota
	// Open is "%{", the start of an action block or a parser marker.
	Open
	// Close is "%}", the end of an action block or a parser marker.
	Close
)

func (k Kind) String() string {
	switch k {
	case DoubleStop:
		return "%%"
	case Open:
		return "%{"
	case Close:
		return "%}"
	default:
		return "?"
	}
}

// Occurrence is one delimiter match within a scanned buffer.
type Occurrence struct {
	Kind  Kind
	Start int
	End   int
}

// Scanner finds %%, %{, and %} occurrences in a byte buffer.
type Scanner struct {
	auto *ahocorasick.Automaton
}

// NewScanner builds the underlying Aho-Corasick automaton once, so a
// single Scanner can be reused across every segment of a spec file.
func NewScanner() (*Scanner, error) {
	b := ahocorasick.NewBuilder()
	b.AddPattern([]byte("%%"))
	b.AddPattern([]byte("%{"))
	b.AddPattern([]byte("%}"))
	auto, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Scanner{auto: auto}, nil
}

// Next returns the first delimiter occurrence in data at or after from, or
// ok=false if none remain. The matched bytes (rather than a pattern id
// from the automaton) identify which delimiter was found, since all three
// patterns are the same length and the automaton's Match only reports a
// byte span.
func (s *Scanner) Next(data []byte, from int) (occ Occurrence, ok bool) {
	if from >= len(data) {
		return Occurrence{}, false
	}
	m := s.auto.Find(data, from)
	if m == nil {
		return Occurrence{}, false
	}
	kind := classify(data[m.Start:m.End])
	return Occurrence{Kind: kind, Start: m.Start, End: m.End}, true
}

func classify(matched []byte) Kind {
	switch string(matched) {
	case "%%":
		return DoubleStop
	case "%{":
		return Open
	case "%}":
		return Close
	default:
		// Unreachable: the automaton was built from exactly these three
		// patterns.
		panic("delim: unexpected match " + string(matched))
	}
}
