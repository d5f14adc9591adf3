// Package specfile reads reglex's %%-sectioned input format (spec.md §4.1,
// §6): five segments — host code, instructions, regular definitions,
// rules, host code — copying the two host-code segments through verbatim
// (with '%' escaping against the "%%" delimiter) and parsing the three
// declarative segments in between. Regex text within the defs and rules
// segments is delegated to regexparse, with its offset-relative
// ParseError translated here into a true line:col reglexerr.Located,
// since reader is the only component that knows where in the file each
// regex token started.
package specfile

import (
	"github.com/reglex-gen/reglex/internal/simd"
	"github.com/reglex-gen/reglex/regexast"
	"github.com/reglex-gen/reglex/regexparse"
	"github.com/reglex-gen/reglex/reglexerr"
	"github.com/reglex-gen/reglex/specfile/internal/delim"
)

// Rule is one tagged regex-to-action rule within a ParserSpec. Tag is
// assigned per-parser in source order starting at 0 (spec.md §3).
type Rule struct {
	Tag     int
	Pattern regexast.Node
	Action  []byte
}

// ParserSpec is one named or default sub-lexer and its rules
// (spec.md §3 "Parser spec").
type ParserSpec struct {
	Name      string // "" for the default unnamed parser
	IsDefault bool
	Rules     []Rule
}

// Spec is the fully-parsed contents of a spec file.
type Spec struct {
	PrologueHost []byte
	EpilogueHost []byte
	EmitMain     bool
	Defs         *regexast.DefTable
	Parsers      []*ParserSpec
}

// Read parses data as a complete spec file.
func Read(data []byte) (*Spec, error) {
	r := newReader(data)

	prologue, err := scanEscaped(r, '%', true)
	if err != nil {
		return nil, err
	}

	emitMain, err := parseInstructions(r)
	if err != nil {
		return nil, err
	}

	defs := regexast.NewDefTable()
	if err := parseDefs(r, defs); err != nil {
		return nil, err
	}

	parsers, err := parseRules(r, defs)
	if err != nil {
		return nil, err
	}

	epilogue, err := scanEscaped(r, '%', false)
	if err != nil {
		return nil, err
	}

	return &Spec{
		PrologueHost: prologue,
		EpilogueHost: epilogue,
		EmitMain:     emitMain,
		Defs:         defs,
		Parsers:      parsers,
	}, nil
}

// reader is a cursor over a spec file's bytes, tracking 1-based line:col
// as it advances (spec.md §4.1 "tracking line:column for diagnostics is
// required"). Its three structural delimiters ("%%", "%{", "%}") are all
// found through one shared delim.Scanner rather than three separate
// literal comparisons, mirroring the teacher's single-automaton-walk use
// of github.com/coregx/ahocorasick for multi-literal search.
type reader struct {
	data      []byte
	pos       int
	line, col int
	delims    *delim.Scanner
}

func newReader(data []byte) *reader {
	// The scanner's pattern set ("%%", "%{", "%}") is fixed and always
	// valid, so Build cannot fail here.
	s, err := delim.NewScanner()
	if err != nil {
		panic("specfile: " + err.Error())
	}
	return &reader{data: data, line: 1, col: 1, delims: s}
}

func (r *reader) eof() bool { return r.pos >= len(r.data) }

func (r *reader) peek() byte { return r.data[r.pos] }

func (r *reader) loc() reglexerr.Location {
	return reglexerr.Location{Line: r.line, Col: r.col}
}

func (r *reader) advance() byte {
	b := r.data[r.pos]
	r.pos++
	if b == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return b
}

// atDelim reports whether the given delimiter kind begins at the reader's
// current position.
func (r *reader) atDelim(kind delim.Kind) bool {
	occ, ok := r.delims.Next(r.data, r.pos)
	return ok && occ.Start == r.pos && occ.Kind == kind
}

// atAnyDelim reports whether any of kinds begins at the reader's current
// position. Used by scanToken, which must stop a token scan at whichever
// of several possible delimiters comes first.
func (r *reader) atAnyDelim(kinds ...delim.Kind) bool {
	occ, ok := r.delims.Next(r.data, r.pos)
	if !ok || occ.Start != r.pos {
		return false
	}
	for _, k := range kinds {
		if occ.Kind == k {
			return true
		}
	}
	return false
}

// tryConsumeDelim consumes kind from the current position if present.
func (r *reader) tryConsumeDelim(kind delim.Kind) bool {
	if !r.atDelim(kind) {
		return false
	}
	for range kind.String() {
		r.advance()
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (r *reader) skipWhitespace() {
	for !r.eof() && isSpace(r.peek()) {
		r.advance()
	}
}

// scanEscaped copies verbatim bytes up to a "%"+closeSecond delimiter,
// resolving '%' followed by anything other than closeSecond as a literal
// '%' (spec.md §4.1/"action body parsing"). When requireClose is true, EOF
// before the delimiter is a located error; otherwise EOF simply ends the
// segment (used for the file's final host-code segment, which has no
// following delimiter).
func scanEscaped(r *reader, closeSecond byte, requireClose bool) ([]byte, error) {
	var out []byte
	for {
		if r.eof() {
			if requireClose {
				return nil, reglexerr.At(r.loc(), reglexerr.ErrUnterminatedAction, "unexpected end of file")
			}
			return out, nil
		}
		rest := r.data[r.pos:]
		idx := simd.IndexPercent(rest)
		if idx == -1 {
			for !r.eof() {
				out = append(out, r.advance())
			}
			if requireClose {
				return nil, reglexerr.At(r.loc(), reglexerr.ErrUnterminatedAction, "unexpected end of file")
			}
			return out, nil
		}
		for i := 0; i < idx; i++ {
			out = append(out, r.advance())
		}
		pctLoc := r.loc()
		r.advance() // consume '%'
		if r.eof() {
			if requireClose {
				return nil, reglexerr.At(pctLoc, reglexerr.ErrUnterminatedAction, "stray '%' before end of input")
			}
			out = append(out, '%')
			return out, nil
		}
		if r.peek() == closeSecond {
			r.advance()
			return out, nil
		}
		out = append(out, '%')
	}
}

// parseName reads a maximal [A-Za-z0-9_]+ run, per spec.md §4.1/§6.
func parseName(r *reader) (string, error) {
	start := r.pos
	loc := r.loc()
	for !r.eof() && isIdentByte(r.peek()) {
		r.advance()
	}
	if r.pos == start {
		return "", reglexerr.At(loc, reglexerr.ErrMalformedName, "expected a name")
	}
	return string(r.data[start:r.pos]), nil
}

// scanToken reads a maximal run of non-whitespace bytes that does not
// begin with any delimiter kind in stopOn, used for both regular-
// definition and rule regex text (spec.md's reg_defs/rules grammar gives
// regex no internal whitespace and no embedded delimiter).
func scanToken(r *reader, stopOn ...delim.Kind) string {
	start := r.pos
	for !r.eof() && !isSpace(r.peek()) && !r.atAnyDelim(stopOn...) {
		r.advance()
	}
	return string(r.data[start:r.pos])
}

// parseRegex parses a scanned regex token, translating regexparse's
// offset-relative error into a file-level located diagnostic. tokenStart
// is the token's own start position; regex tokens never contain
// whitespace (the grammar forbids it), so they never span a line break,
// which makes the offset-to-column translation exact.
func parseRegex(tokenStart reglexerr.Location, token string, defs *regexast.DefTable) (regexast.Node, error) {
	n, err := regexparse.Parse(token, defs)
	if err == nil {
		return n, nil
	}
	if pe, ok := err.(*regexparse.ParseError); ok {
		loc := reglexerr.Location{Line: tokenStart.Line, Col: tokenStart.Col + pe.Offset}
		return nil, reglexerr.At(loc, reglexerr.ErrMalformedRegex, pe.Msg)
	}
	return nil, reglexerr.At(tokenStart, reglexerr.ErrMalformedRegex, err.Error())
}
