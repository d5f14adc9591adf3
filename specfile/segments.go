package specfile

import (
	"github.com/reglex-gen/reglex/regexast"
	"github.com/reglex-gen/reglex/reglexerr"
	"github.com/reglex-gen/reglex/specfile/internal/delim"
)

// parseInstructions parses the instructions segment: whitespace-separated
// identifiers drawn from a closed set (spec.md §4.1/§6).
func parseInstructions(r *reader) (emitMain bool, err error) {
	for {
		r.skipWhitespace()
		if r.tryConsumeDelim(delim.DoubleStop) {
			return emitMain, nil
		}
		if r.eof() {
			return false, reglexerr.At(r.loc(), reglexerr.ErrUnterminatedAction, "unexpected end of file in instructions section")
		}
		loc := r.loc()
		name, err := parseName(r)
		if err != nil {
			return false, err
		}
		switch name {
		case "emit_main":
			emitMain = true
		default:
			return false, reglexerr.Atf(loc, reglexerr.ErrUnknownInstruction, "%q", name)
		}
	}
}

// parseDefs parses the regular-definitions segment: `(name regex)*`
// (spec.md §4.1/§6). Each definition is added to defs as soon as it is
// parsed, so later definitions in the same section resolve against
// everything declared so far but not against themselves or anything
// declared after ("resolution uses the table at the moment the rule is
// parsed").
func parseDefs(r *reader, defs *regexast.DefTable) error {
	for {
		r.skipWhitespace()
		if r.tryConsumeDelim(delim.DoubleStop) {
			return nil
		}
		if r.eof() {
			return reglexerr.At(r.loc(), reglexerr.ErrUnterminatedAction, "unexpected end of file in regular definitions section")
		}
		name, err := parseName(r)
		if err != nil {
			return err
		}
		r.skipWhitespace()
		tokenStart := r.loc()
		token := scanToken(r, delim.DoubleStop)
		if token == "" {
			return reglexerr.Atf(tokenStart, reglexerr.ErrMalformedRegex, "definition %q has no regex", name)
		}
		node, err := parseRegex(tokenStart, token, defs)
		if err != nil {
			return err
		}
		defs.Define(name, node)
	}
}

// parseRules parses the rules segment: a sequence of parser markers and
// regex-action rules (spec.md §4.1/§6). Rules before the first marker
// belong to the unnamed parser; selectDefault then picks the default
// parser.
func parseRules(r *reader, defs *regexast.DefTable) ([]*ParserSpec, error) {
	unnamed := &ParserSpec{Name: ""}
	parsers := []*ParserSpec{unnamed}
	cur := unnamed
	byName := map[string]*ParserSpec{"": unnamed}

	for {
		r.skipWhitespace()
		if r.tryConsumeDelim(delim.DoubleStop) {
			break
		}
		if r.eof() {
			return nil, reglexerr.At(r.loc(), reglexerr.ErrUnterminatedAction, "unexpected end of file in rules section")
		}
		// A "%{" at this position can only open a parser marker: a rule's
		// regex is always non-empty text preceding its own "%{action%}",
		// so "%{" never legitimately starts a rule here.
		if r.atDelim(delim.Open) {
			p, err := parseMarker(r)
			if err != nil {
				return nil, err
			}
			existing, ok := byName[p.Name]
			if ok {
				cur = existing
				continue
			}
			byName[p.Name] = p
			parsers = append(parsers, p)
			cur = p
			continue
		}
		rule, err := parseRule(r, defs, len(cur.Rules))
		if err != nil {
			return nil, err
		}
		cur.Rules = append(cur.Rules, rule)
	}

	return selectDefault(parsers), nil
}

// parseMarker parses `%{identifier%}` and returns a (possibly new)
// ParserSpec for identifier.
func parseMarker(r *reader) (*ParserSpec, error) {
	r.tryConsumeDelim(delim.Open)
	r.skipWhitespace()
	loc := r.loc()
	name, err := parseName(r)
	if err != nil {
		return nil, err
	}
	r.skipWhitespace()
	if !r.tryConsumeDelim(delim.Close) {
		return nil, reglexerr.At(loc, reglexerr.ErrMalformedRule, "parser marker missing closing '%}'")
	}
	return &ParserSpec{Name: name}, nil
}

// parseRule parses `regex '%{' action_bytes '%}'`.
func parseRule(r *reader, defs *regexast.DefTable, tag int) (Rule, error) {
	tokenStart := r.loc()
	token := scanToken(r, delim.Open, delim.DoubleStop)
	if token == "" {
		return Rule{}, reglexerr.At(tokenStart, reglexerr.ErrMalformedRule, "expected a regex before '%{'")
	}
	node, err := parseRegex(tokenStart, token, defs)
	if err != nil {
		return Rule{}, err
	}
	if regexast.MatchesEmpty(node) {
		return Rule{}, reglexerr.At(tokenStart, reglexerr.ErrEmptyMatch, "rule "+token)
	}
	r.skipWhitespace()
	if !r.tryConsumeDelim(delim.Open) {
		return Rule{}, reglexerr.At(r.loc(), reglexerr.ErrMalformedRule, "expected '%{' to open the rule's action")
	}
	action, err := scanEscaped(r, '}', true)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Tag: tag, Pattern: node, Action: action}, nil
}

// selectDefault marks the default parser: the unnamed parser if it has
// any rules, otherwise the first named parser in source order
// (spec.md §3 "the first parser in source order is the default"). An
// unnamed parser with zero rules is dropped entirely — it contributes no
// tokens and would otherwise mislead the driver into compiling an
// automaton with no rules; with no named parsers either, the result is
// empty.
func selectDefault(parsers []*ParserSpec) []*ParserSpec {
	unnamed := parsers[0]
	if len(unnamed.Rules) > 0 {
		unnamed.IsDefault = true
		return parsers
	}
	parsers = parsers[1:]
	if len(parsers) == 0 {
		return nil
	}
	parsers[0].IsDefault = true
	return parsers
}
