// Package regexparse parses the regex syntax from spec.md §6 into a
// regexast.Node, resolving named references against a regexast.DefTable
// supplied by the caller (spec.md §4.1: "resolution uses the table at the
// moment the rule is parsed").
//
// Grammar (spec.md §6):
//
//	alt      := concat ('|' concat)*
//	concat   := closure*
//	closure  := atom ('*' | '+' | '?')?
//	atom     := '(' alt ')' | '[' class ']' | '.' | escape | literal | ref
//	ref      := a maximal run of [A-Za-z0-9_] that resolves in the table
//
// Bare identifiers double as both multi-character literals (e.g. the
// keyword `if`) and named references (e.g. `LETTER+`): the parser tries the
// longest identifier run against the table first and only falls back to
// single-character literals one byte at a time when no definition matches,
// which is what lets `if` lex as two literal bytes while `LETTER+` lexes as
// one reference atom.
package regexparse

import (
	"fmt"

	"github.com/reglex-gen/reglex/regexast"
)

// Parse parses src as a regex, resolving references against defs. defs may
// be nil, in which case any reference fails to resolve.
func Parse(src string, defs *regexast.DefTable) (regexast.Node, error) {
	p := &parser{src: src, defs: defs}
	n, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return n, nil
}

type parser struct {
	src  string
	pos  int
	defs *regexast.DefTable
}

func (p *parser) eof() bool   { return p.pos >= len(p.src) }
func (p *parser) peek() byte  { return p.src[p.pos] }
func (p *parser) advance() byte {
	b := p.src[p.pos]
	p.pos++
	return b
}

// parseAlt := concat ('|' concat)*
func (p *parser) parseAlt() (regexast.Node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	subs := []regexast.Node{first}
	for !p.eof() && p.peek() == '|' {
		p.advance()
		sub, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return &regexast.Alternate{Subs: subs}, nil
}

// parseConcat := closure*
func (p *parser) parseConcat() (regexast.Node, error) {
	var subs []regexast.Node
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		n, err := p.parseClosure()
		if err != nil {
			return nil, err
		}
		subs = append(subs, n)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return &regexast.Concat{Subs: subs}, nil
}

// parseClosure := atom ('*' | '+' | '?')?
func (p *parser) parseClosure() (regexast.Node, error) {
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return n, nil
	}
	switch p.peek() {
	case '*':
		p.advance()
		return &regexast.Star{Sub: n}, nil
	case '+':
		p.advance()
		return &regexast.Plus{Sub: n}, nil
	case '?':
		p.advance()
		return &regexast.Quest{Sub: n}, nil
	}
	return n, nil
}

// parseAtom := '(' alt ')' | '[' class ']' | '.' | escape | literal | ref
func (p *parser) parseAtom() (regexast.Node, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of regex")
	}
	switch c := p.peek(); {
	case c == '(':
		p.advance()
		n, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, p.errorf("unmatched '('")
		}
		p.advance()
		return n, nil
	case c == '[':
		p.advance()
		return p.parseClass()
	case c == '.':
		p.advance()
		return &regexast.CharClass{Ranges: []regexast.ByteRange{{Lo: '\n', Hi: '\n'}}, Negate: true}, nil
	case c == '\\':
		p.advance()
		b, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return regexast.Byte(b), nil
	case isIdentByte(c):
		return p.parseIdentOrLiteral()
	default:
		return regexast.Byte(p.advance()), nil
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseIdentOrLiteral tries the longest identifier run against defs; if it
// resolves, the whole run becomes a Ref. Otherwise it falls back to a
// single literal byte and lets the caller's concat loop retry from the
// next position.
func (p *parser) parseIdentOrLiteral() (regexast.Node, error) {
	start := p.pos
	end := start
	for end < len(p.src) && isIdentByte(p.src[end]) {
		end++
	}
	name := p.src[start:end]
	if p.defs != nil {
		if def, ok := p.defs.Lookup(name); ok {
			p.pos = end
			return cloneNode(def), nil
		}
	}
	return regexast.Byte(p.advance()), nil
}

// parseEscape parses the character immediately following a backslash.
func (p *parser) parseEscape() (byte, error) {
	if p.eof() {
		return 0, p.errorf("trailing backslash")
	}
	c := p.advance()
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	default:
		return c, nil
	}
}

// parseClass parses a character class body up to and including the
// closing ']'. The opening '[' has already been consumed.
func (p *parser) parseClass() (regexast.Node, error) {
	class := &regexast.CharClass{}
	if !p.eof() && p.peek() == '^' {
		class.Negate = true
		p.advance()
	}
	first := true
	for {
		if p.eof() {
			return nil, p.errorf("unmatched '['")
		}
		if p.peek() == ']' && !first {
			p.advance()
			return class, nil
		}
		lo, err := p.classChar()
		if err != nil {
			return nil, err
		}
		first = false
		if !p.eof() && p.peek() == '-' && p.pos+1 < len(p.src) && p.src[p.pos+1] != ']' {
			p.advance() // '-'
			hi, err := p.classChar()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf("bad range %q-%q in character class", lo, hi)
			}
			class.Ranges = append(class.Ranges, regexast.ByteRange{Lo: lo, Hi: hi})
		} else {
			class.Ranges = append(class.Ranges, regexast.ByteRange{Lo: lo, Hi: lo})
		}
	}
}

func (p *parser) classChar() (byte, error) {
	if p.eof() {
		return 0, p.errorf("unmatched '['")
	}
	if p.peek() == '\\' {
		p.advance()
		return p.parseEscape()
	}
	return p.advance(), nil
}

// cloneNode deep-copies n so a single DefTable entry can be structurally
// inlined at multiple reference sites without aliasing.
func cloneNode(n regexast.Node) regexast.Node {
	switch t := n.(type) {
	case *regexast.CharClass:
		ranges := make([]regexast.ByteRange, len(t.Ranges))
		copy(ranges, t.Ranges)
		return &regexast.CharClass{Ranges: ranges, Negate: t.Negate}
	case *regexast.Concat:
		subs := make([]regexast.Node, len(t.Subs))
		for i, s := range t.Subs {
			subs[i] = cloneNode(s)
		}
		return &regexast.Concat{Subs: subs}
	case *regexast.Alternate:
		subs := make([]regexast.Node, len(t.Subs))
		for i, s := range t.Subs {
			subs[i] = cloneNode(s)
		}
		return &regexast.Alternate{Subs: subs}
	case *regexast.Star:
		return &regexast.Star{Sub: cloneNode(t.Sub)}
	case *regexast.Plus:
		return &regexast.Plus{Sub: cloneNode(t.Sub)}
	case *regexast.Quest:
		return &regexast.Quest{Sub: cloneNode(t.Sub)}
	case *regexast.Ref:
		panic(fmt.Sprintf("regexparse: unresolved Ref %q stored in DefTable", t.Name))
	default:
		panic(fmt.Sprintf("regexparse: unhandled node type %T", n))
	}
}
