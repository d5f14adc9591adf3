// Package reglexrt is the fixed runtime every generated lexer imports: the
// maximal-munch driver (checkpoint, lexeme, lookahead replay buffer) that
// generated matcher functions (package codegen's output) and generated
// per-parser reject dispatchers (package runtimetpl's output) call into.
//
// It is a line-for-line re-expression of original_source/reglex.c and
// original_source/lexer_template/template.c's reglex_next/reglex_accept/
// reglex_reject/reglex_parse state machine: a checkpoint tag, a lexeme
// string grown by Accept, and a lookahead buffer of bytes read past the
// last accept that is replayed (not re-read from the stream) after a
// reject. Unlike lexer_template.c's earlier circular char_cache, this
// uses the later flat growable-buffer design (see DESIGN.md), and unlike
// reglex.c's char_pos-only diagnostics, it tracks a full line:col per
// buffered byte so rewinding a checkpoint restores location exactly
// across newlines (spec.md §9's documented undo_char bug is not
// inherited).
package reglexrt

import (
	"bufio"
	"io"
)

// NoCheckpoint marks that no rule has accepted since the last token
// boundary.
const NoCheckpoint = -1

// StatusRunning is the internal sentinel for "not yet terminated"
// (spec.md §6 "running = -1 is internal").
const StatusRunning = -1

// StatusEOF and StatusError are the two terminal parse results
// (spec.md §4.4 "parse_result: eof_clean" / "error").
const (
	StatusEOF = iota
	StatusError
)

// Pos is a 1-based line:column input position.
type Pos struct {
	Line, Col int
}

// bufByte is one buffered input byte together with the position it was
// read at.
type bufByte struct {
	b   byte
	pos Pos
}

// MatchFunc is a generated per-parser matcher (package codegen's output):
// it drives rt through one parse_token call, calling rt.Accept and
// rt.Reject as the DFA dictates.
type MatchFunc func(rt *Runtime)

// RejectFunc is a generated per-parser reject dispatcher (package
// runtimetpl's output): given the checkpoint tag recorded by the last
// Accept (or NoCheckpoint), it runs the matching rule's user action and
// reports whether the parser should keep running.
type RejectFunc func(rt *Runtime, tag int) (status int, terminate bool)

// Runtime is the shared maximal-munch driver. One Runtime is created per
// input stream; every sub-lexer (parser) reads and writes the same
// lexeme/lookahead/location state (spec.md §4.4 "Shared-resource
// policy").
type Runtime struct {
	r   *bufio.Reader
	pos Pos

	lexeme    []byte
	lookahead []bufByte
	replayPtr int

	checkpointTag int
	checkpointPos Pos

	parser string
	// tokenParser is the parser whose matcher is handling the current
	// token; Reject dispatches through it, so a SwitchParser call made
	// during the token only affects the tokens after it.
	tokenParser string
	matchFns    map[string]MatchFunc
	rejectFns   map[string]RejectFunc

	status  int
	running bool

	filename string
}

// New constructs a Runtime reading from r, with matchFns/rejectFns keyed
// by parser name and defaultParser selecting the initial sub-lexer
// (spec.md §4.4 "Multi-parser support").
func New(r io.Reader, matchFns map[string]MatchFunc, rejectFns map[string]RejectFunc, defaultParser string) *Runtime {
	return &Runtime{
		r:             bufio.NewReader(r),
		pos:           Pos{Line: 1, Col: 0},
		checkpointTag: NoCheckpoint,
		parser:        defaultParser,
		tokenParser:   defaultParser,
		matchFns:      matchFns,
		rejectFns:     rejectFns,
		running:       true,
	}
}

// SetFilename sets the name reported by Filename, for diagnostics.
func (rt *Runtime) SetFilename(name string) { rt.filename = name }

// SwitchParser changes which sub-lexer handles subsequent tokens
// (spec.md §4.4: "Actions may invoke switch_parser to change which
// sub-lexer handles subsequent tokens"). It is a no-op if name names no
// known parser.
func (rt *Runtime) SwitchParser(name string) {
	if _, ok := rt.matchFns[name]; ok {
		rt.parser = name
	}
}

// NextByte reads the next input byte, serving it from the lookahead
// replay buffer first (reglex_next's "read_ahead_ptr > 0" branch) before
// reading fresh from the stream. Returns ok=false at EOF, which codegen's
// generated matchers treat as "no transition" (spec.md §4.4 step 2).
func (rt *Runtime) NextByte() (byte, bool) {
	if rt.replayPtr < len(rt.lookahead) {
		bb := rt.lookahead[rt.replayPtr]
		rt.replayPtr++
		rt.pos = bb.pos
		return bb.b, true
	}
	b, err := rt.r.ReadByte()
	if err != nil {
		return 0, false
	}
	rt.pos = advance(rt.pos, b)
	rt.lookahead = append(rt.lookahead, bufByte{b: b, pos: rt.pos})
	rt.replayPtr++
	return b, true
}

func advance(p Pos, b byte) Pos {
	if b == '\n' {
		return Pos{Line: p.Line + 1, Col: 0}
	}
	return Pos{Line: p.Line, Col: p.Col + 1}
}

// Accept records tag as the current checkpoint, folding every byte
// consumed since the previous checkpoint (the lookahead up to the replay
// cursor) into lexeme and dropping those bytes from the lookahead buffer;
// replayed bytes not yet consumed stay buffered for the following
// NextByte calls (spec.md §4.4 step 4 / reglex_accept).
func (rt *Runtime) Accept(tag int) {
	rt.checkpointTag = tag
	rt.checkpointPos = rt.pos
	for _, bb := range rt.lookahead[:rt.replayPtr] {
		rt.lexeme = append(rt.lexeme, bb.b)
	}
	rest := copy(rt.lookahead, rt.lookahead[rt.replayPtr:])
	rt.lookahead = rt.lookahead[:rest]
	rt.replayPtr = 0
}

// Reject runs when the current matcher state has no transition for the
// byte just read (or hit EOF): it dispatches the checkpointed rule's
// action (if any), then resets to that checkpoint — clearing lexeme,
// clearing the checkpoint tag, and rewinding the lookahead replay cursor
// to the buffer start so every byte read past the last accept is
// replayed, not re-read from the stream, on the next parse_token call
// (spec.md §4.4 step 5 / reglex_reject).
func (rt *Runtime) Reject() {
	tag := rt.checkpointTag
	fn, ok := rt.rejectFns[rt.tokenParser]
	if !ok {
		rt.running = false
		rt.status = StatusError
		return
	}
	status, terminate := fn(rt, tag)
	rt.pos = rt.checkpointPos
	rt.checkpointTag = NoCheckpoint
	rt.lexeme = rt.lexeme[:0]
	rt.replayPtr = 0
	if terminate {
		rt.running = false
		rt.status = status
	}
}

// Lexeme returns the bytes accepted for the token whose action is
// currently running (valid only from within a RejectFunc/user action;
// spec.md §6 "lexem() ... valid until the action returns").
func (rt *Runtime) Lexeme() []byte { return rt.lexeme }

// NoMoreInput reports whether this token attempt never managed to read a
// single byte, distinguishing a clean end-of-input from an unrecognized
// byte sequence (spec.md §4.4 steps 5b/5c). A non-empty lookahead means
// some real byte was read — whether freshly this attempt, or carried over
// as replay from a previous attempt's overshoot — that the matcher could
// not turn into a token, which is an input error, not EOF; checking
// replayPtr instead would be wrong, since it tracks len(lookahead) in
// lockstep after every ordinary (non-replay) read and so never reports
// "more input" once a single fresh byte has been consumed.
func (rt *Runtime) NoMoreInput() bool { return len(rt.lookahead) == 0 }

// Filename returns the name set by SetFilename, for location-tracking
// template variants (spec.md §4.4 "Optional location tracking").
func (rt *Runtime) Filename() string { return rt.filename }

// Line and Col report the current input position (1-based; Col is
// 0-based-advanced-to-first-byte, i.e. the column of the most recently
// read byte).
func (rt *Runtime) Line() int { return rt.pos.Line }
func (rt *Runtime) Col() int  { return rt.pos.Col }

// Parse runs parse_token (the active sub-lexer's matcher) until it
// terminates, returning the final status (spec.md §6 "parse_token() ->
// int ... returns a terminal status when done").
func (rt *Runtime) Parse() int {
	for rt.running {
		fn, ok := rt.matchFns[rt.parser]
		if !ok {
			return StatusError
		}
		rt.tokenParser = rt.parser
		fn(rt)
	}
	return rt.status
}
