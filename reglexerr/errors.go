// Package reglexerr provides the sentinel errors and the located and
// unlocated error types used across the reglex pipeline: the spec reader,
// DFA construction, the driver and the CLI. The regex parser reports its
// own regexparse.ParseError, which the spec reader converts to a Located.
package reglexerr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Stage-specific packages wrap these with *Located or
// *Error to attach position and message detail; callers use errors.Is
// against these sentinels to classify a failure.
var (
	// ErrUnresolvedRef indicates a regex referenced a name with no
	// matching regular definition at the point it was parsed.
	ErrUnresolvedRef = errors.New("unresolved named reference")

	// ErrOccursCheck indicates a regular definition refers to itself,
	// directly or transitively.
	ErrOccursCheck = errors.New("definition cycle")

	// ErrEmptyMatch indicates a rule's automaton accepts the empty
	// string, which the maximal-munch runtime cannot drive without
	// spinning forever.
	ErrEmptyMatch = errors.New("rule matches the empty string")

	// ErrUnknownInstruction indicates an instructions-section identifier
	// outside the closed set the reader understands.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrUnterminatedAction indicates an action body or host-code segment
	// ran into EOF before its closing delimiter.
	ErrUnterminatedAction = errors.New("unterminated action")

	// ErrMalformedName indicates a name segment did not match
	// [A-Za-z0-9_]+.
	ErrMalformedName = errors.New("malformed name")

	// ErrMalformedRegex indicates a regex token failed to parse.
	ErrMalformedRegex = errors.New("malformed regex")

	// ErrMalformedRule indicates a rules-segment construct was neither a
	// valid parser marker nor a valid regex %{action%} rule.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrNoDefaultParser indicates the driver found no parser spec to
	// emit as the default sub-lexer — an internal invariant violation.
	ErrNoDefaultParser = errors.New("no default parser")
)

// Location is a 1-based line:column position in a spec file, used to
// render "line:col: message" diagnostics per spec.md §4.1/§7.
type Location struct {
	Line, Col int
}

// String renders the location as "line:col".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Located wraps a sentinel error with the position it occurred at and
// optional extra detail, matching the *CompileError / *BuildError pattern
// used throughout the teacher's nfa and meta packages.
type Located struct {
	Pos    Location
	Detail string
	Err    error
}

// Error implements the error interface as "line:col: detail: err" (detail
// is omitted when empty).
func (e *Located) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Pos, e.Detail, e.Err)
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *Located) Unwrap() error {
	return e.Err
}

// At constructs a Located error at pos wrapping err with detail.
func At(pos Location, err error, detail string) *Located {
	return &Located{Pos: pos, Detail: detail, Err: err}
}

// Atf is At with a formatted detail string.
func Atf(pos Location, err error, format string, args ...any) *Located {
	return At(pos, err, fmt.Sprintf(format, args...))
}

// Unlocated wraps a sentinel error with context but no file position, for
// I/O failures (unopenable input, unwritable output) per spec.md §7.
type Unlocated struct {
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Unlocated) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Detail, e.Err)
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *Unlocated) Unwrap() error {
	return e.Err
}

// Wrap constructs an Unlocated error wrapping err with detail.
func Wrap(err error, detail string) *Unlocated {
	return &Unlocated{Detail: detail, Err: err}
}
