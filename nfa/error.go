// Package nfa builds a Thompson NFA from a tagged list of regexast.Node
// rules (spec.md §3 "NFA", §4.2 "NFA construction") following the
// teacher's (coregx/coregex) nfa package: states live in a single
// growable slice rather than a pointer graph, built incrementally through
// a low-level Builder API and finalized with Build.
package nfa

import "fmt"

// BuildError represents an error during NFA construction via the Builder
// or Build, following the teacher's nfa.BuildError.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("nfa build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa build error: %s", e.Message)
}
