// Package runtimetpl renders the per-spec glue that binds package
// codegen's generated matcher functions to the fixed reglexrt.Runtime:
// one reject-dispatch function per parser (a switch on checkpoint tag
// that runs the matching rule's user action, grounded on reglex_reject's
// "switch (reglex_checkpoint_tag) { case N: <action>; ... }" shape in
// original_source/lexer_template/template.c), the matcher/reject
// registration tables keyed by parser name (spec.md §4.4 "Multi-parser
// support"), and an optional main() stub (spec.md §4.5 "emit_main").
//
// text/template is used in place of the original's "#REGLEX_*" sentinel
// string substitution — the stdlib's purpose-built tool for single-file
// hole-filling, not a place any corpus library improves on (see
// DESIGN.md).
package runtimetpl

import (
	"bytes"
	"text/template"
)

// RuleAction is one rule's tag and verbatim user action source, carried
// from specfile.Rule.Action into the reject dispatcher's switch.
type RuleAction struct {
	Tag    int
	Action string
}

// Parser is one parser spec's generated-code identifiers and rule
// actions.
type Parser struct {
	// Name is the spec-level parser name ("" for the default).
	Name string
	// MatchFunc and RejectFunc are the Go identifiers of the generated
	// matcher (package codegen's Emit output) and this package's own
	// generated reject dispatcher.
	MatchFunc, RejectFunc string
	Rules                 []RuleAction
}

// Data parameterizes the rendered glue.
type Data struct {
	Parsers []Parser
	// Default is the Name of the default parser, used as the initial
	// key into the registration tables.
	Default string
	// EmitMain requests a func main() wiring os.Stdin into the runtime
	// (spec.md §4.5).
	EmitMain bool
	// ProgramFunc is the Go identifier of the constructor this package
	// emits, e.g. "NewProgram".
	ProgramFunc string
}

// Render renders d against the fixed glue template.
func Render(d Data) ([]byte, error) {
	tmpl, err := template.New("runtimetpl").Parse(glueTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const glueTemplate = `
{{range .Parsers}}
// {{.RejectFunc}} dispatches the action for whichever rule's checkpoint
// is active when parser {{printf "%q" .Name}} has no further transition,
// then reports how reglexrt.Runtime.Reject should resume (spec.md §4.4
// step 5).
func {{.RejectFunc}}(rt *reglexrt.Runtime, tag int) (int, bool) {
	switch tag {
{{range .Rules}}	case {{.Tag}}:
		{{.Action}}
		return reglexrt.StatusRunning, false
{{end}}	default:
		if rt.NoMoreInput() {
			return reglexrt.StatusEOF, true
		}
		return reglexrt.StatusError, true
	}
}
{{end}}

// {{.ProgramFunc}} constructs a Runtime over r with every generated
// parser registered and {{printf "%q" .Default}} selected as the initial
// sub-lexer (spec.md §4.4 "Multi-parser support").
func {{.ProgramFunc}}(r io.Reader) *reglexrt.Runtime {
	matchFns := map[string]reglexrt.MatchFunc{
{{range .Parsers}}		{{printf "%q" .Name}}: {{.MatchFunc}},
{{end}}	}
	rejectFns := map[string]reglexrt.RejectFunc{
{{range .Parsers}}		{{printf "%q" .Name}}: {{.RejectFunc}},
{{end}}	}
	return reglexrt.New(r, matchFns, rejectFns, {{printf "%q" .Default}})
}
{{if .EmitMain}}
func main() {
	rt := {{.ProgramFunc}}(os.Stdin)
	os.Exit(rt.Parse())
}
{{end}}
`
