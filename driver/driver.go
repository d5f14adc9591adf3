// Package driver sequences the whole pipeline (spec.md §5 C1-C9): read a
// spec file with specfile, build and minimize a DFA per parser spec with
// nfa/dfa, emit each parser's matcher with codegen, render the
// reglexrt-binding glue with runtimetpl, and stitch the result together
// with the spec's host-code prologue/epilogue into one generated Go
// source file.
package driver

import (
	"bytes"
	"fmt"

	"github.com/reglex-gen/reglex/codegen"
	"github.com/reglex-gen/reglex/dfa"
	"github.com/reglex-gen/reglex/nfa"
	"github.com/reglex-gen/reglex/reglexerr"
	"github.com/reglex-gen/reglex/runtimetpl"
	"github.com/reglex-gen/reglex/specfile"
)

// Options controls code generation, following the Config/DefaultConfig/
// Validate shape of the teacher's meta.Config (meta/config.go).
type Options struct {
	// RuntimeImportPath is the import path of the reglexrt package the
	// generated file binds its matchers to.
	// Default: "github.com/reglex-gen/reglex/reglexrt"
	RuntimeImportPath string

	// ProgramFunc names the constructor runtimetpl emits, e.g.
	// "NewProgram(r io.Reader) *reglexrt.Runtime".
	// Default: "NewProgram"
	ProgramFunc string
}

// DefaultOptions returns the default code-generation options.
func DefaultOptions() Options {
	return Options{
		RuntimeImportPath: "github.com/reglex-gen/reglex/reglexrt",
		ProgramFunc:       "NewProgram",
	}
}

// Validate checks that Options is usable.
func (o Options) Validate() error {
	if o.RuntimeImportPath == "" {
		return &OptionsError{Field: "RuntimeImportPath", Message: "must not be empty"}
	}
	if o.ProgramFunc == "" {
		return &OptionsError{Field: "ProgramFunc", Message: "must not be empty"}
	}
	return nil
}

// OptionsError reports an invalid Options field, mirroring the teacher's
// meta.ConfigError.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("driver: invalid option %s: %s", e.Field, e.Message)
}

// Generate runs the full pipeline over src and returns the generated Go
// source file's bytes.
func Generate(src []byte, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	spec, err := specfile.Read(src)
	if err != nil {
		return nil, err
	}

	var defaultName string
	sawDefault := false
	for _, p := range spec.Parsers {
		if p.IsDefault {
			defaultName = p.Name
			sawDefault = true
		}
	}
	if !sawDefault {
		return nil, reglexerr.ErrNoDefaultParser
	}

	var matchers bytes.Buffer
	tplData := runtimetpl.Data{
		Default:     defaultName,
		EmitMain:    spec.EmitMain,
		ProgramFunc: opts.ProgramFunc,
	}

	for _, p := range spec.Parsers {
		funcName := codegen.FuncName(p.Name)

		var rules []nfa.Rule
		for _, r := range p.Rules {
			rules = append(rules, nfa.Rule{Tag: r.Tag, Pattern: r.Pattern})
		}
		n, err := nfa.Build(rules)
		if err != nil {
			return nil, err
		}
		d, err := dfa.Determinize(n)
		if err != nil {
			return nil, wrapParserErr(p.Name, err)
		}
		d, err = dfa.Minimize(d)
		if err != nil {
			return nil, wrapParserErr(p.Name, err)
		}

		if err := codegen.Emit(&matchers, funcName, d); err != nil {
			return nil, err
		}

		rejectName := "reject" + exportSuffix(p.Name)
		var actions []runtimetpl.RuleAction
		for _, r := range p.Rules {
			actions = append(actions, runtimetpl.RuleAction{Tag: r.Tag, Action: string(r.Action)})
		}
		tplData.Parsers = append(tplData.Parsers, runtimetpl.Parser{
			Name:       p.Name,
			MatchFunc:  funcName,
			RejectFunc: rejectName,
			Rules:      actions,
		})
	}

	glue, err := runtimetpl.Render(tplData)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(spec.PrologueHost)
	out.WriteString("\n\nimport (\n\t\"io\"\n")
	if spec.EmitMain {
		out.WriteString("\t\"os\"\n")
	}
	fmt.Fprintf(&out, "\t\"%s\"\n)\n\n", opts.RuntimeImportPath)
	out.Write(matchers.Bytes())
	out.Write(glue)
	out.Write(spec.EpilogueHost)

	return out.Bytes(), nil
}

func wrapParserErr(parserName string, err error) error {
	if parserName == "" {
		return err
	}
	return fmt.Errorf("parser %q: %w", parserName, err)
}

// exportSuffix mirrors codegen.FuncName's capitalization without its
// "match" prefix, so reject<Suffix> is distinguishable from match<Suffix>
// while still reading as the counterpart of the same parser.
func exportSuffix(parserName string) string {
	name := codegen.FuncName(parserName)
	return name[len("match"):]
}
