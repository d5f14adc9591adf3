package specfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/reglex-gen/reglex/regexast"
	"github.com/reglex-gen/reglex/reglexerr"
)

func TestReadBasicTwoRuleSpec(t *testing.T) {
	src := "prologue host\n%%\n%%\n%%\n[0-9]+ %{ tag=digits %} [a-z]+ %{ tag=letters %}\n%%\nepilogue host\n"
	spec, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Contains(spec.PrologueHost, []byte("prologue host")) {
		t.Errorf("PrologueHost = %q", spec.PrologueHost)
	}
	if !bytes.Contains(spec.EpilogueHost, []byte("epilogue host")) {
		t.Errorf("EpilogueHost = %q", spec.EpilogueHost)
	}
	if len(spec.Parsers) != 1 {
		t.Fatalf("len(Parsers) = %d, want 1", len(spec.Parsers))
	}
	p := spec.Parsers[0]
	if !p.IsDefault {
		t.Error("sole parser should be default")
	}
	if len(p.Rules) != 2 {
		t.Fatalf("len(Rules) = %d, want 2", len(p.Rules))
	}
	if p.Rules[0].Tag != 0 || p.Rules[1].Tag != 1 {
		t.Errorf("tags = %d, %d, want 0, 1", p.Rules[0].Tag, p.Rules[1].Tag)
	}
	if !bytes.Contains(p.Rules[0].Action, []byte("tag=digits")) {
		t.Errorf("action 0 = %q", p.Rules[0].Action)
	}
}

func TestReadHostCodeEscaping(t *testing.T) {
	// A lone '%' not immediately followed by another '%' is emitted
	// literally; only an unescaped "%%" pair closes the segment.
	src := "100% done\n%%\n%%\n%%\na %{x%}\n%%\n"
	spec, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := "100% done\n"
	if string(spec.PrologueHost) != want {
		t.Errorf("PrologueHost = %q, want %q", spec.PrologueHost, want)
	}
}

func TestReadInstructions(t *testing.T) {
	src := "%%\nemit_main\n%%\n%%\na %{x%}\n%%\n"
	spec, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !spec.EmitMain {
		t.Error("EmitMain = false, want true")
	}
}

func TestReadUnknownInstructionFails(t *testing.T) {
	src := "%%\nbogus_instruction\n%%\n%%\na %{x%}\n%%\n"
	_, err := Read([]byte(src))
	if !errors.Is(err, reglexerr.ErrUnknownInstruction) {
		t.Fatalf("err = %v, want ErrUnknownInstruction", err)
	}
}

func TestReadDefinitionShadowing(t *testing.T) {
	src := "%%\n%%\nLETTER [a-z] ID LETTER+ LETTER [A-Z] WORD LETTER+\n%%\nID %{id%} WORD %{word%}\n%%\n"
	spec, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	p := spec.Parsers[0]
	// ID was resolved against the first LETTER ([a-z]); WORD against the
	// redefinition ([A-Z]). Confirm by rendering both ASTs and checking
	// they differ in their leaf ranges.
	idStr := regexast.String(p.Rules[0].Pattern)
	wordStr := regexast.String(p.Rules[1].Pattern)
	if idStr == wordStr {
		t.Errorf("ID and WORD rules parsed identically (%s); shadowing did not apply", idStr)
	}
}

func TestReadEmptyMatchRuleRejected(t *testing.T) {
	src := "%%\n%%\n%%\na* %{x%}\n%%\n"
	_, err := Read([]byte(src))
	if !errors.Is(err, reglexerr.ErrEmptyMatch) {
		t.Fatalf("err = %v, want ErrEmptyMatch", err)
	}
}

func TestReadNamedSubLexers(t *testing.T) {
	src := "%%\n%%\n%%\n%{code%}\n\\\" %{switch%} %{string%}\nhi %{greet%}\n%%\n"
	spec, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(spec.Parsers) != 2 {
		t.Fatalf("len(Parsers) = %d, want 2", len(spec.Parsers))
	}
	if spec.Parsers[0].Name != "code" || !spec.Parsers[0].IsDefault {
		t.Errorf("first parser = %+v, want default %q", spec.Parsers[0], "code")
	}
	if spec.Parsers[1].Name != "string" {
		t.Errorf("second parser name = %q, want string", spec.Parsers[1].Name)
	}
}

func TestReadUnterminatedActionFails(t *testing.T) {
	src := "%%\n%%\n%%\na %{unterminated\n%%\n"
	_, err := Read([]byte(src))
	if !errors.Is(err, reglexerr.ErrUnterminatedAction) {
		t.Fatalf("err = %v, want ErrUnterminatedAction", err)
	}
}

func TestReadMalformedRegexLocated(t *testing.T) {
	src := "%%\n%%\n%%\n[a-z %{x%}\n%%\n"
	_, err := Read([]byte(src))
	var loc *reglexerr.Located
	if !errors.As(err, &loc) {
		t.Fatalf("err = %v (%T), want *reglexerr.Located", err, err)
	}
	if !errors.Is(err, reglexerr.ErrMalformedRegex) {
		t.Errorf("err = %v, want ErrMalformedRegex", err)
	}
}
