package runtimetpl

import (
	"strings"
	"testing"
)

func TestRenderSingleParser(t *testing.T) {
	d := Data{
		Parsers: []Parser{
			{
				Name:       "",
				MatchFunc:  "matchDefault",
				RejectFunc: "rejectDefault",
				Rules: []RuleAction{
					{Tag: 0, Action: "tokens = append(tokens, token{0, string(rt.Lexeme())})"},
					{Tag: 1, Action: "tokens = append(tokens, token{1, string(rt.Lexeme())})"},
				},
			},
		},
		Default:     "",
		EmitMain:    false,
		ProgramFunc: "NewProgram",
	}
	out, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"func rejectDefault(rt *reglexrt.Runtime, tag int) (int, bool) {",
		"case 0:",
		"case 1:",
		"tokens = append(tokens, token{0, string(rt.Lexeme())})",
		`func NewProgram(r io.Reader) *reglexrt.Runtime {`,
		`"": matchDefault,`,
		`"": rejectDefault,`,
		`reglexrt.New(r, matchFns, rejectFns, "")`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "func main()") {
		t.Errorf("EmitMain=false but output contains func main():\n%s", s)
	}
}

func TestRenderEmitMain(t *testing.T) {
	d := Data{
		Parsers:     []Parser{{Name: "", MatchFunc: "matchDefault", RejectFunc: "rejectDefault"}},
		Default:     "",
		EmitMain:    true,
		ProgramFunc: "NewProgram",
	}
	out, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "func main() {") {
		t.Errorf("EmitMain=true but output missing func main():\n%s", s)
	}
	if !strings.Contains(s, "os.Exit(rt.Parse())") {
		t.Errorf("output missing main body:\n%s", s)
	}
}

func TestRenderMultipleParsersSwitchesByName(t *testing.T) {
	d := Data{
		Parsers: []Parser{
			{Name: "code", MatchFunc: "matchCode", RejectFunc: "rejectCode"},
			{Name: "string", MatchFunc: "matchString", RejectFunc: "rejectString"},
		},
		Default:     "code",
		ProgramFunc: "NewProgram",
	}
	out, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`"code": matchCode,`,
		`"string": matchString,`,
		`reglexrt.New(r, matchFns, rejectFns, "code")`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}
