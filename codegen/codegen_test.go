package codegen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/coregx/rpnregex/nfa"
)

func generate(t *testing.T, config Config) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Generate(config, &buf); err != nil {
		t.Fatalf("Generate(%+v): %v", config, err)
	}
	return buf.String()
}

func TestGenerate_Declarations(t *testing.T) {
	src := generate(t, Config{Package: "words", Name: "Greeting", Pattern: "abc|*."})

	for _, want := range []string{
		"// Code generated by rpnregex. DO NOT EDIT.",
		"package words",
		`"github.com/coregx/rpnregex/nfa"`,
		"var Greeting = nfa.MustNewProgram(",
		"nfa.Literal('a')",
		"nfa.Split(6)",
		"nfa.Jump(-5)",
		"nfa.Match()",
		"var GreetingVM = nfa.NewPikeVM(Greeting)",
		"func GreetingMatchString(s string) bool",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}
}

// The embedded program must be instruction-for-instruction the compiled one.
func TestGenerate_ProgramRoundTrip(t *testing.T) {
	patterns := []string{"a", "ab|", "a*", "abc|*.", "a**", "ab.cd.|*e.", "é'.", "\\\"|"}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			src := generate(t, Config{Package: "gen", Name: "P", Pattern: pattern})

			file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
			if err != nil {
				t.Fatalf("generated code does not parse: %v\n%s", err, src)
			}
			got := embeddedProgram(t, file)
			want, err := nfa.Compile(pattern)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Errorf("embedded program:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Generate(Config{Package: "gen", Name: "P", Pattern: "ab"}, &buf)
	if !errors.Is(err, nfa.ErrUnbalancedExpression) {
		t.Errorf("error = %v, want ErrUnbalancedExpression", err)
	}
	var ce *nfa.CompileError
	if !errors.As(err, &ce) {
		t.Errorf("error %T is not *nfa.CompileError", err)
	}

	tests := []Config{
		{Package: "", Name: "P", Pattern: "a"},
		{Package: "gen", Name: "", Pattern: "a"},
		{Package: "gen", Name: "1st", Pattern: "a"},
		{Package: "my-pkg", Name: "P", Pattern: "a"},
	}
	for _, config := range tests {
		if err := Generate(config, &buf); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Generate(%+v) error = %v, want ErrInvalidConfig", config, err)
		}
	}
}

// embeddedProgram rebuilds the program from the MustNewProgram call.
func embeddedProgram(t *testing.T, file *ast.File) *nfa.Program {
	t.Helper()
	var lit *ast.CompositeLit
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || selName(call.Fun) != "MustNewProgram" || len(call.Args) != 1 {
			return true
		}
		lit, _ = call.Args[0].(*ast.CompositeLit)
		return false
	})
	if lit == nil {
		t.Fatal("no MustNewProgram call in generated code")
	}

	insts := make([]nfa.Inst, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		call, ok := elt.(*ast.CallExpr)
		if !ok {
			t.Fatalf("element %T is not a call", elt)
		}
		switch selName(call.Fun) {
		case "Literal":
			s, err := strconv.Unquote(call.Args[0].(*ast.BasicLit).Value)
			if err != nil {
				t.Fatal(err)
			}
			insts = append(insts, nfa.Literal([]rune(s)[0]))
		case "Split":
			insts = append(insts, nfa.Split(intArg(t, call.Args[0])))
		case "Jump":
			insts = append(insts, nfa.Jump(intArg(t, call.Args[0])))
		case "Match":
			insts = append(insts, nfa.Match())
		default:
			t.Fatalf("unexpected constructor %q", selName(call.Fun))
		}
	}
	prog, err := nfa.NewProgram(insts)
	if err != nil {
		t.Fatalf("embedded program is invalid: %v", err)
	}
	return prog
}

func selName(e ast.Expr) string {
	if sel, ok := e.(*ast.SelectorExpr); ok {
		return sel.Sel.Name
	}
	return ""
}

func intArg(t *testing.T, e ast.Expr) int {
	t.Helper()
	sign := 1
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == token.SUB {
		sign = -1
		e = u.X
	}
	n, err := strconv.Atoi(e.(*ast.BasicLit).Value)
	if err != nil {
		t.Fatal(err)
	}
	return sign * n
}
