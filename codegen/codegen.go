// Package codegen writes Go source files that embed a precompiled program,
// so a fixed pattern costs nothing to compile at run time.
//
// For Config{Package: "words", Name: "Greeting", Pattern: "hi.yo.|"} the
// generated file declares:
//
//	var Greeting = nfa.MustNewProgram([]nfa.Inst{...})
//	var GreetingVM = nfa.NewPikeVM(Greeting)
//	func GreetingMatchString(s string) bool
package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/rpnregex/nfa"
)

const nfaPath = "github.com/coregx/rpnregex/nfa"

// Config holds the configuration for code generation.
type Config struct {
	Package string // package clause of the generated file
	Name    string // exported identifier prefix
	Pattern string // postfix pattern to compile
}

// ErrInvalidConfig is returned when Package or Name is not a Go identifier.
var ErrInvalidConfig = errors.New("codegen: invalid config")

// Generate compiles config.Pattern and writes the generated Go file to w.
// Compile errors are returned unchanged.
func Generate(config Config, w io.Writer) error {
	if !token.IsIdentifier(config.Package) {
		return fmt.Errorf("%w: package %q is not an identifier", ErrInvalidConfig, config.Package)
	}
	if !token.IsIdentifier(config.Name) {
		return fmt.Errorf("%w: name %q is not an identifier", ErrInvalidConfig, config.Name)
	}

	prog, err := nfa.Compile(config.Pattern)
	if err != nil {
		return err
	}

	f := jen.NewFile(config.Package)
	f.ImportName(nfaPath, "nfa")
	f.HeaderComment("Code generated by rpnregex. DO NOT EDIT.")

	vmName := config.Name + "VM"

	f.Commentf("%s is the compiled program for the postfix pattern %q.", config.Name, config.Pattern)
	f.Var().Id(config.Name).Op("=").Qual(nfaPath, "MustNewProgram").Call(
		jen.Index().Qual(nfaPath, "Inst").ValuesFunc(func(g *jen.Group) {
			for _, inst := range prog.Insts() {
				g.Add(instCode(inst))
			}
		}),
	)
	f.Line()

	f.Commentf("%s matches texts against %s.", vmName, config.Name)
	f.Var().Id(vmName).Op("=").Qual(nfaPath, "NewPikeVM").Call(jen.Id(config.Name))
	f.Line()

	f.Commentf("%sMatchString reports whether all of s matches %q.", config.Name, config.Pattern)
	f.Func().Id(config.Name+"MatchString").Params(jen.Id("s").String()).Bool().Block(
		jen.Return(jen.Id(vmName).Dot("IsMatchString").Call(jen.Id("s"))),
	)

	return f.Render(w)
}

// instCode renders one instruction as a constructor call, one per line.
func instCode(inst nfa.Inst) jen.Code {
	var call *jen.Statement
	switch inst.Kind() {
	case nfa.InstLiteral:
		call = jen.Qual(nfaPath, "Literal").Call(jen.LitRune(inst.Rune()))
	case nfa.InstSplit:
		call = jen.Qual(nfaPath, "Split").Call(jen.Lit(inst.Offset()))
	case nfa.InstJump:
		call = jen.Qual(nfaPath, "Jump").Call(jen.Lit(inst.Offset()))
	default:
		call = jen.Qual(nfaPath, "Match").Call()
	}
	return jen.Line().Add(call)
}
