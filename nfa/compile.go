package nfa

import (
	"github.com/rs/zerolog"
)

// Reserved operator runes of the postfix syntax. They have no escape form and
// can never be matched as literals.
const (
	OpConcat    = '.'
	OpAlternate = '|'
	OpRepeat    = '*'
)

// CompilerConfig configures postfix compilation
type CompilerConfig struct {
	// MaxProgramSize limits the number of instructions in a compiled Program,
	// including the final Match. Zero means no limit beyond what 32-bit
	// offsets can address.
	// Default: 1 << 20
	MaxProgramSize int

	// Logger receives debug events about finished compiles.
	// Default: zerolog.Nop()
	Logger zerolog.Logger
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxProgramSize: 1 << 20,
		Logger:         zerolog.Nop(),
	}
}

// Compiler compiles postfix patterns into Programs.
// A Compiler holds no per-compile state and may be used concurrently.
type Compiler struct {
	config CompilerConfig
}

// NewCompiler creates a new compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxProgramSize <= 0 || config.MaxProgramSize > maxProgramLen {
		config.MaxProgramSize = maxProgramLen
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Program, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// Compile compiles a postfix pattern into a Program.
//
// Every rune other than '.', '|' and '*' is a literal operand. The operators
// consume operands from the stack:
//
//	a b |   alternation    a|b
//	a *     repetition     a*
//	a b .   concatenation  ab
//
// So "abc|*." is a(b|c)* in infix form.
//
// On failure the returned error is a *CompileError matching
// ErrMalformedPattern (with ErrMissingOperand or ErrUnbalancedExpression) or
// ErrTooComplex, and no Program is returned.
func (c *Compiler) Compile(pattern string) (*Program, error) {
	b := NewBuilderWithCapacity(len(pattern)/2 + 1)

	for pos, r := range pattern {
		var err error
		switch r {
		case OpAlternate:
			err = b.Alternate()
		case OpRepeat:
			err = b.Repeat()
		case OpConcat:
			err = b.Concat()
		default:
			b.PushLiteral(r)
			continue
		}
		if err != nil {
			return nil, &CompileError{Pattern: pattern, Pos: pos, Op: r, Err: err}
		}
		if b.topLen()+1 > c.config.MaxProgramSize {
			return nil, &CompileError{Pattern: pattern, Pos: pos, Op: r, Err: ErrTooComplex}
		}
	}

	prog, err := b.Build()
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Pos: len(pattern), Err: err}
	}
	if prog.Len() > c.config.MaxProgramSize {
		return nil, &CompileError{Pattern: pattern, Pos: len(pattern), Err: ErrTooComplex}
	}

	c.config.Logger.Debug().
		Str("pattern", pattern).
		Int("instructions", prog.Len()).
		Msg("compiled postfix pattern")

	return prog, nil
}
