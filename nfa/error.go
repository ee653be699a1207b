// Package nfa provides a Thompson NFA for postfix regular expressions.
//
// A postfix pattern such as "abc|*." (a(b|c)* in infix form) is compiled into
// a flat Program of Literal, Split, Jump and Match instructions, and a PikeVM
// decides whether a whole text is matched by stepping a deduplicated set of
// threads over the input one rune at a time. Matching time is bounded by
// len(text) * len(Program); there is no backtracking.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrMalformedPattern is matched by every error reporting an ill-formed
	// postfix pattern. Use errors.Is against ErrMissingOperand or
	// ErrUnbalancedExpression to tell the two kinds apart.
	ErrMalformedPattern = errors.New("malformed pattern")

	// ErrMissingOperand indicates an operator was applied with too few
	// operands on the stack
	ErrMissingOperand = errors.New("missing operand")

	// ErrUnbalancedExpression indicates the operand stack did not reduce to
	// exactly one expression
	ErrUnbalancedExpression = errors.New("unbalanced expression")

	// ErrTooComplex indicates the compiled program exceeds the configured size
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidProgram indicates a Program violates its structural invariants
	ErrInvalidProgram = errors.New("invalid program")
)

// CompileError wraps compilation errors with additional context.
type CompileError struct {
	Pattern string
	Pos     int  // byte offset of the offending rune, or len(Pattern) for end-of-pattern errors
	Op      rune // operator being applied, or 0
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Op != 0 {
		return fmt.Sprintf("compile %q: %v for %q at offset %d", e.Pattern, e.Err, e.Op, e.Pos)
	}
	return fmt.Sprintf("compile %q: %v at offset %d", e.Pattern, e.Err, e.Pos)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedPattern for missing-operand and unbalanced errors.
func (e *CompileError) Is(target error) bool {
	if target != ErrMalformedPattern {
		return false
	}
	return errors.Is(e.Err, ErrMissingOperand) || errors.Is(e.Err, ErrUnbalancedExpression)
}

// ProgramError reports a Program invariant violation.
type ProgramError struct {
	Index   int // offending instruction, or -1 for whole-program problems
	Message string
}

// Error implements the error interface
func (e *ProgramError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid program at instruction %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("invalid program: %s", e.Message)
}

// Unwrap returns ErrInvalidProgram
func (e *ProgramError) Unwrap() error {
	return ErrInvalidProgram
}
