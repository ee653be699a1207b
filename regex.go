// Package rpnregex compiles postfix regular expressions into a small
// instruction program and matches whole texts against it with a Pike VM.
//
// A pattern is written in reverse Polish notation over three operators:
//
//	.  concatenation   (binary)
//	|  alternation     (binary)
//	*  repetition      (unary, zero or more)
//
// Every other rune is a literal. The infix pattern (a|bc)* is written
// "abc.|*"; a(b|c)* is "abc|*.".
//
// Basic usage:
//
//	re, err := rpnregex.Compile("abc|*.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("abcb") // true
//	re.MatchString("abcd") // false
//
// Matching always covers the whole text and runs in O(m*n) time for a
// program of m instructions and a text of n runes.
package rpnregex

import (
	"errors"
	"strings"

	"github.com/coregx/rpnregex/meta"
	"github.com/coregx/rpnregex/nfa"
)

// Regex represents a compiled postfix regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := rpnregex.MustCompile("ab.")
//	if re.MatchString("ab") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a postfix pattern.
//
// Malformed patterns yield a *nfa.CompileError wrapping
// nfa.ErrMissingOperand or nfa.ErrUnbalancedExpression.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a postfix pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var greeting = rpnregex.MustCompile("hi.yo.|")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rpnregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := rpnregex.DefaultConfig()
//	config.EnablePrefilter = false // PikeVM on every text
//	re, err := rpnregex.CompileWithConfig("abc|*.", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Match reports whether all of b matches the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether all of s matches the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatchString(s)
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns the compiled program.
func (r *Regex) Program() *nfa.Program {
	return r.engine.Program()
}

// Strategy returns the execution strategy the engine selected.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// ErrNotExpressible is returned by QuoteLiteral for texts no postfix
// pattern can match literally.
var ErrNotExpressible = errors.New("rpnregex: text cannot be written as a literal pattern")

// QuoteLiteral returns the postfix pattern matching exactly s.
//
// The operator runes have no escape syntax and the empty text has no
// pattern, so both are rejected with ErrNotExpressible.
//
// Example:
//
//	p, _ := rpnregex.QuoteLiteral("hello") // "he.l.l.o."
//	rpnregex.MustCompile(p).MatchString("hello") // true
func QuoteLiteral(s string) (string, error) {
	if s == "" || strings.ContainsAny(s, string([]rune{nfa.OpConcat, nfa.OpAlternate, nfa.OpRepeat})) {
		return "", ErrNotExpressible
	}

	var b strings.Builder
	b.Grow(2 * len(s))
	n := 0
	for _, r := range s {
		b.WriteRune(r)
		if n > 0 {
			b.WriteRune(nfa.OpConcat)
		}
		n++
	}
	return b.String(), nil
}
