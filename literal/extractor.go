package literal

import (
	"unicode/utf8"

	"github.com/coregx/rpnregex/nfa"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents blowup from cross products like (a|b).(c|d).(e|f)...
//   - MaxLiteralLen: prevents extracting very long literals
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in any extracted Seq.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Info is what extraction learned about a pattern. Any field may be nil.
type Info struct {
	// Exact is the whole language of the pattern: a text matches if and only
	// if it equals one of these literals. Only set for finite languages
	// within the configured limits. All literals are Complete.
	Exact *Seq

	// Prefixes holds literals one of which starts every matching text.
	Prefixes *Seq

	// Factors holds literals one of which occurs in every matching text.
	Factors *Seq
}

// Extractor extracts literal sequences from postfix patterns.
//
// It walks the pattern with the same operand stack discipline as
// nfa.Compiler, computing an Info for every operand:
//
//	literal c      exact={c}           prefixes={c}              factors={c}
//	L S |          exact=L∪S           prefixes=L∪S              factors=L∪S
//	F *            nothing (F* matches the empty text)
//	F S .          exact=F×S           prefixes=F.exact×S.prefix  factors=best of F, S, prefixes
//
// where a union or product with an unknown side, or over the limits, is
// unknown.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new literal extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = DefaultConfig().MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = DefaultConfig().MaxLiteralLen
	}
	return &Extractor{config: config}
}

// Extract analyzes pattern. It fails with nfa.ErrMissingOperand or
// nfa.ErrUnbalancedExpression on the same patterns nfa.Compile rejects.
func (e *Extractor) Extract(pattern string) (Info, error) {
	stack := make([]Info, 0, len(pattern)/2+1)
	pop := func() Info {
		info := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return info
	}

	for _, r := range pattern {
		switch r {
		case nfa.OpAlternate:
			if len(stack) < 2 {
				return Info{}, nfa.ErrMissingOperand
			}
			s := pop()
			l := pop()
			stack = append(stack, e.alternate(l, s))
		case nfa.OpRepeat:
			if len(stack) < 1 {
				return Info{}, nfa.ErrMissingOperand
			}
			pop()
			stack = append(stack, Info{})
		case nfa.OpConcat:
			if len(stack) < 2 {
				return Info{}, nfa.ErrMissingOperand
			}
			s := pop()
			f := pop()
			stack = append(stack, e.concat(f, s))
		default:
			stack = append(stack, e.literal(r))
		}
	}

	if len(stack) != 1 {
		return Info{}, nfa.ErrUnbalancedExpression
	}
	return stack[0], nil
}

func (e *Extractor) literal(r rune) Info {
	// U+FFFD also matches every invalid UTF-8 sequence in the text, so it
	// has no single byte representation.
	if r == utf8.RuneError {
		return Info{}
	}
	b := utf8.AppendRune(nil, r)
	return Info{
		Exact:    NewSeq(NewLiteral(b, true)),
		Prefixes: NewSeq(NewLiteral(b, false)),
		Factors:  NewSeq(NewLiteral(b, false)),
	}
}

func (e *Extractor) alternate(l, s Info) Info {
	limit := e.config.MaxLiterals
	out := Info{
		Exact:    union(l.Exact, s.Exact, limit),
		Prefixes: union(l.Prefixes, s.Prefixes, limit),
		Factors:  union(l.Factors, s.Factors, limit),
	}
	if out.Prefixes != nil {
		out.Prefixes.Minimize()
	}
	if out.Factors != nil {
		out.Factors.MinimizeFactors()
	}
	return out
}

func (e *Extractor) concat(f, s Info) Info {
	maxLits, maxLen := e.config.MaxLiterals, e.config.MaxLiteralLen

	out := Info{Exact: cross(f.Exact, s.Exact, maxLits, maxLen)}

	switch {
	case f.Exact == nil:
		out.Prefixes = f.Prefixes
	case s.Prefixes != nil:
		out.Prefixes = incomplete(cross(f.Exact, s.Prefixes, maxLits, maxLen))
	}
	if out.Prefixes == nil && f.Exact != nil {
		out.Prefixes = incomplete(f.Exact)
	}

	if out.Exact != nil {
		out.Factors = incomplete(out.Exact)
	} else {
		out.Factors = better(better(f.Factors, s.Factors), out.Prefixes)
	}
	return out
}

// better picks the more selective of two factor sets: the one whose
// shortest literal is longer, then the smaller one.
func better(a, b *Seq) *Seq {
	switch {
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	case a.MinLen() != b.MinLen():
		if a.MinLen() > b.MinLen() {
			return a
		}
		return b
	case a.Len() <= b.Len():
		return a
	default:
		return b
	}
}
