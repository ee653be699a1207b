// Package prefilter provides fast rejection of texts that cannot match a
// postfix pattern, using literals extracted by package literal.
//
// A prefilter never accepts on its own: MayMatch returning true only means the
// PikeVM still has to decide. Returning false means no string of the
// pattern's language can equal the text, so the PikeVM is skipped.
//
// Two checks are available, selected by Build from the extracted literals:
//   - PrefixPrefilter: the text must start with one of the prefix literals
//   - FactorPrefilter: the text must contain one of the factor literals,
//     searched with an Aho-Corasick automaton
//
// When no literal applies, FromProgram derives a FirstBytePrefilter from the
// compiled program itself.
//
// Example usage:
//
//	info, _ := literal.New(literal.DefaultConfig()).Extract("ab.c*.de..")
//	pf := prefilter.Build(info, 1)
//	pf.MayMatch([]byte("abccde")) // true: run the PikeVM
//	pf.MayMatch([]byte("xbccde")) // false: cannot match
package prefilter

import (
	"strings"

	"github.com/coregx/rpnregex/literal"
)

// Prefilter rejects texts that cannot match.
type Prefilter interface {
	// MayMatch returns false only if haystack definitely cannot match.
	MayMatch(haystack []byte) bool

	// String describes the prefilter for logging.
	String() string
}

// Build selects prefilters for the extracted literals and returns nil if none
// applies. Factor literals shorter than minLen are considered too common to
// be worth an automaton scan. A factor set that is already the prefix set
// adds nothing over the prefix check and is skipped.
func Build(info literal.Info, minLen int) Prefilter {
	var chain Chain

	if !info.Prefixes.IsEmpty() && info.Prefixes.MinLen() > 0 {
		chain = append(chain, NewPrefixPrefilter(info.Prefixes))
	}

	factors := info.Factors
	if !factors.IsEmpty() && factors.MinLen() >= minLen && !sameLiterals(factors, info.Prefixes) {
		if pf, err := NewFactorPrefilter(factors); err == nil {
			chain = append(chain, pf)
		}
	}

	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	default:
		return chain
	}
}

// Chain is a conjunction of prefilters: a text may match only if every
// member says it may.
type Chain []Prefilter

// MayMatch implements Prefilter.
func (c Chain) MayMatch(haystack []byte) bool {
	for _, pf := range c {
		if !pf.MayMatch(haystack) {
			return false
		}
	}
	return true
}

// String implements Prefilter.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, pf := range c {
		parts[i] = pf.String()
	}
	return "chain(" + strings.Join(parts, ", ") + ")"
}

func sameLiterals(a, b *literal.Seq) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if string(a.Get(i).Bytes) != string(b.Get(i).Bytes) {
			return false
		}
	}
	return true
}
