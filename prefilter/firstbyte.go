package prefilter

import (
	"github.com/coregx/rpnregex/nfa"
)

// FirstBytePrefilter requires the text to start with a byte that can begin
// a match. Used when literal extraction found no prefix, e.g. for "ab|*c."
// whose matches start with 'a', 'b' or 'c'.
//
// The check is a single table lookup on the first byte of the text.
type FirstBytePrefilter struct {
	set *nfa.FirstByteSet
}

// NewFirstBytePrefilter wraps a first-byte set computed from a program.
func NewFirstBytePrefilter(set *nfa.FirstByteSet) *FirstBytePrefilter {
	return &FirstBytePrefilter{set: set}
}

// FromProgram returns a FirstBytePrefilter for prog, or nil if the program's
// first bytes cannot reject anything.
func FromProgram(prog *nfa.Program) Prefilter {
	set := nfa.ExtractFirstBytes(prog)
	if !set.IsUseful() {
		return nil
	}
	return NewFirstBytePrefilter(set)
}

// MayMatch implements Prefilter.
func (p *FirstBytePrefilter) MayMatch(haystack []byte) bool {
	return len(haystack) > 0 && p.set.Contains(haystack[0])
}

// String implements Prefilter.
func (p *FirstBytePrefilter) String() string {
	return "firstbyte(" + string(p.set.Bytes()) + ")"
}
