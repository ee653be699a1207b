package prefilter

import (
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rpnregex/literal"
)

// FactorPrefilter requires the text to contain one of its literals anywhere.
// All literals are searched in a single pass with an Aho-Corasick automaton.
type FactorPrefilter struct {
	automaton *ahocorasick.Automaton
	lits      []string
}

// NewFactorPrefilter builds the automaton for the literals of seq.
func NewFactorPrefilter(seq *literal.Seq) (*FactorPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	lits := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes
		builder.AddPattern(b)
		lits = append(lits, string(b))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &FactorPrefilter{automaton: auto, lits: lits}, nil
}

// MayMatch implements Prefilter.
func (f *FactorPrefilter) MayMatch(haystack []byte) bool {
	return f.automaton.IsMatch(haystack)
}

// Find returns the start of the leftmost factor occurrence at or after
// start, or -1.
func (f *FactorPrefilter) Find(haystack []byte, start int) int {
	m := f.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// String implements Prefilter.
func (f *FactorPrefilter) String() string {
	return "factors(" + strings.Join(f.lits, "|") + ")"
}
