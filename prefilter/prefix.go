package prefilter

import (
	"bytes"
	"strings"

	"github.com/coregx/rpnregex/literal"
)

// PrefixPrefilter requires the text to start with one of its literals.
// Literals are grouped by first byte so a mismatching text is usually
// rejected after one table lookup.
type PrefixPrefilter struct {
	byFirst [256][][]byte
	lits    []string
}

// NewPrefixPrefilter builds a prefix check over the literals of seq.
// Empty literals are ignored: they would accept every text.
func NewPrefixPrefilter(seq *literal.Seq) *PrefixPrefilter {
	p := &PrefixPrefilter{}
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes
		if len(b) == 0 {
			continue
		}
		p.byFirst[b[0]] = append(p.byFirst[b[0]], b)
		p.lits = append(p.lits, string(b))
	}
	return p
}

// MayMatch implements Prefilter.
func (p *PrefixPrefilter) MayMatch(haystack []byte) bool {
	if len(haystack) == 0 {
		return false
	}
	for _, lit := range p.byFirst[haystack[0]] {
		if bytes.HasPrefix(haystack, lit) {
			return true
		}
	}
	return false
}

// String implements Prefilter.
func (p *PrefixPrefilter) String() string {
	return "prefix(" + strings.Join(p.lits, "|") + ")"
}
