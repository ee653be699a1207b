// Package literal provides types and operations for representing and manipulating
// literal byte sequences extracted from postfix patterns.
//
// The primary use case is fast rejection before running the PikeVM: by
// extracting the literals every match must begin with or contain, a text that
// lacks all of them can be rejected without simulating the automaton. When a
// pattern's language is finite and small, its literals describe it exactly and
// the automaton is not needed at all.
//
// Key concepts:
//   - A Literal is a concrete byte sequence (UTF-8 encoded runes)
//   - A Seq is a set of alternative literals (e.g., from alternations like "ab.cd.|")
package literal

import (
	"bytes"
	"sort"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether this literal is an entire string of the
// pattern's language (true) or only a prefix/factor of potential matches (false).
//
// Example:
//   - Pattern "ab." → Literal{[]byte("ab"), true}
//   - Pattern "ab.c*." → Literal{[]byte("ab"), false} (prefix only)
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal is a whole match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals.
//
// A nil *Seq means "unknown": nothing useful could be extracted. Methods
// accept a nil receiver.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("world"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		bytesCopy := make([]byte, len(lit.Bytes))
		copy(bytesCopy, lit.Bytes)
		cloned[i] = Literal{
			Bytes:    bytesCopy,
			Complete: lit.Complete,
		}
	}

	return &Seq{literals: cloned}
}

// Strings returns the literals as strings, in sequence order.
func (s *Seq) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.literals))
	for i, lit := range s.literals {
		out[i] = string(lit.Bytes)
	}
	return out
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	minLen := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		if len(lit.Bytes) < minLen {
			minLen = len(lit.Bytes)
		}
	}
	return minLen
}

// Dedup sorts the literals and removes exact duplicates.
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	kept := s.literals[:1]
	for _, lit := range s.literals[1:] {
		if bytes.Equal(lit.Bytes, kept[len(kept)-1].Bytes) {
			continue
		}
		kept = append(kept, lit)
	}
	s.literals = kept
}

// Minimize removes literals that are redundant for prefix matching.
//
// A literal L is redundant if a shorter literal S is a prefix of L: any text
// starting with L also starts with S. For example, in ["foo", "foobar"],
// "foobar" is dropped. Completeness is lost for the survivors, since the set
// no longer lists whole matches.
func (s *Seq) Minimize() {
	s.minimize(bytes.HasPrefix)
}

// MinimizeFactors removes literals that are redundant for substring matching:
// L is dropped if it contains a shorter kept literal.
func (s *Seq) MinimizeFactors() {
	s.minimize(bytes.Contains)
}

func (s *Seq) minimize(covers func(b, sub []byte) bool) {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	dropped := false
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if covers(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if redundant {
			dropped = true
			continue
		}
		kept = append(kept, current)
	}
	if dropped {
		for i := range kept {
			kept[i].Complete = false
		}
	}
	s.literals = kept
}

// union returns the literals of a followed by those of b, or nil if either is
// unknown or the result would exceed limit.
func union(a, b *Seq, limit int) *Seq {
	if a == nil || b == nil || a.Len()+b.Len() > limit {
		return nil
	}
	lits := make([]Literal, 0, a.Len()+b.Len())
	lits = append(lits, a.literals...)
	lits = append(lits, b.literals...)
	out := &Seq{literals: lits}
	out.Dedup()
	return out
}

// cross returns every concatenation x+y for x in a and y in b, or nil if
// either is unknown or the result would exceed the limits. Each literal is
// complete only when both halves are.
func cross(a, b *Seq, maxLiterals, maxLen int) *Seq {
	if a == nil || b == nil || a.Len()*b.Len() > maxLiterals {
		return nil
	}
	lits := make([]Literal, 0, a.Len()*b.Len())
	for _, x := range a.literals {
		for _, y := range b.literals {
			if len(x.Bytes)+len(y.Bytes) > maxLen {
				return nil
			}
			buf := make([]byte, 0, len(x.Bytes)+len(y.Bytes))
			buf = append(buf, x.Bytes...)
			buf = append(buf, y.Bytes...)
			lits = append(lits, Literal{Bytes: buf, Complete: x.Complete && y.Complete})
		}
	}
	out := &Seq{literals: lits}
	out.Dedup()
	return out
}

// incomplete returns a copy of s with every literal marked incomplete.
func incomplete(s *Seq) *Seq {
	if s == nil {
		return nil
	}
	out := s.Clone()
	for i := range out.literals {
		out.literals[i].Complete = false
	}
	return out
}
