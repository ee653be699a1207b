package nfa

import (
	"unicode/utf8"
)

// FirstByteSet represents the set of bytes that can start a match.
// Used for O(1) early rejection of non-matching inputs.
type FirstByteSet struct {
	// bytes is a 256-bit lookup table for O(1) membership test
	bytes [256]bool
	// count is the number of valid first bytes (0-256)
	count int
}

// Contains returns true if b can be the first byte of a match.
func (f *FirstByteSet) Contains(b byte) bool {
	return f.bytes[b]
}

// Count returns the number of possible first bytes.
func (f *FirstByteSet) Count() int {
	return f.count
}

// Bytes returns the members in ascending order.
func (f *FirstByteSet) Bytes() []byte {
	out := make([]byte, 0, f.count)
	for b := 0; b < 256; b++ {
		if f.bytes[b] {
			out = append(out, byte(b))
		}
	}
	return out
}

// IsUseful returns true if this set can reject inputs.
func (f *FirstByteSet) IsUseful() bool {
	return f != nil && f.count > 0 && f.count < 256
}

func (f *FirstByteSet) add(b byte) {
	if !f.bytes[b] {
		f.bytes[b] = true
		f.count++
	}
}

// ExtractFirstBytes returns the set of bytes every text matched by prog
// starts with: the first UTF-8 byte of each Literal in the closure of the
// entry instruction.
//
// Returns nil if the set says nothing:
//   - Match is in the entry closure, so the empty text matches
//   - a reachable literal is U+FFFD, which also matches invalid UTF-8
//
// For example "abc.|*d." must start with 'a', 'b' or 'd'.
func ExtractFirstBytes(prog *Program) *FirstByteSet {
	if prog == nil {
		return nil
	}

	result := &FirstByteSet{}
	var buf [utf8.UTFMax]byte
	for _, sid := range NewPikeVM(prog).Closure(0) {
		inst := prog.Inst(sid)
		switch inst.Kind() {
		case InstMatch:
			return nil
		case InstLiteral:
			r := inst.Rune()
			if r == utf8.RuneError {
				return nil
			}
			utf8.EncodeRune(buf[:], r)
			result.add(buf[0])
		}
	}
	return result
}
