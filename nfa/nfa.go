package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/rpnregex/internal/conv"
)

// StateID is the absolute index of an instruction in a Program.
type StateID uint32

// InvalidState represents an invalid/uninitialized instruction index.
const InvalidState StateID = 0xFFFFFFFF

// InstKind identifies the type of an instruction.
type InstKind uint8

const (
	// InstLiteral consumes exactly one input rune equal to its payload.
	InstLiteral InstKind = iota

	// InstSplit is an epsilon branch to the next index and to index+offset.
	InstSplit

	// InstJump is an unconditional epsilon transition to index+offset.
	InstJump

	// InstMatch is the accepting terminal.
	InstMatch
)

// String returns a human-readable representation of the InstKind
func (k InstKind) String() string {
	switch k {
	case InstLiteral:
		return "Literal"
	case InstSplit:
		return "Split"
	case InstJump:
		return "Jump"
	case InstMatch:
		return "Match"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Inst is a single Program instruction. The kind determines which payload
// field is meaningful. Branch offsets are relative to the instruction's own
// index, which keeps a fragment position independent while it is being
// concatenated or nested.
type Inst struct {
	kind   InstKind
	r      rune
	offset int32
}

// Literal returns an instruction that consumes the rune r.
func Literal(r rune) Inst {
	return Inst{kind: InstLiteral, r: r}
}

// Split returns an epsilon branch to index+1 and index+offset.
func Split(offset int) Inst {
	return Inst{kind: InstSplit, offset: conv.IntToInt32(offset)}
}

// Jump returns an unconditional epsilon transition to index+offset.
func Jump(offset int) Inst {
	return Inst{kind: InstJump, offset: conv.IntToInt32(offset)}
}

// Match returns the accepting instruction.
func Match() Inst {
	return Inst{kind: InstMatch}
}

// Kind returns the instruction's type
func (i Inst) Kind() InstKind {
	return i.kind
}

// Rune returns the payload of a Literal instruction, or -1 for other kinds.
func (i Inst) Rune() rune {
	if i.kind == InstLiteral {
		return i.r
	}
	return -1
}

// Offset returns the relative branch offset of a Split or Jump instruction,
// or 0 for other kinds.
func (i Inst) Offset() int {
	if i.kind == InstSplit || i.kind == InstJump {
		return int(i.offset)
	}
	return 0
}

// String returns a human-readable representation of the instruction
func (i Inst) String() string {
	switch i.kind {
	case InstLiteral:
		return fmt.Sprintf("Literal %q", i.r)
	case InstSplit:
		return fmt.Sprintf("Split %+d", i.offset)
	case InstJump:
		return fmt.Sprintf("Jump %+d", i.offset)
	case InstMatch:
		return "Match"
	default:
		return i.kind.String()
	}
}

// Program is a compiled postfix pattern: a flat, index-addressed sequence of
// instructions ending in the single Match instruction.
//
// A Program is immutable once constructed and safe for concurrent use.
type Program struct {
	insts []Inst
}

// NewProgram validates insts and returns a Program holding a copy of them.
//
// The instructions must satisfy the invariants the compiler guarantees:
//   - the sequence is non-empty and ends in Match
//   - Match appears nowhere else
//   - every Split/Jump target (index+offset) is in bounds
//   - Jump offsets are non-zero
//
// This is intended for programs produced outside the compiler, such as code
// generated by package codegen.
func NewProgram(insts []Inst) (*Program, error) {
	cp := make([]Inst, len(insts))
	copy(cp, insts)
	p := &Program{insts: cp}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNewProgram is like NewProgram but panics on invalid instructions.
func MustNewProgram(insts []Inst) *Program {
	p, err := NewProgram(insts)
	if err != nil {
		panic("nfa: MustNewProgram: " + err.Error())
	}
	return p
}

func (p *Program) validate() error {
	n := len(p.insts)
	if n == 0 {
		return &ProgramError{Index: -1, Message: "empty program"}
	}
	if n > maxProgramLen {
		return &ProgramError{Index: -1, Message: fmt.Sprintf("program has %d instructions, limit is %d", n, maxProgramLen)}
	}
	for i, inst := range p.insts {
		switch inst.kind {
		case InstLiteral:
		case InstMatch:
			if i != n-1 {
				return &ProgramError{Index: i, Message: "match instruction before end of program"}
			}
		case InstSplit, InstJump:
			if inst.kind == InstJump && inst.offset == 0 {
				return &ProgramError{Index: i, Message: "jump to itself"}
			}
			if t := i + int(inst.offset); t < 0 || t >= n {
				return &ProgramError{Index: i, Message: fmt.Sprintf("target %d out of bounds", t)}
			}
		default:
			return &ProgramError{Index: i, Message: fmt.Sprintf("unknown instruction kind %s", inst.kind)}
		}
	}
	if p.insts[n-1].kind != InstMatch {
		return &ProgramError{Index: n - 1, Message: "program does not end in match"}
	}
	return nil
}

// maxProgramLen keeps every index and offset representable as int32.
const maxProgramLen = 1<<31 - 1

// Len returns the number of instructions
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at id.
// Panics if id is out of range.
func (p *Program) Inst(id StateID) Inst {
	return p.insts[id]
}

// Insts returns a copy of the instruction sequence.
func (p *Program) Insts() []Inst {
	cp := make([]Inst, len(p.insts))
	copy(cp, p.insts)
	return cp
}

// MatchID returns the index of the Match instruction (always the last one).
func (p *Program) MatchID() StateID {
	return StateID(conv.IntToUint32(len(p.insts) - 1))
}

// Target returns the absolute index an offset-carrying instruction at id
// branches to, or InvalidState for Literal and Match.
func (p *Program) Target(id StateID) StateID {
	inst := p.insts[id]
	switch inst.kind {
	case InstSplit, InstJump:
		return StateID(int64(id) + int64(inst.offset))
	default:
		return InvalidState
	}
}

// Equal reports whether both programs hold the same instruction sequence.
func (p *Program) Equal(other *Program) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.insts) != len(other.insts) {
		return false
	}
	for i := range p.insts {
		if p.insts[i] != other.insts[i] {
			return false
		}
	}
	return true
}

// String returns a disassembly of the program, one instruction per line.
//
// Example for "ab|":
//
//	0: Split +3 -> 3
//	1: Literal 'a'
//	2: Jump +2 -> 4
//	3: Literal 'b'
//	4: Match
func (p *Program) String() string {
	var sb strings.Builder
	for i, inst := range p.insts {
		fmt.Fprintf(&sb, "%d: %s", i, inst)
		if inst.kind == InstSplit || inst.kind == InstJump {
			fmt.Fprintf(&sb, " -> %d", i+int(inst.offset))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
