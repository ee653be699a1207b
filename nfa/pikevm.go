package nfa

import (
	"sync"
	"unicode/utf8"

	"github.com/coregx/rpnregex/internal/conv"
	"github.com/coregx/rpnregex/internal/sparse"
)

// PikeVM decides whether a Program matches a whole text by simulating the NFA
// in lockstep: every live thread advances over the same input rune before the
// next rune is examined, and threads that reach the same instruction are
// merged. Total work is bounded by len(text) * Program.Len().
//
// Thread safety: a PikeVM is immutable after creation. IsMatch and
// IsMatchString take their per-search state from an internal pool, so one
// PikeVM may serve any number of goroutines. IsMatchWithState lets the caller
// own the state instead.
type PikeVM struct {
	prog *Program
	pool sync.Pool
}

// PikeVMState holds mutable per-search state for PikeVM.
// Each goroutine must use its own PikeVMState instance.
type PikeVMState struct {
	// Threads of the current and next generation. Every member is a Literal
	// or the Match instruction: epsilon instructions are expanded on insert.
	Queue     []StateID
	NextQueue []StateID

	// Visited tracks every instruction reached in the generation being built,
	// including Split and Jump. It deduplicates threads across all closures
	// of one step and stops closure traversal at loop back-edges.
	Visited *sparse.SparseSet

	// epsilonStack is the closure work-list; it holds pending Split targets.
	epsilonStack []StateID
}

// NewPikeVM creates a new PikeVM for executing the given Program
func NewPikeVM(prog *Program) *PikeVM {
	p := &PikeVM{prog: prog}
	p.pool.New = func() any {
		s := NewPikeVMState()
		p.initState(s)
		return s
	}
	return p
}

// NewPikeVMState creates a new mutable state for use with PikeVM.
// The state must be initialized by calling PikeVM.InitState before use.
func NewPikeVMState() *PikeVMState {
	return &PikeVMState{}
}

// InitState sizes state for this PikeVM's Program.
// Must be called before using the state with IsMatchWithState.
func (p *PikeVM) InitState(state *PikeVMState) {
	p.initState(state)
}

func (p *PikeVM) initState(state *PikeVMState) {
	n := p.prog.Len()
	state.Queue = make([]StateID, 0, n)
	state.NextQueue = make([]StateID, 0, n)
	state.Visited = sparse.NewSparseSet(conv.IntToUint32(n))
	state.epsilonStack = make([]StateID, 0, n)
}

// Program returns the Program this PikeVM executes
func (p *PikeVM) Program() *Program {
	return p.prog
}

// IsMatch reports whether the whole of text is matched by the program.
// text is decoded as UTF-8; each invalid byte decodes to utf8.RuneError.
func (p *PikeVM) IsMatch(text []byte) bool {
	state := p.get()
	defer p.pool.Put(state)
	return p.IsMatchWithState(state, text)
}

// IsMatchString is like IsMatch for a string.
func (p *PikeVM) IsMatchString(text string) bool {
	state := p.get()
	defer p.pool.Put(state)
	return p.IsMatchStringWithState(state, text)
}

// IsMatchWithState is IsMatch with a caller-owned state.
func (p *PikeVM) IsMatchWithState(state *PikeVMState, text []byte) bool {
	p.start(state)
	for len(text) > 0 {
		r, width := utf8.DecodeRune(text)
		text = text[width:]
		if !p.step(state, r) {
			return false
		}
	}
	return state.Visited.Contains(uint32(p.prog.MatchID()))
}

// IsMatchStringWithState is IsMatchString with a caller-owned state.
func (p *PikeVM) IsMatchStringWithState(state *PikeVMState, text string) bool {
	p.start(state)
	for _, r := range text {
		if !p.step(state, r) {
			return false
		}
	}
	return state.Visited.Contains(uint32(p.prog.MatchID()))
}

// Closure returns the epsilon-closure of id: the Literal and Match
// instructions reachable from id through Split and Jump alone, in the order
// the closure visits them.
func (p *PikeVM) Closure(id StateID) []StateID {
	state := p.get()
	defer p.pool.Put(state)

	state.Queue = state.Queue[:0]
	state.Visited.Clear()
	state.Queue = p.addThread(state, state.Queue, id)

	out := make([]StateID, len(state.Queue))
	copy(out, state.Queue)
	return out
}

func (p *PikeVM) get() *PikeVMState {
	state := p.pool.Get().(*PikeVMState)
	if state.Visited == nil || state.Visited.Capacity() < p.prog.Len() {
		p.initState(state)
	}
	return state
}

// start resets state and seeds the first generation with the closure of the
// entry instruction, so the active set never holds Split or Jump even when
// the pattern begins with an alternation or a repetition.
func (p *PikeVM) start(state *PikeVMState) {
	state.Queue = state.Queue[:0]
	state.NextQueue = state.NextQueue[:0]
	state.Visited.Clear()
	state.Queue = p.addThread(state, state.Queue, 0)
}

// step advances every thread in Queue over r into a new generation and
// reports whether any thread survived.
func (p *PikeVM) step(state *PikeVMState, r rune) bool {
	state.Visited.Clear()
	next := state.NextQueue[:0]
	for _, sid := range state.Queue {
		inst := p.prog.insts[sid]
		if inst.kind == InstLiteral && inst.r == r {
			next = p.addThread(state, next, sid+1)
		}
	}
	state.Queue, state.NextQueue = next, state.Queue[:0]
	return len(state.Queue) > 0
}

// addThread appends the epsilon-closure of id to queue, skipping instructions
// already visited in this generation. The closure is a loop over an explicit
// stack: linear Jump chains continue in place, Split pushes its offset branch
// and follows the sequential one.
func (p *PikeVM) addThread(state *PikeVMState, queue []StateID, id StateID) []StateID {
	stack := state.epsilonStack[:0]
	n := len(p.prog.insts)
	sid := id

	for {
		if int(sid) >= n {
			panic(&ProgramError{Index: int(sid), Message: "epsilon transition out of bounds"})
		}
		if state.Visited.Insert(uint32(sid)) {
			inst := p.prog.insts[sid]
			switch inst.kind {
			case InstLiteral, InstMatch:
				queue = append(queue, sid)

			case InstJump:
				sid = StateID(int64(sid) + int64(inst.offset))
				continue

			case InstSplit:
				stack = append(stack, StateID(int64(sid)+int64(inst.offset)))
				sid++
				continue
			}
		}

		if len(stack) == 0 {
			state.epsilonStack = stack
			return queue
		}
		sid = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}
