package nfa

// Builder constructs Programs from an operand stack of partial instruction
// sequences. It is the low-level API driven by the Compiler: each method
// corresponds to one postfix token.
//
// Fragments on the stack never contain Match; Build appends it.
type Builder struct {
	stack [][]Inst
}

// NewBuilder creates a new Builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new Builder with the given stack capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		stack: make([][]Inst, 0, capacity),
	}
}

// Depth returns the number of operands on the stack
func (b *Builder) Depth() int {
	return len(b.stack)
}

// PushLiteral pushes the single-instruction fragment [Literal(r)].
func (b *Builder) PushLiteral(r rune) {
	b.stack = append(b.stack, []Inst{Literal(r)})
}

// Alternate pops S then L and pushes L|S:
//
//	Split  len(L)+2   -> S
//	L ...
//	Jump   len(S)+1   -> past S
//	S ...
func (b *Builder) Alternate() error {
	if len(b.stack) < 2 {
		return ErrMissingOperand
	}
	s := b.pop()
	l := b.pop()

	frag := make([]Inst, 0, len(l)+len(s)+2)
	frag = append(frag, Split(len(l)+2))
	frag = append(frag, l...)
	frag = append(frag, Jump(len(s)+1))
	frag = append(frag, s...)
	b.push(frag)
	return nil
}

// Repeat pops F and pushes F*:
//
//	Split  len(F)+2     -> past Jump
//	F ...
//	Jump   -(len(F)+1)  -> Split
func (b *Builder) Repeat() error {
	if len(b.stack) < 1 {
		return ErrMissingOperand
	}
	f := b.pop()
	l := len(f)

	frag := make([]Inst, 0, l+2)
	frag = append(frag, Split(l+2))
	frag = append(frag, f...)
	frag = append(frag, Jump(-(l + 1)))
	b.push(frag)
	return nil
}

// Concat pops S then F and pushes F followed by S.
func (b *Builder) Concat() error {
	if len(b.stack) < 2 {
		return ErrMissingOperand
	}
	s := b.pop()
	f := b.pop()

	frag := make([]Inst, 0, len(f)+len(s))
	frag = append(frag, f...)
	frag = append(frag, s...)
	b.push(frag)
	return nil
}

// Build finalizes the single remaining operand into a Program by appending
// Match. The stack must hold exactly one operand.
// The Builder is empty afterwards.
func (b *Builder) Build() (*Program, error) {
	if len(b.stack) != 1 {
		return nil, ErrUnbalancedExpression
	}
	frag := b.pop()
	insts := make([]Inst, 0, len(frag)+1)
	insts = append(insts, frag...)
	insts = append(insts, Match())
	return &Program{insts: insts}, nil
}

// Reset discards all operands.
func (b *Builder) Reset() {
	clear(b.stack)
	b.stack = b.stack[:0]
}

// topLen returns the length of the top fragment, or 0 on an empty stack.
func (b *Builder) topLen() int {
	if len(b.stack) == 0 {
		return 0
	}
	return len(b.stack[len(b.stack)-1])
}

func (b *Builder) push(frag []Inst) {
	b.stack = append(b.stack, frag)
}

func (b *Builder) pop() []Inst {
	n := len(b.stack)
	frag := b.stack[n-1]
	b.stack[n-1] = nil
	b.stack = b.stack[:n-1]
	return frag
}
