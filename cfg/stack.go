// Copyright 2024 The evmcfg Authors
// This file is part of the evmcfg library.
//
// The evmcfg library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcfg library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcfg library. If not, see <http://www.gnu.org/licenses/>.

package cfg

// maxStackDepth mirrors the EVM's own operand stack limit; a push past it
// is a programming error in the interpreter, never a property of valid
// bytecode.
const maxStackDepth = 1024

// CellKind tags a symbolic stack cell.
type CellKind uint8

const (
	Uninitialized CellKind = iota
	Unknown
	Data
)

// Cell is one symbolic stack value: a concrete 32-byte word, an Unknown
// marker (defined but untracked), or Uninitialized (not live). 32 bytes
// rather than the 256 the original source used — see DESIGN.md.
type Cell struct {
	Kind  CellKind
	Value [32]byte
}

// Stack is a fixed-capacity symbolic operand stack. NewStack returns an
// empty one; the zero value is not empty (its top index is 0, not -1).
type Stack struct {
	frames [maxStackDepth]Cell
	top    int // index of the top-most initialized frame, -1 when empty
}

// NewStack returns an empty symbolic stack.
func NewStack() *Stack {
	return &Stack{top: -1}
}

// Capture is an immutable snapshot of a Stack, cheap to take because it
// only copies the initialized prefix.
type Capture struct {
	frames []Cell
	top    int
}

// Capture snapshots the stack: the initialized prefix of frames plus the
// stack pointer. Restoring it reconstructs a stack with every frame above
// top cleared back to Uninitialized.
func (s *Stack) Capture() Capture {
	cp := make([]Cell, s.top+1)
	copy(cp, s.frames[:s.top+1])
	return Capture{frames: cp, top: s.top}
}

// Restore rebuilds a Stack from a Capture taken earlier, possibly by a
// different Stack value (this is how the symbolic edge resolver threads a
// stack shape from one block's traversal into the next).
func Restore(c Capture) *Stack {
	s := &Stack{top: c.top}
	copy(s.frames[:], c.frames)
	return s
}

// Push places val on top of the stack. A nil val pushes Unknown.
func (s *Stack) Push(val []byte) {
	s.pushCell(cellFromBytes(val))
}

func cellFromBytes(val []byte) Cell {
	if val == nil {
		return Cell{Kind: Unknown}
	}
	var c Cell
	c.Kind = Data
	// Zero-extend on the left: a narrower value occupies the low-order
	// (rightmost) bytes of the 32-byte word, matching EVM big-endian words.
	if len(val) > 32 {
		val = val[len(val)-32:]
	}
	copy(c.Value[32-len(val):], val)
	return c
}

func (s *Stack) pushCell(c Cell) {
	if s.top+1 >= maxStackDepth {
		panic("evmcfg: symbolic stack overflow")
	}
	s.top++
	s.frames[s.top] = c
}

// Pop removes and returns the top cell. It panics on underflow: per the
// spec, a pop with nothing to pop indicates the disassembly itself is
// wrong, not a property of the input bytecode.
func (s *Stack) Pop() Cell {
	if s.top < 0 {
		panic("evmcfg: symbolic stack underflow")
	}
	c := s.frames[s.top]
	s.frames[s.top] = Cell{}
	s.top--
	return c
}

// Peek returns the top cell without removing it. Unlike Pop, Peek never
// panics on an empty stack — it reports Uninitialized, since callers use
// it defensively to decide whether a jump target is known.
func (s *Stack) Peek() Cell {
	if s.top < 0 {
		return Cell{Kind: Uninitialized}
	}
	return s.frames[s.top]
}

// peekAt returns the cell n frames below the top (0 = top itself) without
// removing anything, treating an out-of-range index as Uninitialized.
func (s *Stack) peekAt(framesBelowTop int) Cell {
	idx := s.top - framesBelowTop
	if idx < 0 {
		return Cell{Kind: Uninitialized}
	}
	return s.frames[idx]
}

// clampedPopN pops up to n cells without underflowing: it stops at an
// empty stack instead of panicking. This is the "approximation must never
// cause underflow" escape hatch spec.md §9 calls for in the catch-all
// Other branch of Execute, where RmStackCount is only a coarse estimate.
func (s *Stack) clampedPopN(n int) {
	for i := 0; i < n && s.top >= 0; i++ {
		s.frames[s.top] = Cell{}
		s.top--
	}
}

// bitwiseAnd computes the byte-wise AND of two 32-byte words.
func bitwiseAnd(a, b [32]byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = a[i] & b[i]
	}
	return out
}

// Execute drives the symbolic stack through op, consulting code only to
// read PUSH immediates. It implements the narrow Push/Pop/Swap/Dup/And
// subset precisely and falls back to a coarse pop-N/push-Unknown-N model
// for everything else, including Jump and JumpI themselves.
func (s *Stack) Execute(op Operation, code []byte) {
	switch op.Category {
	case CatPush:
		start := int(op.PC) + 1
		end := start + int(op.ArgSize)
		s.Push(code[start:end])
	case CatPop:
		s.Pop()
	case CatAnd:
		top := s.Pop()
		second := s.Pop()
		if top.Kind != Data || second.Kind != Data {
			s.pushCell(Cell{Kind: Data})
			return
		}
		s.pushCell(Cell{Kind: Data, Value: bitwiseAnd(top.Value, second.Value)})
	case CatDup:
		n := int(op.RmStackCount)
		target := s.peekAt(n - 1)
		if target.Kind == Data {
			s.pushCell(Cell{Kind: Data, Value: target.Value})
		} else {
			s.Push(nil)
		}
	case CatSwap:
		n := int(op.RmStackCount)
		otherIdx := s.top - n
		if otherIdx < 0 {
			return
		}
		s.frames[s.top], s.frames[otherIdx] = s.frames[otherIdx], s.frames[s.top]
	default:
		// Jump, JumpI, Other: coarse stack-effect model.
		s.clampedPopN(int(op.RmStackCount))
		for i := 0; i < int(op.AddStackCount); i++ {
			s.Push(nil)
		}
	}
}
