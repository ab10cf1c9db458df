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

import "github.com/wmntva/evmcfg/opcodes"

// Category is the coarse tag the symbolic interpreter switches on. It is
// the only axis stack.Execute actually cares about, which is why it is
// precomputed once per Operation rather than re-derived in the hot loop.
type Category uint8

const (
	CatOther Category = iota
	CatPush
	CatSwap
	CatDup
	CatAnd
	CatPop
	CatJump
	CatJumpI
)

func (c Category) String() string {
	switch c {
	case CatPush:
		return "Push"
	case CatSwap:
		return "Swap"
	case CatDup:
		return "Dup"
	case CatAnd:
		return "And"
	case CatPop:
		return "Pop"
	case CatJump:
		return "Jump"
	case CatJumpI:
		return "JumpI"
	default:
		return "Other"
	}
}

// nonStackIncreasing are the opcodes whose coarse AddStackCount is 0
// rather than 1: the terminators plus POP and the sstore/mstore family,
// per spec.md §4.2.
var nonStackIncreasing = map[opcodes.OpCode]bool{
	opcodes.STOP:         true,
	opcodes.RETURN:       true,
	opcodes.REVERT:       true,
	opcodes.SELFDESTRUCT: true,
	opcodes.JUMP:         true,
	opcodes.JUMPI:        true,
	opcodes.POP:          true,
	opcodes.SSTORE:       true,
	opcodes.MSTORE:       true,
	opcodes.MSTORE8:      true,
}

// Operation is a single decoded instruction, immutable after construction.
type Operation struct {
	Opcode           opcodes.OpCode
	Category         Category
	ArgSize          uint8
	RmStackCount     uint8
	AddStackCount    uint8
	IsInvalid        bool
	PC               uint64
	InvalidByte      byte // only meaningful when IsInvalid
}

// categoryOf derives the coarse category the symbolic stack dispatches on.
func categoryOf(b byte) Category {
	if _, ok := opcodes.IsPush(b); ok {
		return CatPush
	}
	if _, ok := opcodes.IsSwap(b); ok {
		return CatSwap
	}
	if _, ok := opcodes.IsDup(b); ok {
		return CatDup
	}
	switch opcodes.OpCode(b) {
	case opcodes.AND:
		return CatAnd
	case opcodes.POP:
		return CatPop
	case opcodes.JUMP:
		return CatJump
	case opcodes.JUMPI:
		return CatJumpI
	default:
		return CatOther
	}
}

// newOperation decodes the instruction at pc into an Operation record. b
// must be a byte the opcode catalog recognizes; callers are expected to
// have already checked Decode's ok return.
func newOperation(op opcodes.OpCode, pc uint64) Operation {
	b := byte(op)
	category := categoryOf(b)

	addStackCount := uint8(1)
	if nonStackIncreasing[op] {
		addStackCount = 0
	}

	var rmStackCount uint8
	if n, ok := opcodes.IsSwap(b); ok {
		rmStackCount = uint8(n)
	} else if n, ok := opcodes.IsDup(b); ok {
		rmStackCount = uint8(n)
	} else {
		rmStackCount = opcodes.Pops(op)
	}

	return Operation{
		Opcode:        op,
		Category:      category,
		ArgSize:       opcodes.ArgSize(op),
		RmStackCount:  rmStackCount,
		AddStackCount: addStackCount,
		PC:            pc,
	}
}

// invalidOperation builds the singleton Operation carried by an Invalid
// block: an undecodable byte, verbatim.
func invalidOperation(b byte, pc uint64) Operation {
	return Operation{
		IsInvalid:   true,
		InvalidByte: b,
		PC:          pc,
		Category:    CatOther,
	}
}
