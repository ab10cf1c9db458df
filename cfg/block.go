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

import "github.com/holiman/uint256"

// Block is a maximal run of instructions with a single entry at the first
// opcode and a single exit (terminator or fall-through into a JUMPDEST)
// at the last. A block's id is its starting PC, stable across the run and
// the only cross-reference used by edges.
type Block struct {
	PCStart    uint64
	PCEnd      uint64
	Ops        []Operation
	Successors []uint64
}

// ID returns the block's identity: its starting PC as a Word.
func (b *Block) ID() uint256.Int {
	var id uint256.Int
	id.SetUint64(b.PCStart)
	return id
}

// firstMatchingSequence scans b's operations left to right for the first
// contiguous run whose categories equal want, returning it and true. Only
// the first match matters to the concrete resolver, which is why this
// stops at the first hit instead of collecting every window the way the
// original source's get_matching_op_sequences did.
func (b *Block) firstMatchingSequence(want []Category) ([]Operation, bool) {
	if len(b.Ops) < len(want) {
		return nil, false
	}
	for start := 0; start+len(want) <= len(b.Ops); start++ {
		if sequenceMatches(b.Ops[start:start+len(want)], want) {
			return b.Ops[start : start+len(want)], true
		}
	}
	return nil, false
}

func sequenceMatches(ops []Operation, want []Category) bool {
	for i, op := range ops {
		if op.Category != want[i] {
			return false
		}
	}
	return true
}

// mnemonics renders the block's operations as a space-joined mnemonic
// string, the display payload the graph materializer attaches to nodes.
func (b *Block) mnemonics() string {
	out := make([]byte, 0, len(b.Ops)*5)
	for i, op := range b.Ops {
		if i > 0 {
			out = append(out, ' ')
		}
		if op.IsInvalid {
			out = append(out, []byte("INVALID")...)
			continue
		}
		out = append(out, []byte(op.Opcode.String())...)
	}
	return string(out)
}
