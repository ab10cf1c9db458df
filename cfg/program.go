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

// Package cfg recovers a control-flow graph from deployed EVM-family
// bytecode: a disassembler/block splitter, a concrete (syntactic) edge
// resolver, a symbolic (abstract-interpretation) edge resolver, and a
// graph materializer. See SPEC_FULL.md for the full component breakdown.
package cfg

import (
	"github.com/holiman/uint256"
	"github.com/wmntva/evmcfg/internal/log"
)

// Edge is one directed control-transfer edge between two block ids.
type Edge struct {
	Src uint256.Int
	Dst uint256.Int
}

// Program is the result of analyzing one contiguous byte sequence: its
// blocks, their ids, and every edge discovered so far.
type Program struct {
	Code           []byte
	Blocks         []*Block
	StartAddresses []uint256.Int
	Edges          []Edge

	// entrySelector is accepted by ParseBytecode and retained for a
	// future dispatch-arm-restricted analysis mode; it is not yet
	// consulted by any stage (spec.md §6).
	entrySelector *[4]byte

	blockByID map[uint256.Int]*Block
}

// ParseBytecode disassembles code into basic blocks. entrySelector is
// reserved for future use and is currently ignored.
func ParseBytecode(code []byte, entrySelector *[4]byte) *Program {
	blocks := disassemble(code)

	p := &Program{
		Code:          code,
		Blocks:        blocks,
		entrySelector: entrySelector,
		blockByID:     make(map[uint256.Int]*Block, len(blocks)),
	}
	p.StartAddresses = make([]uint256.Int, 0, len(blocks))
	for _, b := range blocks {
		id := b.ID()
		p.StartAddresses = append(p.StartAddresses, id)
		p.blockByID[id] = b
	}

	log.Info("parsed bytecode", "bytes", len(code), "blocks", len(blocks))
	return p
}

// GenConcreteEdges appends every edge the syntactic Push→Jump(I) patterns
// recover. It does not reorder or remove edges already present; calling it
// twice appends duplicates.
func (p *Program) GenConcreteEdges() {
	p.Edges = append(p.Edges, genConcreteEdges(p.Blocks, p.Code)...)
}

// GenSymbolicEdges appends every edge the symbolic worklist traversal
// recovers, starting from block 0. Like GenConcreteEdges it only appends.
func (p *Program) GenSymbolicEdges() {
	p.Edges = append(p.Edges, genSymbolicEdges(p.Blocks, p.blockByID, p.Code)...)
}
