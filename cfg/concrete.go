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

var (
	absJumpPattern  = []Category{CatPush, CatJump}
	condJumpPattern = []Category{CatPush, CatJumpI}
)

// genConcreteEdges scans every block for the syntactic [Push, Jump] and
// [Push, JumpI] patterns, recovering direct jumps and the fall-through
// side of conditional jumps. Only the first match per block counts, which
// captures the common compiler idiom where the Push immediately precedes
// the Jump(I) as the last two instructions of the block.
//
// Ordering matters and is preserved here exactly as spec.md §5 requires:
// absolute-jump edges, then conditional-true edges, then conditional-
// false (fall-through) edges.
func genConcreteEdges(blocks []*Block, code []byte) []Edge {
	var absEdges, condTrueEdges, condFalseEdges []Edge

	for _, block := range blocks {
		if seq, ok := block.firstMatchingSequence(absJumpPattern); ok {
			dest := pushTarget(seq[0], code)
			absEdges = append(absEdges, Edge{Src: block.ID(), Dst: dest})
		}
	}
	for _, block := range blocks {
		if seq, ok := block.firstMatchingSequence(condJumpPattern); ok {
			dest := pushTarget(seq[0], code)
			condTrueEdges = append(condTrueEdges, Edge{Src: block.ID(), Dst: dest})

			var fallThrough uint256.Int
			fallThrough.SetUint64(block.PCEnd + 1)
			condFalseEdges = append(condFalseEdges, Edge{Src: block.ID(), Dst: fallThrough})
		}
	}

	edges := make([]Edge, 0, len(absEdges)+len(condTrueEdges)+len(condFalseEdges))
	edges = append(edges, absEdges...)
	edges = append(edges, condTrueEdges...)
	edges = append(edges, condFalseEdges...)
	return edges
}

// pushTarget reads pushOp's immediate out of code and interprets it as a
// big-endian word.
func pushTarget(pushOp Operation, code []byte) uint256.Int {
	start := int(pushOp.PC) + 1
	end := start + int(pushOp.ArgSize)
	var dest uint256.Int
	dest.SetBytes(code[start:end])
	return dest
}
