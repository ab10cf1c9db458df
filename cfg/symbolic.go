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

import (
	"github.com/holiman/uint256"
	"github.com/wmntva/evmcfg/internal/log"
)

type edgeKey [2]uint256.Int

type workItem struct {
	block    *Block
	snapshot Capture
}

// genSymbolicEdges runs the worklist traversal described in spec.md §4.6:
// starting at block 0 with an empty stack, execute each block's
// operations up to (but not including) the last, and if that last
// operation is a Jump/JumpI, peek the stack top for a concrete target.
//
// The visited set keys on the discovered (src, dst) edge rather than on
// the destination block, so a block reachable under two genuinely
// different incoming stack shapes is still re-explored along the second
// shape — see spec.md §9 for why this is bounded in practice.
func genSymbolicEdges(blocks []*Block, blockByID map[uint256.Int]*Block, code []byte) []Edge {
	if len(blocks) == 0 {
		return nil
	}

	var edges []Edge
	visited := make(map[edgeKey]bool)
	queue := []workItem{{block: blocks[0], snapshot: NewStack().Capture()}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		stack := Restore(item.snapshot)
		ops := item.block.Ops
		for _, op := range ops[:len(ops)-1] {
			stack.Execute(op, code)
		}

		last := ops[len(ops)-1]
		if last.Category != CatJump && last.Category != CatJumpI {
			continue
		}

		top := stack.Peek()
		if top.Kind != Data {
			continue
		}

		var target uint256.Int
		target.SetBytes(top.Value[:])

		dstBlock, ok := blockByID[target]
		if !ok {
			log.Debug("symbolic: dropped edge to unknown block", "src", item.block.PCStart, "target", target.Hex())
			continue
		}

		edges = append(edges, Edge{Src: item.block.ID(), Dst: target})

		key := edgeKey{item.block.ID(), target}
		if !visited[key] {
			visited[key] = true
			stack.Execute(last, code)
			queue = append(queue, workItem{block: dstBlock, snapshot: stack.Capture()})
		}
	}

	return edges
}
