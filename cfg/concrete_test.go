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

import "testing"

func TestGenConcreteEdgesAbsoluteJump(t *testing.T) {
	code := []byte{0x60, 0x03, 0x56, 0x5B, 0x00} // PUSH1 3 JUMP JUMPDEST STOP
	blocks := disassemble(code)
	edges := genConcreteEdges(blocks, code)

	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1: %+v", len(edges), edges)
	}
	if edges[0].Src.Uint64() != 0 || edges[0].Dst.Uint64() != 3 {
		t.Fatalf("edge = (%s, %s), want (0, 3)", edges[0].Src.Hex(), edges[0].Dst.Hex())
	}
}

func TestGenConcreteEdgesConditionalJumpOrdering(t *testing.T) {
	// PUSH1 7, JUMPI, four STOPs as padding, JUMPDEST, STOP
	code := []byte{0x60, 0x07, 0x57, 0x00, 0x00, 0x00, 0x00, 0x5B, 0x00}
	blocks := disassemble(code)
	edges := genConcreteEdges(blocks, code)

	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2: %+v", len(edges), edges)
	}
	if edges[0].Dst.Uint64() != 7 {
		t.Fatalf("first edge should be the taken branch to 7, got %s", edges[0].Dst.Hex())
	}
	if edges[1].Dst.Uint64() != 3 {
		t.Fatalf("second edge should be the fall-through to 3, got %s", edges[1].Dst.Hex())
	}
}

func TestGenConcreteEdgesNoPatternNoEdges(t *testing.T) {
	code := []byte{0x00} // STOP only
	blocks := disassemble(code)
	edges := genConcreteEdges(blocks, code)
	if len(edges) != 0 {
		t.Fatalf("got %d edges, want 0", len(edges))
	}
}
