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
	"github.com/wmntva/evmcfg/internal/log"
	"github.com/wmntva/evmcfg/opcodes"
)

// disassemble performs the single left-to-right sweep over code, emitting
// an ordered list of basic blocks. Every JUMPDEST begins a block; every
// undecodable byte (including a PUSH whose immediate runs past the end of
// code, and each of that PUSH's trailing immediate bytes) becomes its own
// singleton Invalid block.
func disassemble(code []byte) []*Block {
	var blocks []*Block
	var ops []Operation
	blockStart := 0
	pc := 0
	truncated := false

	for pc < len(code) {
		b := code[pc]
		op, _, ok := opcodes.Decode(b)
		if truncated {
			// Trailing immediate bytes of a truncated PUSH.
			ok = false
		} else if ok {
			argSize := int(opcodes.ArgSize(op))
			if pc+1+argSize > len(code) {
				// PUSH immediate would run past the end of code: treated
				// the same as an undefined byte at this PC, and so is
				// every byte after it.
				ok = false
				truncated = true
			}
		}

		if !ok {
			if len(ops) > 0 {
				blocks = append(blocks, &Block{
					PCStart: uint64(blockStart),
					PCEnd:   ops[len(ops)-1].PC,
					Ops:     ops,
				})
				ops = nil
			}
			log.Debug("disassemble: undecodable byte", "pc", pc, "byte", b)
			blocks = append(blocks, &Block{
				PCStart: uint64(pc),
				PCEnd:   uint64(pc),
				Ops:     []Operation{invalidOperation(b, uint64(pc))},
			})
			pc++
			blockStart = pc
			continue
		}

		operation := newOperation(op, uint64(pc))
		ops = append(ops, operation)
		next := pc + 1 + int(operation.ArgSize)

		closeBlock := opcodes.IsBlockTerminator(op) ||
			next >= len(code) ||
			code[next] == byte(opcodes.JUMPDEST)

		pc = next
		if closeBlock {
			blocks = append(blocks, &Block{
				PCStart: uint64(blockStart),
				PCEnd:   operation.PC,
				Ops:     ops,
			})
			ops = nil
			blockStart = pc
		}
	}

	log.Debug("disassemble: complete", "blocks", len(blocks), "bytes", len(code))
	return blocks
}
