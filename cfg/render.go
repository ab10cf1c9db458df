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
	"sort"

	"github.com/holiman/uint256"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
)

// NodeData is the display payload carried by each graph node: the block's
// id (as an integer) and its operations rendered as a space-joined
// mnemonic string.
type NodeData struct {
	CodeLoc uint64
	Ops     string
}

// Node is a graph.Node that also carries a block's NodeData. Rendering to
// dot, SVG, or anything else is an external collaborator's job — cfg only
// hands back a structure; see cmd/evmcfg for dot output via gonum's
// encoding/dot.
type Node struct {
	id   int64
	Data NodeData
}

// ID implements graph.Node.
func (n *Node) ID() int64 { return n.id }

// Attributes implements encoding.Attributer so the mnemonic string shows
// up as the node label when cmd/evmcfg renders the graph via gonum's
// encoding/dot.
func (n *Node) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: n.Data.Ops}}
}

// Graph wraps a gonum simple.DirectedGraph with a lookup from node id back
// to NodeData, since gonum's graph.Node interface alone only exposes ID().
type Graph struct {
	*simple.DirectedGraph
}

// NodeData returns the display payload for the node with the given id.
func (g *Graph) NodeData(id int64) (NodeData, bool) {
	n, ok := g.Node(id).(*Node)
	if !ok {
		return NodeData{}, false
	}
	return n.Data, true
}

// Render converts the program's blocks and edges into a directed graph
// suitable for visualization. Nodes are sorted by pc_start and assigned
// dense ascending indices; edges are translated from (Word, Word) pairs
// to those indices via a lookup built from the sorted node list.
func (p *Program) Render() *Graph {
	sorted := make([]*Block, len(p.Blocks))
	copy(sorted, p.Blocks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PCStart < sorted[j].PCStart
	})

	g := simple.NewDirectedGraph()
	idxByBlockID := make(map[uint256.Int]int64, len(sorted))
	for i, b := range sorted {
		idx := int64(i)
		idxByBlockID[b.ID()] = idx
		g.AddNode(&Node{id: idx, Data: NodeData{CodeLoc: b.PCStart, Ops: b.mnemonics()}})
	}

	for _, e := range p.Edges {
		srcIdx, srcOK := idxByBlockID[e.Src]
		dstIdx, dstOK := idxByBlockID[e.Dst]
		if !srcOK || !dstOK {
			continue
		}
		from := g.Node(srcIdx)
		to := g.Node(dstIdx)
		g.SetEdge(simpleEdge{f: from, t: to})
	}

	return &Graph{DirectedGraph: g}
}

// simpleEdge is a minimal graph.Edge implementation, equivalent to
// gonum's own simple.Edge.
type simpleEdge struct {
	f, t graph.Node
}

func (e simpleEdge) From() graph.Node         { return e.f }
func (e simpleEdge) To() graph.Node           { return e.t }
func (e simpleEdge) ReversedEdge() graph.Edge { return simpleEdge{f: e.t, t: e.f} }
