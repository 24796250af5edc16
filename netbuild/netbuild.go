// Package netbuild collapses a model's port/wire graph into maximal
// connected components ("nets") over plain structural edges, deferring
// bit-slice edges to package slicelower. It is the first stage of the
// elaboration-to-simulation lowering (spec.md §4.B).
package netbuild

import (
	"fmt"

	"github.com/hwsim/rtlsim/model"
)

// Net is a maximal connected component of nodes over plain edges. All
// nodes in a net share one signal.Value once package bind runs.
type Net struct {
	Nodes []model.NodeID
}

// HasConstant reports whether any node in the net is a structural
// constant, and returns it if so.
func (n *Net) HasConstant(arena *model.Arena) (*model.Node, bool) {
	for _, id := range n.Nodes {
		node := arena.Node(id)
		if node.IsConstant {
			return node, true
		}
	}
	return nil, false
}

// Result is NetBuilder's output: the net partition plus the slice edges
// deferred to package slicelower.
type Result struct {
	Nets        []*Net
	SliceEdges  []model.EdgeID
	// NetOf maps every partitioned node to the index of its Net in Nets.
	NetOf map[model.NodeID]int
}

// Build performs the union, per spec.md §4.B: DFS over each unvisited
// node's incident plain edges only; slice edges are collected separately.
// Self-loops collapse harmlessly (the DFS stack simply never revisits a
// node already marked seen); a constant node encountered mid-DFS is
// folded into the net like any other node. Build returns an error if any
// net ends up with more than one constant node.
func Build(arena *model.Arena, root *model.Module) (*Result, error) {
	nodes := arena.AllNodes(root)

	seen := make(map[model.NodeID]bool, len(nodes))
	res := &Result{NetOf: make(map[model.NodeID]int)}

	var sliceEdges []model.EdgeID
	sliceEdgeSeen := make(map[model.EdgeID]bool)

	for _, start := range nodes {
		if seen[start.ID] {
			continue
		}

		net := &Net{}
		stack := []model.NodeID{start.ID}
		seen[start.ID] = true

		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			node := arena.Node(id)
			net.Nodes = append(net.Nodes, id)

			for _, edgeID := range node.Edges {
				edge := arena.Edge(edgeID)
				if !edge.IsPlain() {
					if !sliceEdgeSeen[edgeID] {
						sliceEdgeSeen[edgeID] = true
						sliceEdges = append(sliceEdges, edgeID)
					}
					continue
				}

				other := edge.Dst
				if other == id {
					other = edge.Src
				}
				if other == id {
					// Self-loop: harmless, nothing further to visit.
					continue
				}
				if seen[other] {
					continue
				}
				seen[other] = true
				stack = append(stack, other)
			}
		}

		netIdx := len(res.Nets)
		res.Nets = append(res.Nets, net)
		for _, id := range net.Nodes {
			res.NetOf[id] = netIdx
		}
	}

	res.SliceEdges = sliceEdges

	if err := checkAtMostOneConstant(arena, res); err != nil {
		return nil, err
	}

	return res, nil
}

func checkAtMostOneConstant(arena *model.Arena, res *Result) error {
	for i, net := range res.Nets {
		var found *model.Node
		for _, id := range net.Nodes {
			node := arena.Node(id)
			if !node.IsConstant {
				continue
			}
			if found != nil {
				return fmt.Errorf("netbuild: net %d contains more than one constant (%s, %s)", i, found.Name, node.Name)
			}
			found = node
		}
	}
	return nil
}
