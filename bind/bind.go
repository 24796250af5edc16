// Package bind implements the SignalBinder: one signal.Value per net,
// installed on every member node (spec.md §4.C). This is the second
// elaboration-to-simulation lowering stage, run after package netbuild.
package bind

import (
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/netbuild"
	"github.com/hwsim/rtlsim/signal"
)

// Bind creates one signal.Value per net in res and installs it on every
// member node's Signal field — the "indirection" strategy from spec.md
// §9: nodes, and the behavioral blocks that close over them, transparently
// observe the shared signal once this returns. notifier is supplied by
// package engine; bind never constructs one itself (package bind does not
// import package engine, avoiding a cycle — the CycleEngine is what
// drives signal.Value, not the other way around).
func Bind(arena *model.Arena, res *netbuild.Result, notifier signal.Notifier) error {
	for _, net := range res.Nets {
		if len(net.Nodes) == 0 {
			continue
		}
		width := arena.Node(net.Nodes[0]).Width

		constNode, hasConst := net.HasConstant(arena)

		val := signal.New(width, notifier)
		if hasConst {
			val.MarkConstant(signal.FromUint64(width, constNode.ConstValue))
		}

		for _, id := range net.Nodes {
			node := arena.Node(id)
			node.Signal = val
		}
	}
	return nil
}

// Node.Signal *is* the module-visible handle here (spec.md §9's
// "indirection" strategy (a)): assigning it above already makes every
// reference to the node resolve to the shared signal, for both the
// scalar-node and list-element-node cases spec.md 4.C distinguishes. A
// front-end that instead keeps ports in a separate per-module slice
// (strategy (b)'s territory) would overwrite that slice's slot here,
// parsing a list index out of the node's name with
// model.SplitListElement; this repository's own ModelRoot has no such
// separate slice to patch.
