package rtlsim

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hwsim/rtlsim/model"
)

// NamedSignal pairs a declared node name with the node that backs it,
// for trace/diagnostic rendering.
type NamedSignal struct {
	Name string
	Node *model.Node
}

// NamedSignals recursively lists every port and wire of the model, depth
// first through submodules, the same order package netbuild walks.
func (s *Simulator) NamedSignals() []NamedSignal {
	nodes := s.arena.AllNodes(s.root)
	out := make([]NamedSignal, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NamedSignal{Name: n.Name, Node: n})
	}
	return out
}

// PrintLineTrace renders a signal-state table followed by the model's
// own LineTrace() string, in the teacher's core/util.go PrintState style
// (a go-pretty table per cycle's worth of state).
func (s *Simulator) PrintLineTrace(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("cycle %d", s.NCycles()))
	t.AppendHeader(table.Row{"Signal", "Width", "Value"})

	for _, ns := range s.NamedSignals() {
		if ns.Node.Signal == nil {
			t.AppendRow(table.Row{ns.Name, ns.Node.Width, "<unbound>"})
			continue
		}
		t.AppendRow(table.Row{ns.Name, ns.Node.Width, ns.Node.Signal.Read().String()})
	}

	t.Render()
	fmt.Fprintln(w, s.model.LineTrace())
}
