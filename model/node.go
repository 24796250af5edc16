package model

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hwsim/rtlsim/signal"
)

// Direction distinguishes input/output ports from internal wires. It has
// no bearing on net construction (spec.md's plain-edge connectivity is
// direction-agnostic) but is useful metadata for trace/diagnostics.
type Direction int

const (
	Wire Direction = iota
	Input
	Output
)

// Node is a port or internal wire, or a structural constant. Constant
// nodes are created with IsConstant true and carry no incident edges of
// their own (spec.md §3: "Has an empty incident-edge list") — they are
// only ever reached as the far endpoint of another node's edge.
type Node struct {
	ID       NodeID
	Name     string
	Width    int
	ParentID ModuleID
	Dir      Direction
	Edges    []EdgeID

	IsConstant bool
	ConstValue uint64

	// Signal is populated by the SignalBinder once the node's net is
	// known; it is the "handle patched at binding time" spec.md §9
	// recommends instead of model regeneration. Behavioral blocks close
	// over *Node, not *signal.Value, precisely so they observe this
	// patch.
	Signal *signal.Value
}

// listElemName matches a list-element node name like "slots[3]".
var listElemName = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// SplitListElement reports whether name denotes a list element and, if
// so, returns the base list name and the numeric index.
func SplitListElement(name string) (base string, index int, ok bool) {
	m := listElemName.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], idx, true
}

// Edge is a directed structural connection. It is plain when both Range
// pointers are nil, and a slice edge otherwise.
type Edge struct {
	ID  EdgeID
	Src NodeID
	Dst NodeID

	SrcRange *Range
	DstRange *Range
}

// IsPlain reports whether this is a plain (non-sliced) edge.
func (e *Edge) IsPlain() bool { return e.SrcRange == nil && e.DstRange == nil }

// Block is a user-defined behavioral procedure: a combinational block
// (Reads triggers re-evaluation) or a sequential block (Tick/PosedgeClk,
// run unconditionally once per cycle). Fn is stored as interface{}
// rather than a fixed func() error so the engine can detect and report a
// BlockSignature error (a block mistakenly declared with parameters) via
// reflection at registration time, the way the source model's
// dynamically-typed block definitions could go wrong.
type Block struct {
	Name  string
	Reads []string // dotted canonical paths; see sensitivity.ResolvePath
	// Writes is optional, lint-only metadata: the canonical paths this
	// combinational block's body writes. The core simulator never reads
	// it — a block's write behavior is opaque to the engine by design
	// (spec.md 4.F only cares that invocation mutates signals through
	// WriteComb) — package lint uses it for a best-effort
	// combinational-cycle pre-flight check.
	Writes []string
	File string
	Line int
	Fn   interface{} // must reflect as func() error
}

func (b *Block) String() string {
	return fmt.Sprintf("%s (%s:%d)", b.Name, b.File, b.Line)
}

// Module is a node in the elaborated module tree.
type Module struct {
	ID       ModuleID
	Name     string
	ParentID ModuleID

	Ports []NodeID
	Wires []NodeID

	Submodules []ModuleID

	Combinational    []*Block
	TickBlocks       []*Block
	PosedgeClkBlocks []*Block
}

// Arena owns every Node/Edge/Module by integer ID, per spec.md §9's
// "Pointer/ownership re-architecture" note: the node graph is cyclic
// (edges reference nodes both ways), so it is stored as flat,
// ID-addressed slices rather than as Go pointers forming reference
// cycles.
type Arena struct {
	Nodes   []*Node
	Edges   []*Edge
	Modules []*Module
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// AddNode appends n to the arena and assigns its ID.
func (a *Arena) AddNode(n *Node) NodeID {
	n.ID = NodeID(len(a.Nodes))
	a.Nodes = append(a.Nodes, n)
	return n.ID
}

// AddModule appends m to the arena and assigns its ID.
func (a *Arena) AddModule(m *Module) ModuleID {
	m.ID = ModuleID(len(a.Modules))
	a.Modules = append(a.Modules, m)
	return m.ID
}

// AddEdge appends e, assigns its ID, and attaches it to the incident-edge
// list of each non-constant endpoint (constant nodes keep an empty edge
// list by design; see Node's doc comment).
func (a *Arena) AddEdge(e *Edge) (EdgeID, error) {
	src, dst := a.Node(e.Src), a.Node(e.Dst)
	if e.IsPlain() && src.Width != dst.Width {
		return 0, fmt.Errorf("%w: edge %s -> %s: %d != %d", ErrWidthMismatch, src.Name, dst.Name, src.Width, dst.Width)
	}
	if !e.IsPlain() {
		srcWidth, dstWidth := src.Width, dst.Width
		if e.SrcRange != nil {
			srcWidth = e.SrcRange.Width()
		}
		if e.DstRange != nil {
			dstWidth = e.DstRange.Width()
		}
		if srcWidth != dstWidth {
			return 0, fmt.Errorf("%w: slice edge %s -> %s: %d != %d", ErrWidthMismatch, src.Name, dst.Name, srcWidth, dstWidth)
		}
	}

	e.ID = EdgeID(len(a.Edges))
	a.Edges = append(a.Edges, e)

	if !src.IsConstant {
		src.Edges = append(src.Edges, e.ID)
	}
	if !dst.IsConstant {
		dst.Edges = append(dst.Edges, e.ID)
	}

	return e.ID, nil
}

// Node dereferences id.
func (a *Arena) Node(id NodeID) *Node { return a.Nodes[id] }

// Edge dereferences id.
func (a *Arena) Edge(id EdgeID) *Edge { return a.Edges[id] }

// Module dereferences id.
func (a *Arena) Module(id ModuleID) *Module { return a.Modules[id] }

// AllNodes recursively collects every port and wire from m and its
// submodules, depth-first, matching the traversal order sequential
// blocks are gathered in (declaration order, depth-first by module
// tree).
func (a *Arena) AllNodes(m *Module) []*Node {
	var out []*Node
	for _, id := range m.Ports {
		out = append(out, a.Node(id))
	}
	for _, id := range m.Wires {
		out = append(out, a.Node(id))
	}
	for _, subID := range m.Submodules {
		out = append(out, a.AllNodes(a.Module(subID))...)
	}
	return out
}

// AllCombinational recursively collects combinational blocks, depth-first
// by module tree, then by declaration order within a module.
func (a *Arena) AllCombinational(m *Module) []*Block {
	out := append([]*Block{}, m.Combinational...)
	for _, subID := range m.Submodules {
		out = append(out, a.AllCombinational(a.Module(subID))...)
	}
	return out
}

// AllSequential recursively gathers the union of tick and posedge-clk
// blocks, depth-first by module tree then declaration order, per
// spec.md 4.E.
func (a *Arena) AllSequential(m *Module) []*Block {
	out := append([]*Block{}, m.TickBlocks...)
	out = append(out, m.PosedgeClkBlocks...)
	for _, subID := range m.Submodules {
		out = append(out, a.AllSequential(a.Module(subID))...)
	}
	return out
}
