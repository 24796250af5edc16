// Package lint is an optional, out-of-hot-path static checker, run
// before rtlsim.New, never inside Cycle(). spec.md 4.F and §7 document
// that the CycleEngine itself does not detect combinational cycles — it
// only diverges on one. This package offers a best-effort pre-flight
// warning for the common case, in the same two-stage (STRUCT/TIMING
// Issue) shape as the teacher's own verify package, repurposed here from
// CGRA PE-mapping checks to RTL net-graph cycle detection.
package lint

import (
	"fmt"

	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/netbuild"
	"github.com/hwsim/rtlsim/sensitivity"
)

// IssueKind categorizes a lint finding.
type IssueKind string

const (
	// CombinationalCycle: a block's declared write-set feeds back, via
	// net connectivity and other blocks' declared read/write sets, into
	// its own declared read-set. Advisory only: Block.Writes is
	// optional metadata (see model.Block), so an undeclared write
	// cannot be seen by this checker — absence of a reported cycle is
	// not a correctness guarantee.
	CombinationalCycle IssueKind = "COMBINATIONAL_CYCLE"
	// MultipleConstants: a net would contain more than one structural
	// constant, which netbuild.Build rejects at construction time; lint
	// reports it earlier, before a Simulator is even attempted.
	MultipleConstants IssueKind = "MULTIPLE_CONSTANTS"
	// UnresolvedRead: a block's read-set path does not resolve under
	// the model's module tree (the same condition sensitivity.Bind logs
	// as a warning at construction time; lint surfaces it earlier).
	UnresolvedRead IssueKind = "UNRESOLVED_READ"
)

// Issue is one structural or timing finding, mirroring the teacher's
// verify.Issue shape.
type Issue struct {
	Kind    IssueKind
	Message string
	Path    []string // for CombinationalCycle, the cycle as net representative names
}

// Check runs every lint pass against m and returns all findings. It
// never mutates m and never constructs a Simulator.
func Check(m model.ModelRoot) []Issue {
	var issues []Issue

	arena := m.Arena()
	root := m.RootModule()

	netRes, err := netbuild.Build(arena, root)
	if err != nil {
		issues = append(issues, Issue{Kind: MultipleConstants, Message: err.Error()})
		return issues
	}

	issues = append(issues, checkUnresolvedReads(arena, root)...)
	issues = append(issues, checkCombinationalCycles(arena, root, netRes)...)

	return issues
}

func checkUnresolvedReads(arena *model.Arena, root *model.Module) []Issue {
	var issues []Issue
	for _, blk := range arena.AllCombinational(root) {
		for _, path := range blk.Reads {
			if _, err := sensitivity.ResolvePath(arena, root, path); err != nil {
				issues = append(issues, Issue{
					Kind:    UnresolvedRead,
					Message: fmt.Sprintf("block %s: read %q: %v", blk.Name, path, err),
				})
			}
		}
	}
	return issues
}

// checkCombinationalCycles builds a directed graph over nets — edge
// netOf(read) -> netOf(write) for every combinational block that
// declares both — and reports any cycle found by DFS with a recursion
// stack, the standard approach package katalvlaran-lvlath's own
// graph/dfs.go uses for cycle-shaped traversal, adapted here from a
// general graph walk to this module's net-identified adjacency.
func checkCombinationalCycles(arena *model.Arena, root *model.Module, netRes *netbuild.Result) []Issue {
	adj := make(map[int]map[int]bool)
	addEdge := func(from, to int) {
		if adj[from] == nil {
			adj[from] = make(map[int]bool)
		}
		adj[from][to] = true
	}

	for _, blk := range arena.AllCombinational(root) {
		if len(blk.Writes) == 0 {
			continue
		}
		readNets := resolveNets(arena, root, netRes, blk.Reads)
		writeNets := resolveNets(arena, root, netRes, blk.Writes)
		for r := range readNets {
			for w := range writeNets {
				addEdge(r, w)
			}
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[int]int)
	var issues []Issue

	var stack []int
	var visit func(n int) bool
	visit = func(n int) bool {
		color[n] = gray
		stack = append(stack, n)
		for next := range adj[n] {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case gray:
				stack = append(stack, next)
				issues = append(issues, Issue{
					Kind:    CombinationalCycle,
					Message: "declared combinational read/write sets form a cycle",
					Path:    netNames(arena, netRes, stack),
				})
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return false
	}

	for n := range adj {
		if color[n] == white {
			stack = nil
			visit(n)
		}
	}

	return issues
}

func resolveNets(arena *model.Arena, root *model.Module, netRes *netbuild.Result, paths []string) map[int]bool {
	out := make(map[int]bool)
	for _, p := range paths {
		nodes, err := sensitivity.ResolvePath(arena, root, p)
		if err != nil {
			continue
		}
		for _, n := range nodes {
			if idx, ok := netRes.NetOf[n.ID]; ok {
				out[idx] = true
			}
		}
	}
	return out
}

func netNames(arena *model.Arena, netRes *netbuild.Result, netIdxs []int) []string {
	names := make([]string, 0, len(netIdxs))
	for _, idx := range netIdxs {
		if idx < 0 || idx >= len(netRes.Nets) || len(netRes.Nets[idx].Nodes) == 0 {
			continue
		}
		names = append(names, arena.Node(netRes.Nets[idx].Nodes[0]).Name)
	}
	return names
}
