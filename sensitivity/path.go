package sensitivity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hwsim/rtlsim/model"
)

// ResolvePath resolves a canonical dotted read-set path to the node(s)
// it denotes, per SPEC_FULL.md's resolution of spec.md §9's Open
// Question 2: dotted segments navigate the module tree by submodule
// name, the final segment names a port/wire, and a trailing "[*]" on the
// final segment expands to every element of that list (replacing the
// source language's "[?]" wildcard and ".uint" stripping, which were
// artefacts of its extractor, not a property of the model).
func ResolvePath(arena *model.Arena, root *model.Module, path string) ([]*model.Node, error) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 || segments[0] == "" {
		return nil, fmt.Errorf("sensitivity: empty path")
	}

	current := root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := findSubmodule(arena, current, seg)
		if !ok {
			return nil, fmt.Errorf("sensitivity: no submodule %q under %q", seg, current.Name)
		}
		current = next
	}

	last := segments[len(segments)-1]
	if strings.HasSuffix(last, "[*]") {
		base := strings.TrimSuffix(last, "[*]")
		nodes := findListNodes(arena, current, base)
		if len(nodes) == 0 {
			return nil, fmt.Errorf("sensitivity: no list elements for %q under %q", base, current.Name)
		}
		return nodes, nil
	}

	node, ok := findNode(arena, current, last)
	if !ok {
		return nil, fmt.Errorf("sensitivity: no node %q under %q", last, current.Name)
	}
	return []*model.Node{node}, nil
}

func findSubmodule(arena *model.Arena, m *model.Module, name string) (*model.Module, bool) {
	for _, id := range m.Submodules {
		sub := arena.Module(id)
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

func findNode(arena *model.Arena, m *model.Module, name string) (*model.Node, bool) {
	for _, id := range m.Ports {
		if n := arena.Node(id); n.Name == name {
			return n, true
		}
	}
	for _, id := range m.Wires {
		if n := arena.Node(id); n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func findListNodes(arena *model.Arena, m *model.Module, base string) []*model.Node {
	type indexed struct {
		idx  int
		node *model.Node
	}
	var found []indexed
	collect := func(ids []model.NodeID) {
		for _, id := range ids {
			n := arena.Node(id)
			b, idx, ok := model.SplitListElement(n.Name)
			if ok && b == base {
				found = append(found, indexed{idx, n})
			}
		}
	}
	collect(m.Ports)
	collect(m.Wires)

	sort.Slice(found, func(i, j int) bool { return found[i].idx < found[j].idx })

	nodes := make([]*model.Node, len(found))
	for i, f := range found {
		nodes[i] = f.node
	}
	return nodes
}
