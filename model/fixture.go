package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFixture mirrors the teacher's own core/program.go shape: a small
// set of YAML-tagged structs decoded with gopkg.in/yaml.v3, not a
// general-purpose schema language.
type yamlFixture struct {
	Name    string        `yaml:"name"`
	Modules []yamlModule  `yaml:"modules"`
	Reset   string        `yaml:"reset"` // name of a root-module node, or "" for none
}

type yamlModule struct {
	Name       string         `yaml:"name"`
	Parent     string         `yaml:"parent"`
	Ports      []yamlNode     `yaml:"ports"`
	Wires      []yamlNode     `yaml:"wires"`
	Constants  []yamlConstant `yaml:"constants"`
	Edges      []yamlEdge     `yaml:"edges"`
	Blocks     []yamlBlock    `yaml:"blocks"`
}

type yamlNode struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
	Dir   string `yaml:"dir"`
}

type yamlConstant struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
	Value uint64 `yaml:"value"`
}

type yamlEdge struct {
	Src      string `yaml:"src"`
	Dst      string `yaml:"dst"`
	SrcRange []int  `yaml:"src_range"`
	DstRange []int  `yaml:"dst_range"`
}

type yamlBlock struct {
	Kind     string            `yaml:"kind"`
	Name     string            `yaml:"name"`
	Sequence string            `yaml:"sequence"` // "comb", "tick", or "posedge"
	Params   map[string]string `yaml:"params"`
}

// LoadFixture decodes a YAML-described module tree into a ModelRoot,
// already marked elaborated. It is intentionally small: enough to
// express the structural/behavioral shapes this repository's tests and
// examples need, not a general hardware-description format (that is the
// external front-end's job per spec.md §1).
func LoadFixture(path string) (*Root, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: reading fixture %s: %w", path, err)
	}
	var fx yamlFixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("model: parsing fixture %s: %w", path, err)
	}
	return BuildFixture(fx)
}

// BuildFixture performs the decode → arena-build step LoadFixture wraps
// around a file. Its parameter type is unexported, so only code inside
// package model can call it.
func BuildFixture(fx yamlFixture) (*Root, error) {
	arena := NewArena()

	modsByName := make(map[string]*Module)
	nodesByModule := make(map[string]map[string]NodeID)

	// Pass 1: create modules (parent links resolved after all exist).
	for _, ym := range fx.Modules {
		m := &Module{Name: ym.Name, ParentID: NoModule}
		arena.AddModule(m)
		modsByName[ym.Name] = m
		nodesByModule[ym.Name] = make(map[string]NodeID)
	}

	var rootModule *Module
	for _, ym := range fx.Modules {
		m := modsByName[ym.Name]
		if ym.Parent == "" {
			if rootModule != nil {
				return nil, fmt.Errorf("model: fixture %s declares more than one root module", fx.Name)
			}
			rootModule = m
			continue
		}
		parent, ok := modsByName[ym.Parent]
		if !ok {
			return nil, fmt.Errorf("model: module %s has unknown parent %s", ym.Name, ym.Parent)
		}
		m.ParentID = parent.ID
		parent.Submodules = append(parent.Submodules, m.ID)
	}
	if rootModule == nil {
		return nil, fmt.Errorf("model: fixture %s declares no root module", fx.Name)
	}

	// Pass 2: nodes (ports, wires, constants).
	for _, ym := range fx.Modules {
		m := modsByName[ym.Name]
		names := nodesByModule[ym.Name]

		addPort := func(yn yamlNode) {
			dir := Wire
			switch yn.Dir {
			case "input":
				dir = Input
			case "output":
				dir = Output
			}
			id := arena.AddNode(&Node{Name: yn.Name, Width: yn.Width, ParentID: m.ID, Dir: dir})
			names[yn.Name] = id
			m.Ports = append(m.Ports, id)
		}
		for _, yn := range ym.Ports {
			addPort(yn)
		}
		for _, yn := range ym.Wires {
			id := arena.AddNode(&Node{Name: yn.Name, Width: yn.Width, ParentID: m.ID})
			names[yn.Name] = id
			m.Wires = append(m.Wires, id)
		}
		for _, yc := range ym.Constants {
			id := arena.AddNode(&Node{
				Name: yc.Name, Width: yc.Width, ParentID: m.ID,
				IsConstant: true, ConstValue: yc.Value,
			})
			names[yc.Name] = id
			// Constants live in the same namespace as wires for lookup
			// purposes but are not simulation-visible state the module
			// "owns" as a wire; SignalBinder does not append it to
			// m.Wires (it has no rewrite target).
		}
	}

	// Pass 3: edges.
	for _, ym := range fx.Modules {
		m := modsByName[ym.Name]
		names := nodesByModule[ym.Name]
		resolve := func(n string) (NodeID, error) {
			id, ok := names[n]
			if !ok {
				return 0, fmt.Errorf("model: module %s: unknown node %q", m.Name, n)
			}
			return id, nil
		}
		for _, ye := range ym.Edges {
			srcID, err := resolve(ye.Src)
			if err != nil {
				return nil, err
			}
			dstID, err := resolve(ye.Dst)
			if err != nil {
				return nil, err
			}
			edge := &Edge{Src: srcID, Dst: dstID}
			if len(ye.SrcRange) == 2 {
				edge.SrcRange = &Range{Start: ye.SrcRange[0], End: ye.SrcRange[1]}
			}
			if len(ye.DstRange) == 2 {
				edge.DstRange = &Range{Start: ye.DstRange[0], End: ye.DstRange[1]}
			}
			if _, err := arena.AddEdge(edge); err != nil {
				return nil, err
			}
		}
	}

	// Pass 4: blocks.
	for _, ym := range fx.Modules {
		m := modsByName[ym.Name]
		names := nodesByModule[ym.Name]
		resolve := func(n string) (*Node, error) {
			id, ok := names[n]
			if !ok {
				return nil, fmt.Errorf("model: module %s: unknown node %q", m.Name, n)
			}
			return arena.Node(id), nil
		}
		for _, yb := range ym.Blocks {
			blk, err := buildBlock(yb.Kind, yb.Name, yb.Params, resolve)
			if err != nil {
				return nil, err
			}
			switch yb.Sequence {
			case "", "comb":
				m.Combinational = append(m.Combinational, blk)
			case "tick":
				m.TickBlocks = append(m.TickBlocks, blk)
			case "posedge":
				m.PosedgeClkBlocks = append(m.PosedgeClkBlocks, blk)
			default:
				return nil, fmt.Errorf("model: block %s: unknown sequence %q", yb.Name, yb.Sequence)
			}
		}
	}

	root := NewRoot(arena, rootModule, fx.Name)
	if fx.Reset != "" {
		id, ok := nodesByModule[rootModule.Name][fx.Reset]
		if !ok {
			return nil, fmt.Errorf("model: reset node %q not found in root module", fx.Reset)
		}
		root.SetReset(id)
	}
	root.MarkElaborated()
	return root, nil
}
