// Package depgraph renders the module dependency adjacency map as a
// Graphviz DOT file. Rendering is optional: the engine's output is the
// same whether a real renderer or the no-op is composed in.
package depgraph

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// Renderer draws a dependency adjacency map to a file.
type Renderer interface {
	// Render writes a visualization of deps (source module -> target set)
	// to path. An empty adjacency map writes nothing.
	Render(deps map[string]map[string]bool, path string) error
}

// Noop is the fallback renderer selected when visualization is disabled.
type Noop struct{}

// Render does nothing.
func (Noop) Render(map[string]map[string]bool, string) error {
	return nil
}

// DOT renders the dependency map as a Graphviz digraph. Each edge runs from
// the importing module to the module it imports; node size and fill shade
// scale with in-degree, so heavily depended-on modules stand out.
type DOT struct{}

// moduleNode is a graph node carrying its DOT identity and attributes.
type moduleNode struct {
	id       int64
	name     string
	inDegree int
}

func (n moduleNode) ID() int64 {
	return n.id
}

func (n moduleNode) DOTID() string {
	return n.name
}

func (n moduleNode) Attributes() []encoding.Attribute {
	shade := n.inDegree + 1
	if shade > 9 {
		shade = 9
	}
	return []encoding.Attribute{
		{Key: "style", Value: "filled"},
		{Key: "fillcolor", Value: fmt.Sprintf("/blues9/%d", shade)},
		{Key: "width", Value: fmt.Sprintf("%.2f", 1.0+0.3*float64(n.inDegree))},
	}
}

// Render writes the DOT file. Node and edge order is deterministic: modules
// are added in lexical order.
func (DOT) Render(deps map[string]map[string]bool, path string) error {
	names := nodeNames(deps)
	if len(names) == 0 {
		return nil
	}

	inDegree := make(map[string]int, len(names))
	for _, targets := range deps {
		for target := range targets {
			inDegree[target]++
		}
	}

	g := simple.NewDirectedGraph()
	nodes := make(map[string]moduleNode, len(names))
	for i, name := range names {
		node := moduleNode{id: int64(i), name: name, inDegree: inDegree[name]}
		nodes[name] = node
		g.AddNode(node)
	}

	for _, source := range names {
		for _, target := range sortedSet(deps[source]) {
			if source == target {
				continue
			}
			g.SetEdge(g.NewEdge(nodes[source], nodes[target]))
		}
	}

	data, err := dot.Marshal(g, "codebase_dependency_map", "", "  ")
	if err != nil {
		return fmt.Errorf("encode dependency graph: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// nodeNames collects every module that appears as a source or a target.
func nodeNames(deps map[string]map[string]bool) []string {
	seen := make(map[string]bool)
	for source, targets := range deps {
		seen[source] = true
		for target := range targets {
			seen[target] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
