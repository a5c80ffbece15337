package depgraph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNoopRenderWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")

	var r Renderer = Noop{}
	if err := r.Render(map[string]map[string]bool{"a": {"b": true}}, path); err != nil {
		t.Fatalf("Noop render: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Noop renderer must not create a file")
	}
}

func TestDOTRenderEmptyMapWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")

	if err := (DOT{}).Render(map[string]map[string]bool{}, path); err != nil {
		t.Fatalf("render empty map: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty dependency map must not produce a file")
	}
}

func TestDOTRenderWritesGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")
	deps := map[string]map[string]bool{
		"app":        {"src.solver": true, "src.loader": true},
		"src.solver": {"src.loader": true},
	}

	if err := (DOT{}).Render(deps, path); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"digraph codebase_dependency_map",
		"app",
		"src.solver",
		"src.loader",
		"style=filled",
		"/blues9/",
		"->",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
}

func TestDOTRenderSkipsSelfLoops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")
	deps := map[string]map[string]bool{
		"core": {"core": true},
	}

	if err := (DOT{}).Render(deps, path); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(data), "->") {
		t.Error("self-import must not produce an edge")
	}
}

func TestDOTRenderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	deps := map[string]map[string]bool{
		"a": {"b": true, "c": true},
		"b": {"c": true},
		"d": {"a": true},
	}

	first := filepath.Join(dir, "one.dot")
	second := filepath.Join(dir, "two.dot")
	if err := (DOT{}).Render(deps, first); err != nil {
		t.Fatal(err)
	}
	if err := (DOT{}).Render(deps, second); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("identical inputs produced different DOT output")
	}
}

func TestNodeNamesIncludesTargetsOnlySeenAsTargets(t *testing.T) {
	names := nodeNames(map[string]map[string]bool{
		"b": {"a": true},
	})
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("nodeNames = %v, want [a b]", names)
	}
}

func TestModuleNodeAttributesScaleWithInDegree(t *testing.T) {
	attrs := func(n moduleNode, key string) string {
		for _, a := range n.Attributes() {
			if a.Key == key {
				return a.Value
			}
		}
		return ""
	}

	leaf := moduleNode{name: "leaf"}
	if got := attrs(leaf, "fillcolor"); got != "/blues9/1" {
		t.Errorf("fillcolor for in-degree 0 = %q", got)
	}
	hub := moduleNode{name: "hub", inDegree: 20}
	if got := attrs(hub, "fillcolor"); got != "/blues9/9" {
		t.Errorf("fillcolor must cap at /blues9/9, got %q", got)
	}
	if got := attrs(hub, "width"); got != "7.00" {
		t.Errorf("width for in-degree 20 = %q", got)
	}
}
