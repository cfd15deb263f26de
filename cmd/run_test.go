package cmd

import (
	"testing"

	"github.com/forgec/forgec/internal/graph"
)

func fakeGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: map[string]*graph.Node{
			"shared:core": {ID: "shared:core", Kind: graph.SharedLibrary, OutputPath: "bin/lib/core.so"},
			"tool:app":    {ID: "tool:app", Kind: graph.Executable, OutputPath: "bin/tools/app"},
			"tool:other":  {ID: "tool:other", Kind: graph.Executable, OutputPath: "bin/tools/other"},
		},
		Order: []string{"shared:core", "tool:app", "tool:other"},
	}
}

func TestFindToolByName(t *testing.T) {
	g := fakeGraph()
	n := findTool(g, "app")
	if n == nil || n.ID != "tool:app" {
		t.Fatalf("findTool(app) = %v, want tool:app", n)
	}
}

func TestFindToolDefaultsToFirstExecutableInOrder(t *testing.T) {
	g := fakeGraph()
	n := findTool(g, "")
	if n == nil || n.ID != "tool:app" {
		t.Fatalf("findTool(\"\") = %v, want the first executable in build order (tool:app)", n)
	}
}

func TestFindToolUnknownNameReturnsNil(t *testing.T) {
	g := fakeGraph()
	if n := findTool(g, "ghost"); n != nil {
		t.Errorf("findTool(ghost) = %v, want nil", n)
	}
}

func TestFindToolSkipsSharedLibraries(t *testing.T) {
	g := &graph.Graph{
		Nodes: map[string]*graph.Node{
			"shared:core": {ID: "shared:core", Kind: graph.SharedLibrary},
		},
		Order: []string{"shared:core"},
	}
	if n := findTool(g, ""); n != nil {
		t.Errorf("findTool on a graph with no executables = %v, want nil", n)
	}
}
