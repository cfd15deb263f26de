// Package graph implements the Graph Planner: it builds the typed node set
// from configuration and directives, resolves library aliases, orders nodes
// topologically, and records unresolved dependencies.
package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/forgec/forgec/internal/builderrs"
	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/layout"
)

// NodeKind discriminates a build unit's artifact shape.
type NodeKind int

const (
	SharedLibrary NodeKind = iota
	Executable
)

func (k NodeKind) String() string {
	if k == SharedLibrary {
		return "shared_library"
	}
	return "executable"
}

// OriginKind tags which configuration source produced a Node, replacing
// runtime downcasts with a small discriminated tag per SPEC_FULL.md §9.
type OriginKind int

const (
	OriginConfiguredShared OriginKind = iota
	OriginDirective
	OriginConfiguredTool
)

// Origin identifies where a Node came from and carries just enough of the
// source payload to look it back up.
type Origin struct {
	Kind          OriginKind
	Index         int    // valid for OriginConfiguredShared / OriginConfiguredTool
	DirectiveUnit string // valid for OriginDirective
}

// Node is a planner-internal build unit.
type Node struct {
	ID              string
	Kind            NodeKind
	RawDependencies []string
	Dependencies    []string // resolved node ids, deduped, insertion order preserved
	Origin          Origin
	OutputPath      string // resolved build artifact path, rooted at cfg.BinRoot

	// RawOutputPath is the unresolved output_path attribute as given by a
	// directive (its out() value, or bare unit-name if absent). It exists
	// only so buildAliasTable can register that raw spelling as an alias,
	// per spec.md §4.6 step 2 — it is never used to locate the artifact.
	RawOutputPath string
}

// Graph is the result of planning: the node set, its topological order, and
// any unresolved dependency tokens per node.
type Graph struct {
	Nodes      map[string]*Node
	Order      []string
	Unresolved map[string][]string
}

// GraphSummary is the serializable projection returned by Preview: no
// pointers, safe to encode or print without touching the live Graph.
type GraphSummary struct {
	IDs          []string
	Kinds        map[string]string
	RawDeps      map[string][]string
	ResolvedDeps map[string][]string
	Unresolved   map[string][]string
	Order        []string
}

// Plan builds the typed node set from cfg, resolves aliases, and returns a
// topologically ordered Graph. It performs no filesystem I/O.
func Plan(cfg *config.BuildConfig) (*Graph, error) {
	nodes, order, err := buildNodes(cfg)
	if err != nil {
		return nil, err
	}

	aliases := buildAliasTable(order, nodes)
	unresolved := resolveDependencies(order, nodes, aliases)

	topo, err := topologicalSort(order, nodes)
	if err != nil {
		return nil, err
	}

	return &Graph{Nodes: nodes, Order: topo, Unresolved: unresolved}, nil
}

// Preview is identical to Plan but returns a serializable projection and
// never mutates or persists anything; it is a pure re-derivation of Plan.
func Preview(cfg *config.BuildConfig) (*GraphSummary, error) {
	g, err := Plan(cfg)
	if err != nil {
		return nil, err
	}

	summary := &GraphSummary{
		Kinds:        make(map[string]string, len(g.Nodes)),
		RawDeps:      make(map[string][]string, len(g.Nodes)),
		ResolvedDeps: make(map[string][]string, len(g.Nodes)),
		Unresolved:   g.Unresolved,
		Order:        g.Order,
	}
	for _, id := range g.Order {
		n := g.Nodes[id]
		summary.IDs = append(summary.IDs, id)
		summary.Kinds[id] = n.Kind.String()
		summary.RawDeps[id] = n.RawDependencies
		summary.ResolvedDeps[id] = n.Dependencies
	}
	return summary, nil
}

// buildNodes constructs nodes in the order mandated by spec.md §4.6:
// configured shared libs, then directives, then configured tools. The
// returned order slice is the construction order (used to seed
// deterministic topological sort tie-breaking).
func buildNodes(cfg *config.BuildConfig) (map[string]*Node, []string, error) {
	nodes := make(map[string]*Node)
	var order []string

	addNode := func(n *Node) error {
		if _, exists := nodes[n.ID]; exists {
			return &builderrs.GraphError{Kind: "duplicate", Detail: n.ID}
		}
		nodes[n.ID] = n
		order = append(order, n.ID)
		return nil
	}

	for i, sl := range cfg.SharedLibs {
		if len(sl.Sources) == 0 {
			continue // elided at planning time; no notice is emitted for it
		}
		id := "shared:" + sl.Name
		outputDir := sl.OutputDir
		if outputDir == "" {
			outputDir = cfg.BinRoot + "/lib"
		}
		n := &Node{
			ID:              id,
			Kind:            SharedLibrary,
			RawDependencies: append([]string(nil), sl.Libraries...),
			Origin:          Origin{Kind: OriginConfiguredShared, Index: i},
			OutputPath:      outputDir + "/" + sl.Name + ".so",
		}
		if err := addNode(n); err != nil {
			return nil, nil, err
		}
	}

	for _, d := range cfg.Directives {
		kind := Executable
		if d.IsShared {
			kind = SharedLibrary
		}
		id := "directive:" + d.UnitName
		rawOutputPath := d.OutputPath
		if rawOutputPath == "" {
			rawOutputPath = d.UnitName
		}
		ext := ""
		if d.IsShared {
			ext = ".so"
		}
		dir, base := layout.DirectiveOutput(cfg.BinRoot, d)
		n := &Node{
			ID:              id,
			Kind:            kind,
			RawDependencies: append([]string(nil), d.DependsUnits...),
			Origin:          Origin{Kind: OriginDirective, DirectiveUnit: d.UnitName},
			OutputPath:      layout.FullPath(dir, base, ext),
			RawOutputPath:   rawOutputPath,
		}
		if err := addNode(n); err != nil {
			return nil, nil, err
		}
	}

	for i, t := range cfg.Tools {
		if len(t.Sources) == 0 {
			continue
		}
		id := "tool:" + t.Name
		outputDir := t.OutputDir
		if outputDir == "" {
			outputDir = cfg.BinRoot + "/tools"
		}
		n := &Node{
			ID:              id,
			Kind:            Executable,
			RawDependencies: append([]string(nil), t.Libraries...),
			Origin:          Origin{Kind: OriginConfiguredTool, Index: i},
			OutputPath:      outputDir + "/" + t.Name,
		}
		if err := addNode(n); err != nil {
			return nil, nil, err
		}
	}

	return nodes, order, nil
}

// buildAliasTable registers every user-facing spelling for each node, first
// registration wins, per spec.md §4.6. It is built once, immutably, after
// node construction; no mutex is needed since planning is single-threaded.
func buildAliasTable(order []string, nodes map[string]*Node) map[string]string {
	aliases := make(map[string]string)
	register := func(alias, id string) {
		if alias == "" {
			return
		}
		if _, exists := aliases[alias]; !exists {
			aliases[alias] = id
		}
	}

	for _, id := range order {
		n := nodes[id]
		switch n.Origin.Kind {
		case OriginConfiguredShared:
			name := strings.TrimPrefix(id, "shared:")
			register(name, id)
			register("lib/"+name, id)
			register(name+".so", id)
			register("lib/"+name+".so", id)
		case OriginDirective:
			unit := n.Origin.DirectiveUnit
			register(unit, id)
			segment := path.Base(unit)
			register(segment, id)
			if n.Kind == SharedLibrary {
				register(segment+".so", id)
			}
			if n.RawOutputPath != "" && n.RawOutputPath != unit {
				register(n.RawOutputPath, id)
			}
		case OriginConfiguredTool:
			name := strings.TrimPrefix(id, "tool:")
			register(name, id)
			register("tools/"+name, id)
		}
	}
	return aliases
}

// resolveDependencies fills in each node's Dependencies (deduped, order
// preserved) and returns the unresolved-token map, per spec.md §4.6's
// candidate resolution order.
func resolveDependencies(order []string, nodes map[string]*Node, aliases map[string]string) map[string][]string {
	unresolved := make(map[string][]string)

	for _, id := range order {
		n := nodes[id]
		seen := make(map[string]bool)
		var resolved []string

		for _, tok := range n.RawDependencies {
			resolvedID, ok := resolveToken(tok, aliases)
			if !ok {
				unresolved[n.ID] = append(unresolved[n.ID], tok)
				continue
			}
			if resolvedID == n.ID {
				continue // no self-edges
			}
			if !seen[resolvedID] {
				seen[resolvedID] = true
				resolved = append(resolved, resolvedID)
			}
		}
		n.Dependencies = resolved
	}
	return unresolved
}

func resolveToken(tok string, aliases map[string]string) (string, bool) {
	candidates := []string{tok}

	base := strings.TrimSuffix(tok, ".so")
	if base != tok {
		candidates = append(candidates, base)
	}
	if strings.HasPrefix(base, "lib/") {
		candidates = append(candidates, base[4:])
	}
	if strings.HasPrefix(tok, "lib/") {
		candidates = append(candidates, tok[4:])
	}
	if strings.Contains(tok, "/") {
		candidates = append(candidates, path.Base(tok))
	}

	for _, c := range candidates {
		if id, ok := aliases[c]; ok {
			return id, true
		}
	}
	return "", false
}

// topologicalSort implements Kahn's algorithm with deterministic FIFO
// ordering: the initial queue and each node's fan-out are both walked in
// node-construction order.
func topologicalSort(order []string, nodes map[string]*Node) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	fanout := make(map[string][]string, len(nodes))
	for _, id := range order {
		inDegree[id] = 0
		fanout[id] = nil
	}
	for _, id := range order {
		n := nodes[id]
		inDegree[id] = len(n.Dependencies)
		for _, dep := range n.Dependencies {
			fanout[dep] = append(fanout[dep], id)
		}
	}

	var queue []string
	for _, id := range order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var result []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, dependent := range fanout[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(nodes) {
		return nil, &builderrs.GraphError{Kind: "cycle", Detail: fmt.Sprintf("%d of %d nodes ordered", len(result), len(nodes))}
	}
	return result, nil
}
