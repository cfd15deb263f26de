// Package executor implements the Build Executor: it creates output
// directories, schedules compile tasks on a bounded worker pool, performs
// link steps in graph order, and emits dependency records.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/fetch"
	"github.com/forgec/forgec/internal/graph"
	"github.com/forgec/forgec/internal/msg"
	"github.com/forgec/forgec/internal/stale"
	"github.com/forgec/forgec/internal/toolchain"
)

// Executor runs a planned Graph against a BuildConfig and a Toolchain.
type Executor struct {
	cfg *config.BuildConfig
	tc  toolchain.Toolchain
}

// New constructs an Executor.
func New(cfg *config.BuildConfig, tc toolchain.Toolchain) *Executor {
	return &Executor{cfg: cfg, tc: tc}
}

// compileTask is one (source, object) pair queued for the compile phase.
type compileTask struct {
	nodeID string
	source string
	object string
	argv   []string
}

// Execute runs the entire build: directory setup, a bounded-parallel
// compile phase across all nodes, then a serial per-node link phase in
// graph order, per spec.md §4.8/§5.
func (e *Executor) Execute(g *graph.Graph) error {
	if err := e.ensureDirectories(); err != nil {
		return err
	}

	if err := e.resolveDependencies(); err != nil {
		return err
	}

	for id, tokens := range g.Unresolved {
		for _, tok := range tokens {
			msg.Warn("%s: unresolved dependency %q", id, tok)
		}
	}

	units := make(map[string]unitParams, len(g.Order))
	for _, id := range g.Order {
		units[id] = resolveUnit(e.cfg, g.Nodes[id])
	}

	objectsByNode, err := e.compileAll(g, units)
	if err != nil {
		return err
	}

	for _, id := range g.Order {
		node := g.Nodes[id]
		u := units[id]
		if !u.found {
			continue
		}
		if err := e.link(node, u, objectsByNode[id]); err != nil {
			return err
		}
	}

	fmt.Println("Build completed successfully!")
	return nil
}

// resolveDependencies fetches every [dependencies] entry and appends its
// conventional include/ and lib/ subdirectories to the global search paths
// so fetched headers and libraries are visible to every compile/link step.
func (e *Executor) resolveDependencies() error {
	if len(e.cfg.Dependencies) == 0 {
		return nil
	}

	paths, err := fetch.Resolve(e.cfg)
	if err != nil {
		return err
	}

	for _, dep := range e.cfg.Dependencies {
		root, ok := paths[dep.Name]
		if !ok {
			continue
		}
		if include := filepath.Join(root, "include"); dirExists(include) {
			e.cfg.GlobalIncludeDir = append(e.cfg.GlobalIncludeDir, include)
		}
		if lib := filepath.Join(root, "lib"); dirExists(lib) {
			e.cfg.GlobalLibPaths = append(e.cfg.GlobalLibPaths, lib)
		}
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (e *Executor) ensureDirectories() error {
	dirs := []string{
		e.cfg.BuildRoot,
		e.cfg.BinRoot,
		filepath.Join(e.cfg.BinRoot, "lib"),
		filepath.Join(e.cfg.BinRoot, "tools"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// compileAll runs the bounded-parallel compile phase across every node's
// stale sources, then collates each node's results back into its original
// source order before returning, per spec.md §5.
func (e *Executor) compileAll(g *graph.Graph, units map[string]unitParams) (map[string][]string, error) {
	var tasks []compileTask
	objectsByNode := make(map[string][]string, len(g.Order))

	for _, id := range g.Order {
		u := units[id]
		if !u.found {
			continue
		}
		objs := make([]string, len(u.sources))
		for i, src := range u.sources {
			obj := objectPath(e.cfg.BuildRoot, u.objDirName, src)
			objs[i] = obj

			if stale.NeedsRecompile(src, obj) {
				argv := e.tc.CompileCommand(toolchain.CompileOptions{
					GlobalIncludeDirs: e.cfg.GlobalIncludeDir,
					GlobalLibPaths:    e.cfg.GlobalLibPaths,
					UnitIncludeDirs:   u.includeDirs,
					Debug:             u.debug,
					Optimize:          u.optimize,
					Shared:            g.Nodes[id].Kind == graph.SharedLibrary,
					Cflags:            u.cflags,
					Source:            src,
					Object:            obj,
				})
				tasks = append(tasks, compileTask{nodeID: id, source: src, object: obj, argv: argv})
			}
		}
		objectsByNode[id] = objs
	}

	if len(tasks) == 0 {
		return objectsByNode, nil
	}

	limit := len(tasks)
	if n := runtime.NumCPU(); n < limit {
		limit = n
	}
	if !e.cfg.ParallelCompilation || limit < 2 {
		limit = 1
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(limit)

	for _, t := range tasks {
		t := t
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil // coordinator has already recorded a failure; stop starting new work
			}
			return runCompile(t.argv, t.source, t.object)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return objectsByNode, nil
}

func (e *Executor) link(n *graph.Node, u unitParams, objects []string) error {
	ext := ""
	if n.Kind == graph.SharedLibrary {
		ext = ".so"
	}

	opts := toolchain.LinkOptions{
		BinRoot:         e.cfg.BinRoot,
		OutputDir:       u.outputDir,
		OutputBase:      u.outputBase,
		Ext:             ext,
		Objects:         objects,
		GlobalLibPaths:  e.cfg.GlobalLibPaths,
		GlobalLibraries: e.cfg.GlobalLibraries,
		UnitLibraries:   u.libraries,
		GlobalLdflags:   e.cfg.GlobalLdflags,
		UnitLdflags:     u.ldflags,
		Debug:           u.debug,
		StaticLink:      u.staticLink,
	}

	var argv []string
	if n.Kind == graph.SharedLibrary {
		argv = e.tc.SharedLinkCommand(opts)
	} else {
		argv = e.tc.ToolLinkCommand(opts)
	}

	if err := runLink(argv); err != nil {
		return err
	}

	if n.Kind == graph.SharedLibrary && (e.cfg.StaticLink || anyToolWantsStatic(e.cfg)) {
		archivePath := filepath.Join(u.outputDir, u.outputBase+".a")
		if err := runArchive(objects, archivePath); err != nil {
			return err
		}
	}

	return nil
}

func anyToolWantsStatic(cfg *config.BuildConfig) bool {
	for _, t := range cfg.Tools {
		if t.StaticLink != nil && *t.StaticLink {
			return true
		}
	}
	return false
}
