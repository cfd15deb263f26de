package executor

import (
	"path/filepath"
	"strings"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/directive"
	"github.com/forgec/forgec/internal/graph"
	"github.com/forgec/forgec/internal/layout"
	"github.com/forgec/forgec/internal/msg"
)

// unitParams is the per-node view the executor needs: the node's own source
// list, link tokens, flags, and resolved output location. It flattens the
// origin-specific config lookups into one shape so the rest of the executor
// never switches on graph.OriginKind again.
type unitParams struct {
	sources     []string // paths as given in config/directive, not yet resolved to absolute
	libraries   []string
	cflags      []string
	ldflags     []string
	includeDirs []string
	outputDir   string
	outputBase  string
	debug       bool
	optimize    bool
	staticLink  bool
	objDirName  string // name of the build/<objDirName>/ directory
	found       bool   // false only for a directive whose source file is missing
}

// resolveUnit derives unitParams for a node, looking up its origin's
// concrete config or directive. Directive nodes require locating their
// source file under the source root, per spec.md §4.8.
func resolveUnit(cfg *config.BuildConfig, n *graph.Node) unitParams {
	switch n.Origin.Kind {
	case graph.OriginConfiguredShared:
		sl := cfg.SharedLibs[n.Origin.Index]
		outDir := sl.OutputDir
		if outDir == "" {
			outDir = cfg.BinRoot + "/lib"
		}
		return unitParams{
			sources: sl.Sources, libraries: sl.Libraries, cflags: sl.Cflags,
			ldflags: sl.Ldflags, includeDirs: sl.IncludeDirs,
			outputDir: outDir, outputBase: sl.Name,
			debug: sl.Debug, optimize: sl.Optimize,
			staticLink: cfg.StaticLink, objDirName: sl.Name, found: true,
		}

	case graph.OriginConfiguredTool:
		t := cfg.Tools[n.Origin.Index]
		outDir := t.OutputDir
		if outDir == "" {
			outDir = cfg.BinRoot + "/tools"
		}
		static := cfg.StaticLink
		if t.StaticLink != nil {
			static = *t.StaticLink
		}
		return unitParams{
			sources: t.Sources, libraries: t.Libraries, cflags: t.Cflags,
			ldflags: t.Ldflags, includeDirs: t.IncludeDirs,
			outputDir: outDir, outputBase: t.Name,
			debug: t.Debug, optimize: t.Optimize,
			staticLink: static, objDirName: t.Name, found: true,
		}

	case graph.OriginDirective:
		return resolveDirectiveUnit(cfg, n)
	}
	return unitParams{}
}

// resolveDirectiveUnit locates a directive's source file per spec.md §4.8:
// try <unit_name>.{cpp,cc,cxx} then <basename(unit_name)>.{cpp,cc,cxx} under
// the source root, in that order, until one exists.
func resolveDirectiveUnit(cfg *config.BuildConfig, n *graph.Node) unitParams {
	unit := n.Origin.DirectiveUnit
	var d *directive.BuildDirective
	for i := range cfg.Directives {
		if cfg.Directives[i].UnitName == unit {
			d = &cfg.Directives[i]
			break
		}
	}
	if d == nil {
		return unitParams{}
	}

	candidates := []string{unit, filepath.Base(unit)}
	exts := []string{".cpp", ".cc", ".cxx"}

	var found string
	for _, cand := range candidates {
		for _, ext := range exts {
			p := filepath.Join(cfg.SourceRoot, cand+ext)
			if fileExists(p) {
				found = p
				break
			}
		}
		if found != "" {
			break
		}
	}

	if found == "" {
		msg.Warn("could not locate source for directive unit %q under %s, skipping", unit, cfg.SourceRoot)
		return unitParams{}
	}

	static := cfg.StaticLink
	if d.StaticLink != nil {
		static = *d.StaticLink
	}

	outputDir, base := layout.DirectiveOutput(cfg.BinRoot, *d)

	return unitParams{
		sources: []string{found}, libraries: d.LinkLibs,
		cflags: d.Cflags, ldflags: d.Ldflags,
		outputDir: outputDir, outputBase: base,
		staticLink: static, objDirName: strings.ReplaceAll(unit, "/", "_"), found: true,
	}
}

// objectPath implements spec.md §4.8's object-file path rule: strip a
// leading "src/" or "./src/" component from the source path, take the
// basename minus extension, append ".o", join under the node's object
// directory. This intentionally strips only a front-anchored prefix,
// never a substring replace, per SPEC_FULL.md §9.
func objectPath(buildRoot, objDirName, sourcePath string) string {
	trimmed := strings.TrimPrefix(sourcePath, "./src/")
	trimmed = strings.TrimPrefix(trimmed, "src/")
	base := filepath.Base(trimmed)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(buildRoot, objDirName, base+".o")
}
