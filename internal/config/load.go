package config

import (
	"fmt"
	"os"

	"github.com/forgec/forgec/internal/builderrs"
	"github.com/forgec/forgec/internal/directive"
)

var knownGlobalKeys = map[string]bool{
	"project_name": true, "source_root": true, "build_root": true,
	"bin_root": true, "compiler": true, "toolchain": true,
	"include_dirs": true, "lib_search_paths": true, "cflags": true,
	"ldflags": true, "debug": true, "optimize": true, "verbose": true,
	"parallel": true, "parallel_compilation": true,
	"dependencies_root": true, "static_link": true,
}

var knownUnitKeys = map[string]bool{
	"name": true, "output_dir": true, "sources": true, "libraries": true,
	"include_dirs": true, "cflags": true, "ldflags": true,
	"verbose": true, "debug": true, "optimize": true, "static_link": true,
}

var knownDepKeys = map[string]bool{
	"name": true, "source": true, "patch": true, "extract": true, "build_cmds": true,
}

// LoadConfig parses an INI project file at path and merges it with
// Defaults(). Unknown sections/keys and malformed booleans accumulate as
// warnings rather than failing the load, per spec.md §4.3/§7.
func LoadConfig(path string) (*BuildConfig, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &builderrs.ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	raw, parseWarnings, err := parseINI(f)
	if err != nil {
		return nil, nil, &builderrs.ConfigError{Path: path, Err: err}
	}
	warnings := append([]string(nil), parseWarnings...)

	env := NewTemplateEnv()
	if err := expandTemplatesInPlace(raw.global, env); err != nil {
		return nil, warnings, &builderrs.ConfigError{Path: path, Err: err}
	}
	for _, sec := range raw.sections {
		if err := expandTemplatesInPlace(sec.values, env); err != nil {
			return nil, warnings, &builderrs.ConfigError{Path: path, Err: err}
		}
	}

	cfg := Defaults()
	warn := func(msg string) { warnings = append(warnings, msg) }

	decodeGlobal(raw.global, &cfg, warn)

	sharedIdx, toolIdx, depIdx := 0, 0, 0
	for _, sec := range raw.sections {
		switch sec.kind {
		case "shared_libs":
			cfg.SharedLibs = append(cfg.SharedLibs, decodeSharedLib(sec.values, cfg, sharedIdx, warn))
			sharedIdx++
		case "tools":
			cfg.Tools = append(cfg.Tools, decodeTool(sec.values, cfg, toolIdx, warn))
			toolIdx++
		case "dependencies":
			cfg.Dependencies = append(cfg.Dependencies, decodeDependency(sec.values, depIdx, warn))
			depIdx++
		}
	}

	directives, err := directive.ParseDirectives(cfg.SourceRoot, cfg.Verbose)
	if err != nil {
		return nil, warnings, err
	}
	cfg.Directives = directives

	return &cfg, warnings, nil
}

func decodeGlobal(values map[string]string, cfg *BuildConfig, warn func(string)) {
	for k := range values {
		if !knownGlobalKeys[k] {
			warn(fmt.Sprintf("unknown key %q in [global]", k))
		}
	}

	if v, ok := values["project_name"]; ok {
		cfg.ProjectName = v
	}
	if v, ok := values["source_root"]; ok {
		cfg.SourceRoot = v
	}
	if v, ok := values["build_root"]; ok {
		cfg.BuildRoot = v
	}
	if v, ok := values["bin_root"]; ok {
		cfg.BinRoot = v
	}
	if v, ok := values["dependencies_root"]; ok {
		cfg.DependenciesRoot = v
	}
	if v, ok := values["compiler"]; ok {
		cfg.Compiler = v
	}
	if v, ok := values["toolchain"]; ok {
		cfg.ToolchainFamily = v
	}
	if v, ok := values["include_dirs"]; ok {
		cfg.GlobalIncludeDir = decodeCommaList(v)
	}
	if v, ok := values["lib_search_paths"]; ok {
		cfg.GlobalLibPaths = decodeCommaList(v)
	}
	if v, ok := values["cflags"]; ok {
		cfg.GlobalCflags = decodeSpaceList(v)
	}
	if v, ok := values["ldflags"]; ok {
		cfg.GlobalLdflags = decodeSpaceList(v)
	}
	if v, ok := values["debug"]; ok {
		cfg.Debug = decodeBool(v, cfg.Debug, warn)
	}
	if v, ok := values["optimize"]; ok {
		cfg.Optimize = decodeBool(v, cfg.Optimize, warn)
	}
	if v, ok := values["verbose"]; ok {
		cfg.Verbose = decodeBool(v, cfg.Verbose, warn)
	}
	if v, ok := values["parallel"]; ok {
		cfg.ParallelCompilation = decodeBool(v, cfg.ParallelCompilation, warn)
	}
	if v, ok := values["parallel_compilation"]; ok {
		cfg.ParallelCompilation = decodeBool(v, cfg.ParallelCompilation, warn)
	}
	if v, ok := values["static_link"]; ok {
		cfg.StaticLink = decodeBool(v, cfg.StaticLink, warn)
	}
}

func decodeSharedLib(values map[string]string, cfg BuildConfig, idx int, warn func(string)) SharedLibConfig {
	warnUnknownUnitKeys(values, warn, "shared_libs")

	unit := SharedLibConfig{
		Name:        fmt.Sprintf("lib%d", idx),
		Verbose:     cfg.Verbose,
		Debug:       cfg.Debug,
		Optimize:    cfg.Optimize,
		IncludeDirs: append([]string(nil), cfg.GlobalIncludeDir...),
		Cflags:      append([]string(nil), cfg.GlobalCflags...),
		Ldflags:     append([]string(nil), cfg.GlobalLdflags...),
	}
	if v, ok := values["name"]; ok && v != "" {
		unit.Name = v
	}
	if v, ok := values["output_dir"]; ok {
		unit.OutputDir = v
	}
	if v, ok := values["sources"]; ok {
		unit.Sources = expandSourceList(cfg.SourceRoot, decodeCommaList(v))
	}
	if v, ok := values["libraries"]; ok {
		unit.Libraries = decodeCommaList(v)
	}
	if v, ok := values["include_dirs"]; ok {
		unit.IncludeDirs = mergeUnique(cfg.GlobalIncludeDir, decodeCommaList(v))
	}
	if v, ok := values["cflags"]; ok {
		unit.Cflags = mergeUnique(cfg.GlobalCflags, decodeSpaceList(v))
	}
	if v, ok := values["ldflags"]; ok {
		unit.Ldflags = mergeUnique(cfg.GlobalLdflags, decodeSpaceList(v))
	}
	if v, ok := values["verbose"]; ok {
		unit.Verbose = decodeBool(v, cfg.Verbose, warn)
	}
	if v, ok := values["debug"]; ok {
		unit.Debug = decodeBool(v, cfg.Debug, warn)
	}
	if v, ok := values["optimize"]; ok {
		unit.Optimize = decodeBool(v, cfg.Optimize, warn)
	}
	return unit
}

func decodeTool(values map[string]string, cfg BuildConfig, idx int, warn func(string)) ToolConfig {
	warnUnknownUnitKeys(values, warn, "tools")

	unit := ToolConfig{
		Name:        fmt.Sprintf("tool%d", idx),
		Verbose:     cfg.Verbose,
		Debug:       cfg.Debug,
		Optimize:    cfg.Optimize,
		IncludeDirs: append([]string(nil), cfg.GlobalIncludeDir...),
		Cflags:      append([]string(nil), cfg.GlobalCflags...),
		Ldflags:     append([]string(nil), cfg.GlobalLdflags...),
	}
	if v, ok := values["name"]; ok && v != "" {
		unit.Name = v
	}
	if v, ok := values["output_dir"]; ok {
		unit.OutputDir = v
	}
	if v, ok := values["sources"]; ok {
		unit.Sources = expandSourceList(cfg.SourceRoot, decodeCommaList(v))
	}
	if v, ok := values["libraries"]; ok {
		unit.Libraries = decodeCommaList(v)
	}
	if v, ok := values["include_dirs"]; ok {
		unit.IncludeDirs = mergeUnique(cfg.GlobalIncludeDir, decodeCommaList(v))
	}
	if v, ok := values["cflags"]; ok {
		unit.Cflags = mergeUnique(cfg.GlobalCflags, decodeSpaceList(v))
	}
	if v, ok := values["ldflags"]; ok {
		unit.Ldflags = mergeUnique(cfg.GlobalLdflags, decodeSpaceList(v))
	}
	if v, ok := values["verbose"]; ok {
		unit.Verbose = decodeBool(v, cfg.Verbose, warn)
	}
	if v, ok := values["debug"]; ok {
		unit.Debug = decodeBool(v, cfg.Debug, warn)
	}
	if v, ok := values["optimize"]; ok {
		unit.Optimize = decodeBool(v, cfg.Optimize, warn)
	}
	if v, ok := values["static_link"]; ok {
		b := decodeBool(v, cfg.StaticLink, warn)
		unit.StaticLink = &b
	}
	return unit
}

func decodeDependency(values map[string]string, idx int, warn func(string)) DependencySpec {
	for k := range values {
		if !knownDepKeys[k] {
			warn(fmt.Sprintf("unknown key %q in [dependencies]", k))
		}
	}

	dep := DependencySpec{Name: fmt.Sprintf("dep%d", idx)}
	if v, ok := values["name"]; ok && v != "" {
		dep.Name = v
	}
	dep.Source = values["source"]
	dep.Patch = values["patch"]
	if v, ok := values["extract"]; ok {
		dep.ExtractTarget = decodeCommaList(v)
	}
	if v, ok := values["build_cmds"]; ok {
		dep.BuildCmds = decodeSemicolonList(v)
	}
	return dep
}

func warnUnknownUnitKeys(values map[string]string, warn func(string), section string) {
	for k := range values {
		if !knownUnitKeys[k] {
			warn(fmt.Sprintf("unknown key %q in [%s]", k, section))
		}
	}
}
