// Package config implements the Config Loader: INI parsing, merging with
// defaults and CLI overrides, and the process-wide BuildConfig model.
package config

import "github.com/forgec/forgec/internal/directive"

// SharedLibConfig is a configured (non-directive) shared-library build unit.
type SharedLibConfig struct {
	Name        string
	OutputDir   string
	Sources     []string
	Libraries   []string
	IncludeDirs []string
	Cflags      []string
	Ldflags     []string
	Verbose     bool
	Debug       bool
	Optimize    bool
}

// ToolConfig is a configured (non-directive) executable build unit.
type ToolConfig struct {
	Name        string
	OutputDir   string
	Sources     []string
	Libraries   []string
	IncludeDirs []string
	Cflags      []string
	Ldflags     []string
	Verbose     bool
	Debug       bool
	Optimize    bool
	StaticLink  *bool
}

// DependencySpec describes one [dependencies] entry: an external source to
// fetch (git URL, shortcut, or local path) plus an optional local patch.
type DependencySpec struct {
	Name          string
	Source        string
	Patch         string
	ExtractTarget []string
	BuildCmds     []string
}

// BuildConfig is the process-wide configuration produced by the Config
// Loader after merging defaults, the project file, and CLI overrides.
type BuildConfig struct {
	ProjectName string

	SourceRoot       string
	BuildRoot        string
	BinRoot          string
	DependenciesRoot string

	Compiler         string
	ToolchainFamily  string
	GlobalIncludeDir []string
	GlobalLibPaths   []string
	GlobalLibraries  []string
	GlobalCflags     []string
	GlobalLdflags    []string

	Debug               bool
	Optimize            bool
	Verbose             bool
	ParallelCompilation bool
	StaticLink          bool

	SharedLibs   []SharedLibConfig
	Tools        []ToolConfig
	Dependencies []DependencySpec
	Directives   []directive.BuildDirective
}

// Defaults returns the built-in configuration baseline that the INI file
// and then the CLI are merged on top of.
func Defaults() BuildConfig {
	return BuildConfig{
		ProjectName:         "project",
		SourceRoot:          "src",
		BuildRoot:           "build",
		BinRoot:             "bin",
		DependenciesRoot:    "deps",
		Compiler:            "",
		ToolchainFamily:     "gcc",
		ParallelCompilation: false,
		StaticLink:          false,
	}
}
