package config

import "path/filepath"

// UnitOverride is one "--shared-lib name=source" or "--tool name=source" CLI
// flag occurrence, added directly to the merged config. Each flag takes a
// single name=source value; name and source are not separate arguments.
type UnitOverride struct {
	Name   string
	Source string
}

// Overrides captures the CLI flag surface from spec.md §6. Precedence is
// CLI > INI > defaults: every non-nil/non-empty field here wins over
// whatever LoadConfig produced.
type Overrides struct {
	Debug    *bool
	Optimize *bool
	Verbose  *bool
	Parallel *bool

	Compiler  string
	Toolchain string

	IncludeDirs []string // -I
	LibPaths    []string // -L
	Libs        []string // -l

	ProjectName string // -o/--output

	SharedLibs []UnitOverride // --shared-lib <name>=<source>
	Tools      []UnitOverride // --tool <name>=<source>

	// Positionals are all non-flag arguments: the leading one sets the
	// project name when ProjectName is empty, and each one after it
	// becomes a default tool unit per spec.md §4.3.
	Positionals []string
}

// SetDebug and SetOptimize implement the mutually-exclusive flag pair from
// spec.md §4.3: "--debug/-d, --optimize/-O (mutually exclusive — setting
// one clears the other)".
func (o *Overrides) SetDebug(v bool) {
	o.Debug = boolPtr(v)
	o.Optimize = boolPtr(false)
}

func (o *Overrides) SetOptimize(v bool) {
	o.Optimize = boolPtr(v)
	o.Debug = boolPtr(false)
}

func boolPtr(v bool) *bool { return &v }

// Apply merges CLI overrides into cfg with CLI-wins-over-INI precedence.
func Apply(cfg *BuildConfig, ov Overrides) {
	if ov.Debug != nil {
		cfg.Debug = *ov.Debug
	}
	if ov.Optimize != nil {
		cfg.Optimize = *ov.Optimize
	}
	if ov.Verbose != nil {
		cfg.Verbose = *ov.Verbose
	}
	if ov.Parallel != nil {
		cfg.ParallelCompilation = *ov.Parallel
	}
	if ov.Compiler != "" {
		cfg.Compiler = ov.Compiler
	}
	if ov.Toolchain != "" {
		cfg.ToolchainFamily = ov.Toolchain
	}
	if len(ov.IncludeDirs) > 0 {
		cfg.GlobalIncludeDir = mergeUnique(cfg.GlobalIncludeDir, ov.IncludeDirs)
	}
	if len(ov.LibPaths) > 0 {
		cfg.GlobalLibPaths = mergeUnique(cfg.GlobalLibPaths, ov.LibPaths)
	}
	if len(ov.Libs) > 0 {
		cfg.GlobalLibraries = mergeUnique(cfg.GlobalLibraries, ov.Libs)
	}
	if ov.ProjectName != "" {
		cfg.ProjectName = ov.ProjectName
	}

	for _, sl := range ov.SharedLibs {
		cfg.SharedLibs = append(cfg.SharedLibs, SharedLibConfig{
			Name:     sl.Name,
			Sources:  []string{sl.Source},
			Verbose:  cfg.Verbose,
			Debug:    cfg.Debug,
			Optimize: cfg.Optimize,
		})
	}
	for _, t := range ov.Tools {
		cfg.Tools = append(cfg.Tools, ToolConfig{
			Name:     t.Name,
			Sources:  []string{t.Source},
			Verbose:  cfg.Verbose,
			Debug:    cfg.Debug,
			Optimize: cfg.Optimize,
		})
	}

	if len(ov.Positionals) > 0 {
		if ov.ProjectName == "" {
			cfg.ProjectName = ov.Positionals[0]
		}
		for _, p := range ov.Positionals[1:] {
			name := filepath.Base(p)
			cfg.Tools = append(cfg.Tools, ToolConfig{
				Name:     name,
				Sources:  []string{p},
				Verbose:  cfg.Verbose,
				Debug:    cfg.Debug,
				Optimize: cfg.Optimize,
			})
		}
	}
}
