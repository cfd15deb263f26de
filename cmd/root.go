// forgec [project-name] [tool-source ...], forgec build [project-name] [tool-source ...]
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/executor"
	"github.com/forgec/forgec/internal/graph"
	"github.com/forgec/forgec/internal/msg"
	"github.com/forgec/forgec/internal/toolchain"
)

var (
	flagDebug     bool
	flagOptimize  bool
	flagVerbose   bool
	flagParallel  bool
	flagCompiler  string
	flagToolchain EnumValue = NewEnumValue("gcc", map[string]string{
		"gcc":   "GNU Compiler Collection toolchain (default)",
		"clang": "Clang/LLVM toolchain",
	})
	flagConfigPath  string
	flagProjectName string
	flagIncludeDirs []string
	flagLibPaths    []string
	flagLibs        []string
	flagSharedLibs  []string
	flagTools       []string
)

var rootCmd = &cobra.Command{
	Use:   "forgec [project-name] [tool-source ...]",
	Short: "A lightweight C++ build orchestrator",
	Long:  `forgec plans a dependency graph from an INI project file and source directives, then compiles and links it with a pluggable gcc/clang toolchain.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  doBuild,
}

func init() {
	addBuildFlags(rootCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "build with debug flags (-g -O0)")
	cmd.Flags().BoolVarP(&flagOptimize, "optimize", "O", false, "build with optimization flags (-O3)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print extra diagnostics")
	cmd.Flags().BoolVarP(&flagParallel, "parallel", "p", false, "compile units in parallel")
	cmd.Flags().StringVarP(&flagCompiler, "compiler", "c", "", "override the compiler binary")
	cmd.Flags().VarP(&flagToolchain, "toolchain", "t", "toolchain family, one of "+flagToolchain.HelpString())
	cmd.RegisterFlagCompletionFunc("toolchain", flagToolchain.CompletionFunc())
	cmd.Flags().StringVar(&flagConfigPath, "config", "forgec.ini", "path to the project INI file")
	cmd.Flags().StringVarP(&flagProjectName, "output", "o", "", "override the project name")
	cmd.Flags().StringArrayVarP(&flagIncludeDirs, "include", "I", nil, "additional global include directory (repeatable)")
	cmd.Flags().StringArrayVarP(&flagLibPaths, "libpath", "L", nil, "additional global library search path (repeatable)")
	cmd.Flags().StringArrayVarP(&flagLibs, "lib", "l", nil, "additional global link library (repeatable)")
	cmd.Flags().StringArrayVar(&flagSharedLibs, "shared-lib", nil, "name=source shared-library override (repeatable)")
	cmd.Flags().StringArrayVar(&flagTools, "tool", nil, "name=source tool override (repeatable)")
}

// loadAndPlan loads the project config, merges CLI overrides, and plans the
// build graph. Shared by every subcommand that needs a live Graph.
func loadAndPlan(positionals []string) (*config.BuildConfig, *graph.Graph, error) {
	cfg, warnings, err := config.LoadConfig(flagConfigPath)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		msg.Warn("%s", w)
	}

	ov := buildOverrides(positionals)
	config.Apply(cfg, ov)

	g, err := graph.Plan(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, g, nil
}

func buildOverrides(positionals []string) config.Overrides {
	ov := config.Overrides{
		Verbose:     boolPtrIfSet(flagVerbose),
		Parallel:    boolPtrIfSet(flagParallel),
		Compiler:    flagCompiler,
		Toolchain:   flagToolchain.Value(),
		IncludeDirs: flagIncludeDirs,
		LibPaths:    flagLibPaths,
		Libs:        flagLibs,
		ProjectName: flagProjectName,
		Positionals: positionals,
	}
	if flagDebug {
		ov.SetDebug(true)
	}
	if flagOptimize {
		ov.SetOptimize(true)
	}
	for _, s := range flagSharedLibs {
		if u, ok := parseNameSource(s); ok {
			ov.SharedLibs = append(ov.SharedLibs, u)
		}
	}
	for _, s := range flagTools {
		if u, ok := parseNameSource(s); ok {
			ov.Tools = append(ov.Tools, u)
		}
	}
	return ov
}

func parseNameSource(s string) (config.UnitOverride, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return config.UnitOverride{Name: s[:i], Source: s[i+1:]}, true
		}
	}
	msg.Warn("ignoring malformed override %q, expected name=source", s)
	return config.UnitOverride{}, false
}

func boolPtrIfSet(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

func doBuild(cmd *cobra.Command, args []string) error {
	cfg, g, err := loadAndPlan(args)
	if err != nil {
		return err
	}

	tc := toolchain.New(cfg.ToolchainFamily, cfg.Compiler)
	return executor.New(cfg, tc).Execute(g)
}

var buildCmd = &cobra.Command{
	Use:   "build [project-name] [tool-source ...]",
	Short: "Build the project",
	Long:  `Build the project. The first positional argument overrides the project name (unless -o was given); any further positionals become default tool units named after their source file's basename.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  doBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
