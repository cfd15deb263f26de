// Package devenv implements "forgec env": printing a source-able shell
// snippet exposing the resolved toolchain's compiler and the global include
// and library search paths.
package devenv

import (
	"fmt"
	"io"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/toolchain"
)

// Print writes a POSIX-shell snippet setting CC/CXX to the resolved
// compiler binary, for `eval "$(forgec env)"`.
func Print(w io.Writer, cfg *config.BuildConfig) {
	tc := toolchain.New(cfg.ToolchainFamily, cfg.Compiler)
	cc := tc.CompilerBinary()

	fmt.Fprintf(w, "# %s\n", tc.Description())
	fmt.Fprintf(w, "export CC=%q\n", cc)
	fmt.Fprintf(w, "export CXX=%q\n", cc)
	if len(cfg.GlobalIncludeDir) > 0 {
		fmt.Fprintf(w, "export FORGEC_INCLUDE_DIRS=%q\n", joinWithSpaces(cfg.GlobalIncludeDir))
	}
	if len(cfg.GlobalLibPaths) > 0 {
		fmt.Fprintf(w, "export FORGEC_LIB_PATHS=%q\n", joinWithSpaces(cfg.GlobalLibPaths))
	}
}

func joinWithSpaces(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
