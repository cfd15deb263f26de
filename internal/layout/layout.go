// Package layout resolves where a directive-originated build unit's
// artifact lands on disk. The graph planner and the executor both need
// this path — the planner to populate Node.OutputPath, the executor to
// actually link there — so it lives here once instead of twice.
package layout

import (
	"path/filepath"

	"github.com/forgec/forgec/internal/directive"
)

// DirectiveOutput returns the containing directory and base name (without
// extension) for a directive's artifact, rooted at binRoot: shared
// libraries land under binRoot/lib, executables keep whatever subpath the
// unit name or out() override implies.
func DirectiveOutput(binRoot string, d directive.BuildDirective) (dir, base string) {
	outputBase := d.OutputPath
	if outputBase == "" {
		outputBase = d.UnitName
	}
	if d.IsShared {
		return filepath.Join(binRoot, "lib"), filepath.Base(outputBase)
	}
	return filepath.Dir(filepath.Join(binRoot, outputBase)), filepath.Base(outputBase)
}

// FullPath joins a resolved dir/base pair with an artifact extension
// (".so" for shared libraries, "" for executables).
func FullPath(dir, base, ext string) string {
	return filepath.Join(dir, base+ext)
}
