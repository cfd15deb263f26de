// Package stale implements the Staleness Oracle: deciding whether an object
// file must be recompiled from its source and include graph.
package stale

import (
	"os"
	"path/filepath"

	"github.com/forgec/forgec/internal/scan"
)

// NeedsRecompile decides whether object must be rebuilt from source, per
// spec.md §4.7. A missing source or object always triggers a rebuild
// (letting the executor surface a meaningful compile error); otherwise the
// decision follows mtime comparisons of source, object, and includes. An
// include path is looked up relative to the source file's directory first,
// then as given. A bare-name include (no directory component) that isn't found on disk is
// ignored as a plausible system header.
func NeedsRecompile(source, object string) bool {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return true
	}
	objInfo, err := os.Stat(object)
	if err != nil {
		return true
	}
	if srcInfo.ModTime().After(objInfo.ModTime()) {
		return true
	}

	for _, inc := range scan.ExtractIncludes(source) {
		incInfo, err := os.Stat(filepath.Join(filepath.Dir(source), inc))
		if err != nil {
			incInfo, err = os.Stat(inc)
		}
		if err != nil {
			if filepath.Dir(inc) == "." {
				continue // bare name, plausibly a system header
			}
			continue // not found locally; can't judge, don't force a rebuild
		}
		if incInfo.ModTime().After(objInfo.ModTime()) {
			return true
		}
	}

	return false
}
