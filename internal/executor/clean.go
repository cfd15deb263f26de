package executor

import (
	"os"
	"path/filepath"

	"github.com/forgec/forgec/internal/config"
)

// Clean removes every directory the executor writes to: the build tree,
// bin/lib, bin/tools, and the legacy bin/<project_name> single-binary
// artifact some older configs still produce.
func Clean(cfg *config.BuildConfig) error {
	targets := []string{
		cfg.BuildRoot,
		filepath.Join(cfg.BinRoot, "lib"),
		filepath.Join(cfg.BinRoot, "tools"),
		filepath.Join(cfg.BinRoot, cfg.ProjectName),
	}
	for _, t := range targets {
		if err := os.RemoveAll(t); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
