package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// applyPatchInPlace applies a unified-diff-flavored patch file to every
// target file it touches under dir. patchPath points at a file produced by
// diffmatchpatch.PatchToText (one dependency's local modifications),
// addressed in the patch by a file header line "--- <relative path>".
func applyPatchInPlace(dir, patchPath string) error {
	raw, err := os.ReadFile(patchPath)
	if err != nil {
		return fmt.Errorf("read patch %q: %w", patchPath, err)
	}

	dmp := diffmatchpatch.New()
	for _, block := range splitPatchBlocks(string(raw)) {
		if block.target == "" {
			continue
		}
		patches, err := dmp.PatchFromText(block.body)
		if err != nil {
			return fmt.Errorf("parse patch for %q: %w", block.target, err)
		}

		targetPath := filepath.Join(dir, block.target)
		original, err := os.ReadFile(targetPath)
		if err != nil {
			return fmt.Errorf("read patch target %q: %w", targetPath, err)
		}

		patched, applied := dmp.PatchApply(patches, string(original))
		for i, ok := range applied {
			if !ok {
				return fmt.Errorf("patch hunk %d failed to apply to %q", i, targetPath)
			}
		}

		if err := os.WriteFile(targetPath, []byte(patched), 0o644); err != nil {
			return fmt.Errorf("write patched %q: %w", targetPath, err)
		}
	}
	return nil
}

type patchBlock struct {
	target string
	body   string
}

// splitPatchBlocks splits a multi-file patch on "--- <path>" header lines
// into per-file diffmatchpatch-formatted bodies.
func splitPatchBlocks(text string) []patchBlock {
	var blocks []patchBlock
	var cur patchBlock
	lineStart := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		line := text[lineStart:i]
		lineStart = i + 1

		if len(line) > 4 && line[:4] == "--- " {
			if cur.target != "" {
				blocks = append(blocks, cur)
			}
			cur = patchBlock{target: line[4:]}
			continue
		}
		if cur.target != "" {
			cur.body += line + "\n"
		}
	}
	if cur.target != "" {
		blocks = append(blocks, cur)
	}
	return blocks
}
