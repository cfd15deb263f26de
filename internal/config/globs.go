package config

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// expandSourceList resolves a comma-list of source/header tokens against
// root: a token is treated as a doublestar glob pattern when it contains
// glob metacharacters. A literal, non-glob token that matches no file is
// kept verbatim so that a not-yet-created source still elides gracefully
// at the staleness/compile stage rather than at config-load time.
func expandSourceList(root string, tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	fsys := os.DirFS(root)
	var out []string
	seen := make(map[string]bool)

	for _, tok := range tokens {
		if !doublestar.ValidatePattern(tok) || !hasGlobMeta(tok) {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
			continue
		}

		matches, err := doublestar.Glob(fsys, tok, doublestar.WithFilesOnly())
		if err != nil || len(matches) == 0 {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
			continue
		}
		for _, m := range matches {
			joined := filepath.ToSlash(filepath.Join(root, m))
			if !seen[joined] {
				seen[joined] = true
				out = append(out, joined)
			}
		}
	}
	return out
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
