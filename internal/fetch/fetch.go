// Package fetch resolves [dependencies] entries: cloning git remotes (with
// shortcut prefixes), applying local patches, and staging the result into
// the dependencies root atomically.
package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/google/uuid"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/msg"
)

var shortcuts = map[string]string{
	"gh:": "https://github.com/",
	"gl:": "https://gitlab.com/",
	"bb:": "https://bitbucket.org/",
	"sr:": "https://sr.ht/",
	"cb:": "https://codeberg.org/",
}

const gitPrefix = "git:"

var errIllegalSource = errors.New("empty or illegal dependency source")

// Resolve fetches every configured dependency into cfg.DependenciesRoot and
// returns the final on-disk path of each, keyed by dependency name.
func Resolve(cfg *config.BuildConfig) (map[string]string, error) {
	paths := make(map[string]string, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		p, err := fetchOne(cfg.DependenciesRoot, dep)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", dep.Name, err)
		}
		paths[dep.Name] = p
	}
	return paths, nil
}

func fetchOne(root string, dep config.DependencySpec) (string, error) {
	finalDir := filepath.Join(root, dep.Name)

	if _, err := os.Stat(finalDir); err == nil {
		return finalDir, nil // already fetched
	}

	resolved, isLocal, err := locate(dep.Source, root)
	if err != nil {
		return "", err
	}

	if isLocal {
		if dep.Patch != "" {
			if err := applyPatchInPlace(resolved, dep.Patch); err != nil {
				return "", err
			}
		}
		return resolved, nil
	}

	if dep.Patch != "" {
		if err := applyPatchInPlace(resolved, dep.Patch); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	if err := os.Rename(resolved, finalDir); err != nil {
		return "", fmt.Errorf("stage dependency %q: %w", dep.Name, err)
	}
	return finalDir, nil
}

// locate fetches dep.Source into a freshly uuid-named staging directory
// under root and returns its path, or resolves it as a local filesystem
// path directly (isLocal == true, no staging needed).
func locate(source, root string) (path string, isLocal bool, err error) {
	if source == "" {
		return "", false, errIllegalSource
	}

	stagingDir := filepath.Join(root, ".staging-"+uuid.NewString())

	switch {
	case strings.HasPrefix(source, gitPrefix):
		p, err := cloneGitRepo(source[len(gitPrefix):], stagingDir)
		return p, false, err
	}

	for prefix, base := range shortcuts {
		if strings.HasPrefix(source, prefix) {
			p, err := cloneGitRepo(base+source[len(prefix):], stagingDir)
			return p, false, err
		}
	}

	if isURL(source) {
		return "", false, fmt.Errorf("archive dependency sources are not supported: %s", source)
	}

	return source, true, nil
}

func isURL(maybeURL string) bool {
	u, err := url.Parse(maybeURL)
	return err == nil && u.Scheme != "" && u.Host != ""
}

type gitURL struct {
	cleanURL    string
	branch      string
	commitOrTag string
}

// someone/something@master#0.1.0
// someone/something@feature-branch#12345abc
// someone/something#12345abc
func parseGitURL(rawURL string) (res gitURL) {
	parts := strings.SplitN(rawURL, "#", 2)
	baseURL := parts[0]
	if len(parts) == 2 {
		res.commitOrTag = parts[1]
	}

	parts = strings.SplitN(baseURL, "@", 2)
	res.cleanURL = parts[0]
	if len(parts) == 2 {
		res.branch = parts[1]
	}

	if !strings.HasSuffix(res.cleanURL, ".git") {
		res.cleanURL += ".git"
	}
	return
}

func cloneGitRepo(rawURL, toWhere string) (string, error) {
	parsed := parseGitURL(rawURL)

	bar := msg.NewProgressBar(0, 2, os.Stdout)
	opts := &git.CloneOptions{
		URL:               parsed.cleanURL,
		Progress:          bar,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	}
	if parsed.commitOrTag == "" {
		opts.Depth = 1
	}
	if parsed.branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(parsed.branch)
		opts.SingleBranch = true
	}

	repo, err := git.PlainClone(toWhere, opts)
	bar.Finish()
	if err != nil {
		return toWhere, err
	}

	if parsed.commitOrTag != "" {
		w, err := repo.Worktree()
		if err != nil {
			return toWhere, fmt.Errorf("get worktree: %w", err)
		}
		hash, err := repo.ResolveRevision(plumbing.Revision(parsed.commitOrTag))
		if err != nil {
			return toWhere, fmt.Errorf("resolve revision %q: %w", parsed.commitOrTag, err)
		}
		if err := w.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			return toWhere, fmt.Errorf("checkout %q: %w", parsed.commitOrTag, err)
		}
	}

	msg.Info("fetched dependency into %s", toWhere)
	return toWhere, nil
}
