package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forgec/forgec/internal/config"
)

func TestParseGitURLPlain(t *testing.T) {
	res := parseGitURL("someone/something")
	if res.cleanURL != "someone/something.git" {
		t.Errorf("cleanURL = %q", res.cleanURL)
	}
	if res.branch != "" || res.commitOrTag != "" {
		t.Errorf("unexpected branch/commit: %+v", res)
	}
}

func TestParseGitURLBranchAndTag(t *testing.T) {
	res := parseGitURL("someone/something@master#0.1.0")
	if res.cleanURL != "someone/something.git" {
		t.Errorf("cleanURL = %q", res.cleanURL)
	}
	if res.branch != "master" {
		t.Errorf("branch = %q, want master", res.branch)
	}
	if res.commitOrTag != "0.1.0" {
		t.Errorf("commitOrTag = %q, want 0.1.0", res.commitOrTag)
	}
}

func TestParseGitURLCommitOnly(t *testing.T) {
	res := parseGitURL("someone/something#12345abc")
	if res.branch != "" {
		t.Errorf("branch = %q, want empty", res.branch)
	}
	if res.commitOrTag != "12345abc" {
		t.Errorf("commitOrTag = %q, want 12345abc", res.commitOrTag)
	}
}

func TestParseGitURLAlreadyHasDotGit(t *testing.T) {
	res := parseGitURL("someone/something.git@dev")
	if res.cleanURL != "someone/something.git" {
		t.Errorf("cleanURL = %q, want no doubled .git suffix", res.cleanURL)
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/repo.git": true,
		"http://example.com":           true,
		"gh:someone/something":         false,
		"../local/path":                false,
		"relative/path":                false,
	}
	for in, want := range tests {
		if got := isURL(in); got != want {
			t.Errorf("isURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLocateLocalPathPassthrough(t *testing.T) {
	dir := t.TempDir()
	path, isLocal, err := locate(dir, t.TempDir())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if !isLocal {
		t.Error("expected a bare filesystem path to be treated as local")
	}
	if path != dir {
		t.Errorf("path = %q, want %q", path, dir)
	}
}

func TestLocateEmptySourceIsIllegal(t *testing.T) {
	_, _, err := locate("", t.TempDir())
	if err != errIllegalSource {
		t.Errorf("err = %v, want errIllegalSource", err)
	}
}

func TestLocateArchiveURLUnsupported(t *testing.T) {
	_, _, err := locate("https://example.com/archive.tar.gz", t.TempDir())
	if err == nil {
		t.Fatal("expected an error for an unsupported archive source")
	}
}

func TestSplitPatchBlocksSingleFile(t *testing.T) {
	text := "--- src/a.cpp\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-old\n" +
		"+new\n"
	blocks := splitPatchBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].target != "src/a.cpp" {
		t.Errorf("target = %q", blocks[0].target)
	}
}

func TestSplitPatchBlocksMultiFile(t *testing.T) {
	text := "--- src/a.cpp\n" +
		"body-a\n" +
		"--- src/b.cpp\n" +
		"body-b\n"
	blocks := splitPatchBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].target != "src/a.cpp" || blocks[1].target != "src/b.cpp" {
		t.Errorf("blocks = %+v", blocks)
	}
}

func TestSplitPatchBlocksEmptyInput(t *testing.T) {
	if blocks := splitPatchBlocks(""); len(blocks) != 0 {
		t.Errorf("got %d blocks for empty input, want 0", len(blocks))
	}
}

func TestFetchOneLocalDependencyReturnsExistingFinalDir(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "vendored")
	if err := os.MkdirAll(depDir, 0o755); err != nil {
		t.Fatal(err)
	}

	dep := config.DependencySpec{Name: "vendored", Source: t.TempDir()}
	got, err := fetchOne(root, dep)
	if err != nil {
		t.Fatalf("fetchOne: %v", err)
	}
	if got != depDir {
		t.Errorf("fetchOne = %q, want already-fetched path %q", got, depDir)
	}
}

func TestFetchOneLocalSourceStagesNothing(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "marker.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dep := config.DependencySpec{Name: "libfoo", Source: src}
	got, err := fetchOne(root, dep)
	if err != nil {
		t.Fatalf("fetchOne: %v", err)
	}
	if got != src {
		t.Errorf("fetchOne = %q, want local source path %q unchanged", got, src)
	}
}
