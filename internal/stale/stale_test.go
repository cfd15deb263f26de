package stale

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, when time.Time, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatal(err)
	}
}

func TestNeedsRecompileMissingObject(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	touch(t, src, time.Now(), "int x;")

	if !NeedsRecompile(src, filepath.Join(dir, "a.o")) {
		t.Error("expected recompile when object is missing")
	}
}

func TestNeedsRecompileMissingSource(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "a.o")
	touch(t, obj, time.Now(), "")

	if !NeedsRecompile(filepath.Join(dir, "missing.cpp"), obj) {
		t.Error("expected recompile when source is missing")
	}
}

func TestNeedsRecompileSourceNewerThanObject(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	obj := filepath.Join(dir, "a.o")
	base := time.Now().Add(-time.Hour)

	touch(t, obj, base, "")
	touch(t, src, base.Add(time.Minute), "int x;")

	if !NeedsRecompile(src, obj) {
		t.Error("expected recompile when source is newer than object")
	}
}

func TestNeedsRecompileUpToDate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	obj := filepath.Join(dir, "a.o")
	base := time.Now().Add(-time.Hour)

	touch(t, src, base, "int x;")
	touch(t, obj, base.Add(time.Minute), "")

	if NeedsRecompile(src, obj) {
		t.Error("expected no recompile when object is newer than source and includes")
	}
}

func TestNeedsRecompileNewerLocalInclude(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	inc := filepath.Join(dir, "a.h")
	obj := filepath.Join(dir, "a.o")
	base := time.Now().Add(-time.Hour)

	touch(t, src, base, "#include \"a.h\"\n")
	touch(t, obj, base.Add(time.Minute), "")
	touch(t, inc, base.Add(2*time.Minute), "")

	if !NeedsRecompile(src, obj) {
		t.Error("expected recompile when a local include is newer than the object")
	}
}

func TestNeedsRecompileMissingBareInclude(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	obj := filepath.Join(dir, "a.o")
	base := time.Now().Add(-time.Hour)

	touch(t, src, base, "#include <vector>\n")
	touch(t, obj, base.Add(time.Minute), "")

	if NeedsRecompile(src, obj) {
		t.Error("a missing bare-name include (plausible system header) should not force a rebuild")
	}
}
