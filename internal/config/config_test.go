package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, dir, ini string) string {
	t.Helper()
	path := filepath.Join(dir, "forgec.ini")
	if err := os.WriteFile(path, []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigGlobalsAndUnits(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"src/a.cpp", "src/b.cpp"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ini := `[global]
project_name = demo
debug = yes
parallel = on

[shared_libs]
name = core
sources = src/a.cpp

[tools]
name = app
sources = src/b.cpp
static_link = true
`
	path := writeProject(t, dir, ini)

	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := LoadConfig(filepath.Base(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if cfg.ProjectName != "demo" {
		t.Errorf("ProjectName = %q, want demo", cfg.ProjectName)
	}
	if !cfg.Debug || !cfg.ParallelCompilation {
		t.Errorf("Debug/ParallelCompilation not decoded: debug=%v parallel=%v", cfg.Debug, cfg.ParallelCompilation)
	}
	if len(cfg.SharedLibs) != 1 || cfg.SharedLibs[0].Name != "core" {
		t.Fatalf("SharedLibs = %+v", cfg.SharedLibs)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].Name != "app" {
		t.Fatalf("Tools = %+v", cfg.Tools)
	}
	if cfg.Tools[0].StaticLink == nil || !*cfg.Tools[0].StaticLink {
		t.Errorf("Tools[0].StaticLink = %v, want true", cfg.Tools[0].StaticLink)
	}
}

func TestRepeatedSectionHeadersCreateNewEntries(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "src"), 0o755)

	ini := `[shared_libs]
name = first
sources = src/a.cpp

[shared_libs]
name = second
sources = src/b.cpp
`
	path := writeProject(t, dir, ini)
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	cfg, _, err := LoadConfig(filepath.Base(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.SharedLibs) != 2 {
		t.Fatalf("got %d shared libs, want 2 (one per header occurrence): %+v", len(cfg.SharedLibs), cfg.SharedLibs)
	}
	if cfg.SharedLibs[0].Name != "first" || cfg.SharedLibs[1].Name != "second" {
		t.Errorf("SharedLibs = %+v", cfg.SharedLibs)
	}
}

func TestDecodeBool(t *testing.T) {
	tests := []struct {
		raw  string
		dflt bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got := decodeBool(tt.raw, tt.dflt, func(string) {})
		if got != tt.want {
			t.Errorf("decodeBool(%q, %v) = %v, want %v", tt.raw, tt.dflt, got, tt.want)
		}
	}
}

func TestMergeUniquePreservesOrderAndDedupes(t *testing.T) {
	got := mergeUnique([]string{"a", "b"}, []string{"b", "c", "a", "d"})
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("mergeUnique = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mergeUnique = %v, want %v", got, want)
		}
	}
}

func TestLoadConfigGlobPatternIsRelativeToSourceRoot(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "src"), 0o755)
	os.WriteFile(filepath.Join(dir, "src", "a.cpp"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "src", "b.cpp"), nil, 0o644)

	ini := `[global]
source_root = src

[shared_libs]
name = core
sources = *.cpp
`
	path := writeProject(t, dir, ini)
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	cfg, _, err := LoadConfig(filepath.Base(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.SharedLibs) != 1 {
		t.Fatalf("SharedLibs = %+v", cfg.SharedLibs)
	}
	got := cfg.SharedLibs[0].Sources
	want := []string{"src/a.cpp", "src/b.cpp"}
	if len(got) != len(want) {
		t.Fatalf("Sources = %v, want %v (glob must match inside source_root, with source_root prefixed back on)", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandTemplate(t *testing.T) {
	env := TemplateEnv{TargetOS: "linux", TargetArch: "amd64", Environ: map[string]string{}}
	got, err := expandTemplate("-DPLAT={{target_os}}_{{target_arch}}", env)
	if err != nil {
		t.Fatalf("expandTemplate: %v", err)
	}
	if got != "-DPLAT=linux_amd64" {
		t.Errorf("expandTemplate = %q", got)
	}
}
