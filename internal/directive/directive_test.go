package directive

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseDirectivesAccumulatesPerFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.cpp", `// build-directive: unit-name(app)
// build-directive: depends-units(libfoo, libbar)
// build-directive: link(pthread)
// build-directive: cflags(-Wall -std=c++20)
// build-directive: shared(false)
int main() { return 0; }
`)
	writeSource(t, dir, "nodirective.cpp", `int x;\n`)

	got, err := ParseDirectives(dir, false)
	if err != nil {
		t.Fatalf("ParseDirectives: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d directives, want 1: %+v", len(got), got)
	}

	d := got[0]
	if d.UnitName != "app" {
		t.Errorf("UnitName = %q, want app", d.UnitName)
	}
	if len(d.DependsUnits) != 2 || d.DependsUnits[0] != "libfoo" || d.DependsUnits[1] != "libbar" {
		t.Errorf("DependsUnits = %v", d.DependsUnits)
	}
	if len(d.LinkLibs) != 1 || d.LinkLibs[0] != "pthread" {
		t.Errorf("LinkLibs = %v", d.LinkLibs)
	}
	if len(d.Cflags) != 2 {
		t.Errorf("Cflags = %v", d.Cflags)
	}
	if d.IsShared {
		t.Errorf("IsShared = true, want false")
	}
}

func TestParseDirectivesDropsFileWithoutUnitName(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.cpp", `// build-directive: link(pthread)
int main() { return 0; }
`)

	got, err := ParseDirectives(dir, false)
	if err != nil {
		t.Fatalf("ParseDirectives: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d directives, want 0", len(got))
	}
}

func TestSplitTypeValue(t *testing.T) {
	tests := []struct {
		in      string
		typ     string
		value   string
		wantOk  bool
	}{
		{"unit-name(app)", "unit-name", "app", true},
		{"cflags(-Wall -Wextra)", "cflags", "-Wall -Wextra", true},
		{"malformed", "", "", false},
		{"()", "", "", false},
	}
	for _, tt := range tests {
		typ, value, ok := splitTypeValue(tt.in)
		if ok != tt.wantOk || (ok && (typ != tt.typ || value != tt.value)) {
			t.Errorf("splitTypeValue(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.in, typ, value, ok, tt.typ, tt.value, tt.wantOk)
		}
	}
}

func TestStaticDirectiveSetsPointer(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "app.cpp", `// build-directive: unit-name(app)
// build-directive: static(true)
int main() { return 0; }
`)

	got, err := ParseDirectives(dir, false)
	if err != nil {
		t.Fatalf("ParseDirectives: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d directives, want 1", len(got))
	}
	if got[0].StaticLink == nil || !*got[0].StaticLink {
		t.Errorf("StaticLink = %v, want pointer to true", got[0].StaticLink)
	}
}
