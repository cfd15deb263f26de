package cmd

import (
	"testing"

	"github.com/forgec/forgec/internal/config"
)

func TestParseNameSourceSplitsOnFirstEquals(t *testing.T) {
	u, ok := parseNameSource("app=src/main.cpp")
	if !ok {
		t.Fatal("expected ok=true for a well-formed override")
	}
	if u != (config.UnitOverride{Name: "app", Source: "src/main.cpp"}) {
		t.Errorf("got %+v", u)
	}
}

func TestParseNameSourceRejectsMissingEquals(t *testing.T) {
	_, ok := parseNameSource("no-equals-sign")
	if ok {
		t.Error("expected ok=false when there is no '=' separator")
	}
}

func TestParseNameSourceKeepsOnlyFirstEquals(t *testing.T) {
	u, ok := parseNameSource("app=src/a=b.cpp")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if u.Name != "app" || u.Source != "src/a=b.cpp" {
		t.Errorf("got %+v, want Name=app Source=src/a=b.cpp", u)
	}
}

func TestBoolPtrIfSet(t *testing.T) {
	if boolPtrIfSet(false) != nil {
		t.Error("expected nil when v=false")
	}
	p := boolPtrIfSet(true)
	if p == nil || !*p {
		t.Error("expected a pointer to true when v=true")
	}
}

func TestEnumValueSetRejectsUnknown(t *testing.T) {
	e := NewEnumValue("gcc", map[string]string{"gcc": "", "clang": ""})
	if err := e.Set("msvc"); err == nil {
		t.Error("expected an error for a value outside the allowed set")
	}
	if e.Value() != "gcc" {
		t.Errorf("Value() = %q, want unchanged gcc after a rejected Set", e.Value())
	}
	if err := e.Set("clang"); err != nil {
		t.Fatalf("Set(clang): %v", err)
	}
	if e.Value() != "clang" {
		t.Errorf("Value() = %q, want clang", e.Value())
	}
}
