package layout

import (
	"testing"

	"github.com/forgec/forgec/internal/directive"
)

func TestDirectiveOutputExecutableDefaultsToUnitName(t *testing.T) {
	dir, base := DirectiveOutput("bin", directive.BuildDirective{UnitName: "tools/foo"})
	if dir != "bin/tools" || base != "foo" {
		t.Errorf("dir=%q base=%q, want bin/tools, foo", dir, base)
	}
}

func TestDirectiveOutputExecutableHonorsOutOverride(t *testing.T) {
	dir, base := DirectiveOutput("bin", directive.BuildDirective{UnitName: "foo", OutputPath: "custom/name"})
	if dir != "bin/custom" || base != "name" {
		t.Errorf("dir=%q base=%q, want bin/custom, name", dir, base)
	}
}

func TestDirectiveOutputSharedUsesLibDir(t *testing.T) {
	dir, base := DirectiveOutput("bin", directive.BuildDirective{UnitName: "nested/core", IsShared: true})
	if dir != "bin/lib" || base != "core" {
		t.Errorf("dir=%q base=%q, want bin/lib, core", dir, base)
	}
}

func TestFullPathAppendsExtension(t *testing.T) {
	if got := FullPath("bin/lib", "core", ".so"); got != "bin/lib/core.so" {
		t.Errorf("FullPath = %q, want bin/lib/core.so", got)
	}
	if got := FullPath("bin/tools", "foo", ""); got != "bin/tools/foo" {
		t.Errorf("FullPath = %q, want bin/tools/foo", got)
	}
}
