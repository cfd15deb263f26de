// Package toolchain implements the pluggable command-line emitter for
// gcc/clang compiler families. It is pure: it never touches the filesystem
// or spawns processes, only builds argv slices.
package toolchain

import "strings"

// Toolchain is the polymorphic capability set spec.md §4.5 requires:
// compile_command, shared_link_command, tool_link_command, description.
type Toolchain interface {
	Description() string
	CompilerBinary() string
	CompileCommand(opts CompileOptions) []string
	SharedLinkCommand(opts LinkOptions) []string
	ToolLinkCommand(opts LinkOptions) []string
}

// CompileOptions carries everything needed to emit one compile command.
type CompileOptions struct {
	GlobalIncludeDirs []string
	GlobalLibPaths    []string
	UnitIncludeDirs   []string
	Debug             bool
	Optimize          bool
	Shared            bool
	Cflags            []string
	Source            string
	Object            string
}

// LinkOptions carries everything needed to emit one link command.
type LinkOptions struct {
	BinRoot         string
	OutputDir       string
	OutputBase      string // artifact name without extension/prefix
	Ext             string // ".so", ".dll", "" for tools
	Objects         []string
	GlobalLibPaths  []string
	GlobalLibraries []string
	UnitLibraries   []string // library tokens, normalized per spec.md §4.5
	GlobalLdflags   []string
	UnitLdflags     []string
	Debug           bool
	StaticLink      bool
}

// New selects a Toolchain by family name (case-insensitive; empty -> gcc),
// per spec.md §4.5.
func New(family, compilerOverride string) Toolchain {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "clang":
		return &family_{name: "clang", desc: "Clang/LLVM toolchain", defaultCC: "clang++", cc: pick(compilerOverride, "clang++")}
	case "gcc", "":
		return &family_{name: "gcc", desc: "GNU Compiler Collection toolchain", defaultCC: "g++", cc: pick(compilerOverride, "g++")}
	default:
		return &family_{name: family, desc: family + " toolchain (gcc-compatible)", defaultCC: family, cc: pick(compilerOverride, family)}
	}
}

func pick(override, dflt string) string {
	if override != "" {
		return override
	}
	return dflt
}

// family_ is the shared core emitter for gcc-like and clang-like
// toolchains, parameterized only by the compiler binary, per spec.md §4.5
// ("the two initial implementations share a single core emitter").
type family_ struct {
	name      string
	desc      string
	defaultCC string
	cc        string
}

func (f *family_) Description() string    { return f.desc }
func (f *family_) CompilerBinary() string { return f.cc }

func (f *family_) CompileCommand(o CompileOptions) []string {
	var args []string
	args = append(args, f.cc, "-c")

	for _, d := range o.GlobalIncludeDirs {
		args = append(args, "-I"+d)
	}
	for _, d := range o.GlobalLibPaths {
		args = append(args, "-L"+d)
	}
	for _, d := range o.UnitIncludeDirs {
		args = append(args, "-I"+d)
	}

	switch {
	case o.Debug:
		args = append(args, "-g", "-O0")
	case o.Optimize:
		args = append(args, "-O3")
	default:
		args = append(args, "-O2")
	}

	if o.Shared {
		args = append(args, "-fPIC")
	}

	args = append(args, "-Wall", "-Wextra")
	args = append(args, o.Cflags...)
	args = append(args, o.Source, "-o", o.Object)
	return args
}

func (f *family_) SharedLinkCommand(o LinkOptions) []string {
	return f.linkCommand(o, true)
}

func (f *family_) ToolLinkCommand(o LinkOptions) []string {
	return f.linkCommand(o, false)
}

func (f *family_) linkCommand(o LinkOptions, shared bool) []string {
	var args []string
	args = append(args, f.cc)
	if shared {
		args = append(args, "-shared")
	}

	args = append(args, "-L"+o.BinRoot+"/lib")
	for _, d := range o.GlobalLibPaths {
		args = append(args, "-L"+d)
	}
	if o.Debug {
		args = append(args, "-g")
	}

	args = append(args, o.Objects...)

	for _, lib := range o.GlobalLibraries {
		args = append(args, "-l"+lib)
	}

	if o.StaticLink && !shared {
		args = append(args, "-static", "-static-libgcc", "-static-libstdc++")
	}

	for _, lib := range o.UnitLibraries {
		base := normalizeLibToken(lib)
		if o.StaticLink && !shared {
			args = append(args, "-l:"+base+".a")
		} else {
			args = append(args, "-l:"+base+".so")
		}
	}

	args = append(args, o.GlobalLdflags...)
	args = append(args, o.UnitLdflags...)

	ext := o.Ext
	if shared && ext == "" {
		ext = ".so"
	}
	args = append(args, "-o", o.OutputDir+"/"+o.OutputBase+ext)
	return args
}

// normalizeLibToken strips a leading "lib/" path component and a trailing
// ".so" suffix, per spec.md §4.5.
func normalizeLibToken(tok string) string {
	tok = strings.TrimPrefix(tok, "lib/")
	tok = strings.TrimSuffix(tok, ".so")
	return tok
}
