// Package scaffold implements "forgec init"/"forgec new": writing a fresh
// project's forgec.ini, starter sources, and .gitignore.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/forgec/forgec/internal/msg"
)

func writeFile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	}
}

func mkdir(elem ...string) {
	path := filepath.Join(elem...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		msg.Fatal("mkdir %s: %v", path, err)
	}
}

// InitIn scaffolds a new project in an existing directory. lib selects a
// shared-library starter target instead of an executable one.
func InitIn(dir, name string, lib bool) {
	if lib {
		writeFile(`[global]
project_name=`+name+`
source_root=src
build_root=build
bin_root=bin
toolchain=gcc

[shared_libs]
name=`+name+`
sources=src/`+name+`.cpp
`, dir, "forgec.ini")
	} else {
		writeFile(`[global]
project_name=`+name+`
source_root=src
build_root=build
bin_root=bin
toolchain=gcc

[tools]
name=`+name+`
sources=src/main.cpp
`, dir, "forgec.ini")
	}

	mkdir(dir, "src")

	if lib {
		writeFile(`#include "`+name+`.h"
#include <cstdio>

void `+name+`_hello() {
    std::puts("Hello, World!");
}
`, dir, "src", name+".cpp")

		writeFile(`#ifndef `+guardName(name)+`_H
#define `+guardName(name)+`_H

void `+name+`_hello();

#endif
`, dir, "src", name+".h")
	} else {
		writeFile(`#include <cstdio>

int main() {
    std::puts("Hello, World!");
    return 0;
}
`, dir, "src", "main.cpp")
	}

	writeFile(`build/
bin/
`, dir, ".gitignore")

	fmt.Printf("You can now do %s to build, or %s to build and run.\n",
		color.HiCyanString("forgec"), color.HiCyanString("forgec run"))
}

func guardName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			c = '_'
		}
		out[i] = c
	}
	return string(out)
}
