// Package directive scans C++ translation units for // build-directive:
// comments and assembles them into structured BuildDirective values.
package directive

import (
	"bufio"
	"os"
	"strings"

	"github.com/forgec/forgec/internal/builderrs"
	"github.com/forgec/forgec/internal/msg"
	"github.com/forgec/forgec/internal/scan"
)

const linePrefix = "// build-directive:"

// BuildDirective is one declaration attached to a single source file.
type BuildDirective struct {
	UnitName     string
	SourcePath   string
	DependsUnits []string
	LinkLibs     []string
	OutputPath   string
	Cflags       []string
	Ldflags      []string
	IsShared     bool
	StaticLink   *bool // three-valued override; nil means "inherit project default"
}

// ParseDirectives discovers source files under sourceRoot and returns the
// ordered sequence of BuildDirective assembled from their
// "// build-directive:" comments. Directives from different files never
// merge; multiple directive lines within one file accumulate into a single
// BuildDirective for that file. A file whose accumulated directive has no
// unit-name is discarded. Malformed lines are skipped silently; unrecognized
// types are warned in verbose mode and ignored.
func ParseDirectives(sourceRoot string, verbose bool) ([]BuildDirective, error) {
	sources, err := scan.FindSources(sourceRoot)
	if err != nil {
		return nil, err
	}

	var directives []BuildDirective
	for _, path := range sources {
		d, ok, err := parseFile(path, verbose)
		if err != nil {
			return nil, err
		}
		if ok {
			directives = append(directives, d)
		}
	}
	return directives, nil
}

func parseFile(path string, verbose bool) (BuildDirective, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return BuildDirective{}, false, nil // unreadable source is not fatal for directive scanning
	}
	defer f.Close()

	d := BuildDirective{SourcePath: path, IsShared: false}
	haveUnitName := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, linePrefix) {
			continue
		}
		rest := strings.TrimSpace(line[len(linePrefix):])

		typ, value, ok := splitTypeValue(rest)
		if !ok {
			continue // malformed line, missing parenthesis
		}

		switch typ {
		case "unit-name":
			d.UnitName = value
			haveUnitName = true
		case "depends-units":
			d.DependsUnits = append(d.DependsUnits, splitCSV(value)...)
		case "link":
			d.LinkLibs = append(d.LinkLibs, splitCSV(value)...)
		case "out":
			d.OutputPath = value
		case "cflags":
			d.Cflags = append(d.Cflags, splitSpace(value)...)
		case "ldflags":
			d.Ldflags = append(d.Ldflags, splitSpace(value)...)
		case "shared":
			d.IsShared = parseBool(value, d.IsShared)
		case "static":
			b := parseBool(value, false)
			d.StaticLink = &b
		default:
			if verbose {
				msg.Warn("%s", &builderrs.DirectiveError{File: path, Line: lineNo, Type: typ})
			}
		}
	}

	if !haveUnitName || d.UnitName == "" {
		return BuildDirective{}, false, nil
	}
	return d, true, nil
}

// splitTypeValue extracts <type>(<value>) from a directive body.
func splitTypeValue(s string) (typ, value string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	typ = strings.TrimSpace(s[:open])
	value = s[open+1 : len(s)-1]
	if typ == "" {
		return "", "", false
	}
	return typ, value, true
}

func splitCSV(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func splitSpace(s string) []string {
	return strings.Fields(s)
}

func parseBool(s string, dflt bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return dflt
	}
}
