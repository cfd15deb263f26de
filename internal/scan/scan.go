// Package scan implements the Include Scanner and Source Discovery
// components: extracting #include targets from a translation unit and
// enumerating translation units under a source root.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/forgec/forgec/internal/builderrs"
)

// sourceExts are the recognized C++ translation-unit suffixes.
var sourceExts = map[string]bool{
	".cpp": true,
	".cc":  true,
	".cxx": true,
}

// FindSources recursively walks dir and collects regular files whose suffix
// is one of .cpp, .cc, .cxx. All subdirectories are descended, including
// dotfiles. If dir does not exist, this fails with a *builderrs.SourceError.
func FindSources(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &builderrs.SourceError{Path: dir, Err: err}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if sourceExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &builderrs.SourceError{Path: dir, Err: err}
	}
	return files, nil
}

// ExtractIncludes reads path and returns the ordered sequence of include
// targets named by #include directives, walking the content as raw bytes
// while tracking a single-character string state so that a '#' inside a
// string or char literal is never mistaken for a directive. It does not
// support escapes and does not honor preprocessor conditionals; this is an
// approximation sufficient for rebuild triggering. An unreadable file
// yields an empty, non-error result.
func ExtractIncludes(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return extractIncludesFromBytes(data)
}

const includeDirective = "#include"

func extractIncludesFromBytes(data []byte) []string {
	var includes []string
	var inString bool
	var quoteChar byte

	i := 0
	n := len(data)
	for i < n {
		c := data[i]

		if inString {
			if c == quoteChar {
				inString = false
			}
			i++
			continue
		}

		if c == '"' || c == '\'' {
			inString = true
			quoteChar = c
			i++
			continue
		}

		if c == '#' && i+len(includeDirective) <= n && string(data[i:i+len(includeDirective)]) == includeDirective {
			i += len(includeDirective)
			for i < n && (data[i] == ' ' || data[i] == '\t') {
				i++
			}
			if i >= n {
				break
			}

			var closer byte
			switch data[i] {
			case '"':
				closer = '"'
			case '<':
				closer = '>'
			default:
				continue
			}
			i++
			start := i
			for i < n && data[i] != closer && data[i] != '\n' {
				i++
			}
			if i < n && data[i] == closer {
				includes = append(includes, string(data[start:i]))
				i++
			}
			continue
		}

		i++
	}

	return includes
}
