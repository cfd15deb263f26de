package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
)

// TemplateEnv is the expression environment exposed to {{ ... }} templates
// inside INI values.
type TemplateEnv struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Environ    map[string]string `expr:"environ"`
}

// NewTemplateEnv builds the default templating environment for the current
// process.
func NewTemplateEnv() TemplateEnv {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			environ[kv[:i]] = kv[i+1:]
		}
	}
	return TemplateEnv{
		TargetOS:   runtime.GOOS,
		TargetArch: runtime.GOARCH,
		Environ:    environ,
	}
}

var templateRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// expandTemplate finds and evaluates all {{...}} expressions in s. This
// supplements spec.md §4.3's plain value decoders: expressions are resolved
// before the comma/space/bool decoders ever see the string.
func expandTemplate(s string, env TemplateEnv) (string, error) {
	matches := templateRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(s[last:m[0]])

		exprSrc := strings.TrimSpace(s[m[2]:m[3]])
		program, err := expr.Compile(exprSrc, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("failed to compile expression %q: %w", exprSrc, err)
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to run expression %q: %w", exprSrc, err)
		}
		fmt.Fprintf(&sb, "%v", result)

		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

// expandTemplatesInPlace rewrites every value of a raw section map with
// expandTemplate, in place.
func expandTemplatesInPlace(values map[string]string, env TemplateEnv) error {
	for k, v := range values {
		expanded, err := expandTemplate(v, env)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		values[k] = expanded
	}
	return nil
}
