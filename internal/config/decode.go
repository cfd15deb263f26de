package config

import "strings"

// decodeBool implements the boolean value decoder from spec.md §4.3:
// {true,1,yes,on} -> true, {false,0,no,off} -> false, anything else warns
// and retains dflt.
func decodeBool(raw string, dflt bool, warn func(string)) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		if warn != nil {
			warn("invalid boolean value " + quoteForWarn(raw) + ", keeping default")
		}
		return dflt
	}
}

func quoteForWarn(s string) string { return "\"" + s + "\"" }

// decodeCommaList splits on ',', trims, and drops empties.
func decodeCommaList(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// decodeSpaceList splits on ASCII space/tab, trims, and drops empties.
func decodeSpaceList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == '\t' })
}

// decodeSemicolonList splits on ';', trims, and drops empties (build_cmds).
func decodeSemicolonList(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ";") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// mergeUnique appends tokens from add that are not already present in base,
// preserving insertion order, per spec.md §4.3's per-unit inheritance rule.
func mergeUnique(base, add []string) []string {
	seen := make(map[string]bool, len(base))
	for _, b := range base {
		seen[b] = true
	}
	out := append([]string(nil), base...)
	for _, a := range add {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}
