// Package normalize provides canonical forms for user-entered identity
// fields so lookups and uniqueness checks behave predictably.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or all-whitespace
// input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Strings trims every element and drops the ones that normalize to "".
// Used for skills lists.
func Strings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
