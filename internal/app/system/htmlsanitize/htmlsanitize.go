// Package htmlsanitize strips markup from user-supplied text before it is
// stored. Every free-text field in the API (names, descriptions, skills,
// assignment roles) is plain text, so the strict policy removes all tags.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes from s, returning the
// remaining text content trimmed of surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// TextSlice applies Text to every element, dropping elements that sanitize
// to the empty string.
func TextSlice(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := Text(s); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
