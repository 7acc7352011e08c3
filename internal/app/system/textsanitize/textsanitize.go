// Package textsanitize strips markup from free-text inputs before they are
// persisted. Trip titles, descriptions, locations, and log notes are plain
// text; anything that looks like HTML is removed, not escaped.
package textsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean strips all HTML from s, decodes the entities bluemonday escapes,
// and trims surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// CleanAll applies Clean to every element, dropping entries that end up
// empty.
func CleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := Clean(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}
