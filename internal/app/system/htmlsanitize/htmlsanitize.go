// Package htmlsanitize cleans free text submitted through admin forms before
// it is copied into every denormalized collection.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag. Policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup and returns the unescaped, trimmed text, so
// names like "O'Brien" survive unchanged.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
