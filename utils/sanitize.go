package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTags = bluemonday.StrictPolicy()

// CleanText strips markup from visitor-supplied text before it is stored.
// The result is plain text: entities the policy emits are decoded again.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(strings.TrimSpace(s))))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
