package shopapi

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// CategorySlug converts a free-text category label into the path segment the
// backend routes on: lower-cased, whitespace runs collapsed to "-".
// "Green Tea" -> "green-tea".
func CategorySlug(label string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
}

// SearchQuery converts free text into the query-string form the backend
// expects: lower-cased, whitespace runs collapsed to "+". The plus is the
// separator the original clients sent, so it must stay a literal plus in the
// URL rather than being percent-escaped.
func SearchQuery(q string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(q)), "+")
}
