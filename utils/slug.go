package utils

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Slugify derives an organization slug from its name: lowercased, with
// whitespace runs replaced by single hyphens ("Acme Construction" ->
// "acme-construction").
func Slugify(name string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
