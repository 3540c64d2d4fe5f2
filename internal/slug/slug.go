// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
	edges      = regexp.MustCompile(`^-+|-+$`)
)

// Generate lowercases text, drops everything that is not a word character,
// whitespace or hyphen, and joins the remaining words with single hyphens.
func Generate(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = nonWord.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return edges.ReplaceAllString(s, "")
}

// Unique returns base, or base-1, base-2, ... the first candidate for which
// taken reports false.
func Unique(base string, taken func(candidate string) (bool, error)) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
