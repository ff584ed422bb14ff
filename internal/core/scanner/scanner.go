// Package scanner finds keyword occurrences in page text.
//
// Text is split into sentence units on the literal "." character. The split
// is not grammar-aware: abbreviations such as "Mr." produce their own units
// and consecutive dots produce empty ones.
// A unit matches when it contains the keyword case-insensitively; matching
// units are returned in order with every occurrence wrapped in a highlight
// marker.
package scanner

import (
	"regexp"
	"strings"
)

const (
	sentenceDelimiter = "."
	markOpen          = "<mark>"
	markClose         = "</mark>"
)

// Sentences splits text into sentence units.
func Sentences(text string) []string {
	return strings.Split(text, sentenceDelimiter)
}

// Scan returns the highlighted sentence units of text that contain keyword.
// An empty keyword matches every non-empty unit and leaves it unhighlighted;
// no empty markers are inserted between characters.
// The result is nil when nothing matches.
func Scan(text, keyword string) []string {
	needle := strings.ToLower(keyword)

	var matched []string
	for _, unit := range Sentences(text) {
		if unit == "" {
			continue
		}
		if strings.Contains(strings.ToLower(unit), needle) {
			matched = append(matched, unit)
		}
	}
	if len(matched) == 0 || keyword == "" {
		return matched
	}

	pattern := highlightPattern(keyword)
	for i, unit := range matched {
		matched[i] = Highlight(pattern, unit)
	}
	return matched
}

// Highlight wraps every match of pattern in s with the highlight marker.
func Highlight(pattern *regexp.Regexp, s string) string {
	return pattern.ReplaceAllString(s, markOpen+"${0}"+markClose)
}

// highlightPattern compiles a case-insensitive literal matcher for keyword.
// Metacharacters are quoted so highlighting agrees with the substring test.
func highlightPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
}
