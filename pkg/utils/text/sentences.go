// ABOUTME: Text utilities for reference-marker stripping and sentence splitting
// ABOUTME: Provides common string processing used by the section extraction pipeline

package text

import (
	"regexp"
	"strings"
)

var (
	refMarker        = regexp.MustCompile(`\[\d+\]`)
	sentenceBoundary = regexp.MustCompile(`\.\s+`)
)

// StripReferenceMarkers removes inline citation markers like "[12]".
func StripReferenceMarkers(s string) string {
	return refMarker.ReplaceAllString(s, "")
}

// SplitSentences splits text on period-plus-whitespace boundaries.
// The final fragment keeps any trailing period; callers trim as needed.
func SplitSentences(s string) []string {
	return sentenceBoundary.Split(s, -1)
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
