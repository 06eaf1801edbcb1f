// Package textutils provides text cleanup utilities for extracted statement
// content.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// continuationMarker is the artifact PDF extraction leaves behind where a
// long description wrapped onto the next line.
const continuationMarker = ")))"

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// StripContinuationMarkers removes line-wrap artifacts from a description.
func StripContinuationMarkers(s string) string {
	return strings.ReplaceAll(s, continuationMarker, "")
}

// CleanDescription removes wrap artifacts and normalizes whitespace in one
// pass.
func CleanDescription(s string) string {
	return NormalizeWhitespace(StripContinuationMarkers(s))
}
