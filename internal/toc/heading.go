// Package toc builds an HTML table of contents from the headings of a Markdown document.
package toc

import (
	"regexp"
	"strings"
)

var anchorDisallowedCharacters = regexp.MustCompile(`[^0-9a-zA-Z\- ]`)

// Heading is a Markdown section header reduced to its table of contents level.
// Level 1 corresponds to a `##` heading, level 2 to `###`, and so on.
type Heading struct {
	Level int
	Text  string
}

// Anchor returns the in-page fragment identifier for the heading.
func (heading Heading) Anchor() string {
	return Anchor(heading.Text)
}

// Anchor lowercases text, drops every character outside [0-9a-zA-Z- ] and replaces spaces with hyphens.
func Anchor(text string) string {
	stripped := anchorDisallowedCharacters.ReplaceAllString(text, "")
	return strings.ToLower(strings.ReplaceAll(stripped, " ", "-"))
}

// levelFromMarkerCount converts the number of leading '#' characters into a table of contents level.
func levelFromMarkerCount(markerCount int) int {
	return markerCount - 1
}
