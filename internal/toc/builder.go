package toc

import (
	"fmt"
	"os"
	"strings"
)

// DefaultSummary labels the collapsible block when no summary is configured.
const DefaultSummary = "Table of Contents"

const (
	indentUnit              = "  "
	detailsOpenLine         = "<details>"
	detailsCloseLine        = "</details>"
	summaryLineFormat       = "  <summary>%s</summary>"
	orderedListOpenLine     = "  <ol>"
	orderedListCloseLine    = "  </ol>"
	unorderedListOpenTag    = "<ul>"
	unorderedListCloseTag   = "</ul>"
	topLevelItemIndent      = "    "
	listItemFormat          = `<li><a href="#%s">%s</a></li>`
	lineSeparator           = "\n"
	errorOpenDocumentFormat = "opening %s: %w"
	errorScanDocumentFormat = "scanning %s: %w"
)

// Builder renders headings into a <details> block wrapping an ordered list.
type Builder struct {
	Summary string
}

// Build returns the table of contents as a sequence of lines.
//
// Level one headings are direct children of the ordered list. Deeper headings open one
// unordered list per level they descend, except when leaving level zero, so a jump such as
// level one to level four opens three lists at once.
func (builder Builder) Build(headings []Heading) []string {
	summary := builder.Summary
	if summary == "" {
		summary = DefaultSummary
	}
	lines := []string{detailsOpenLine, fmt.Sprintf(summaryLineFormat, summary), orderedListOpenLine}

	currentLevel := 0
	for _, heading := range headings {
		for heading.Level < currentLevel {
			lines = append(lines, indent(currentLevel)+unorderedListCloseTag)
			currentLevel--
		}
		for heading.Level > currentLevel {
			if currentLevel > 0 {
				lines = append(lines, indent(currentLevel)+unorderedListOpenTag)
			}
			currentLevel++
		}

		item := fmt.Sprintf(listItemFormat, heading.Anchor(), heading.Text)
		if heading.Level == 1 {
			lines = append(lines, topLevelItemIndent+item)
		} else {
			lines = append(lines, indent(currentLevel)+item)
		}
	}

	// level one never opened a list of its own; TestRenderBalancesListTags covers this
	for currentLevel > 1 {
		lines = append(lines, indent(currentLevel)+unorderedListCloseTag)
		currentLevel--
	}

	return append(lines, orderedListCloseLine, detailsCloseLine)
}

// Render joins the lines produced by Build.
func (builder Builder) Render(headings []Heading) string {
	return strings.Join(builder.Build(headings), lineSeparator)
}

// ReadHeadings opens the document at path and extracts its headings with scanner.
// The file is closed whether or not scanning succeeds.
//
// #nosec G304
func ReadHeadings(path string, scanner HeadingScanner) ([]Heading, error) {
	if scanner == nil {
		scanner = LineScanner{}
	}
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenDocumentFormat, path, openError)
	}
	defer fileHandle.Close()

	headings, scanError := scanner.Scan(fileHandle)
	if scanError != nil {
		return nil, fmt.Errorf(errorScanDocumentFormat, path, scanError)
	}
	return headings, nil
}

// Generate reads the document at path and renders its table of contents.
func Generate(path string, scanner HeadingScanner, builder Builder) (string, error) {
	headings, readError := ReadHeadings(path, scanner)
	if readError != nil {
		return "", readError
	}
	return builder.Render(headings), nil
}

func indent(level int) string {
	return strings.Repeat(indentUnit, level)
}
