package toc

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	minimumMarkdownLevel = 2
	maximumMarkdownLevel = 6
	lineDelimiter        = '\n'
)

var headingLinePattern = regexp.MustCompile(`^(#{2,6}) (.*)`)

// HeadingScanner extracts table of contents headings from a Markdown document.
type HeadingScanner interface {
	Scan(reader io.Reader) ([]Heading, error)
}

// LineScanner matches `##` through `######` headings line by line without interpreting the
// rest of the document, so heading-like lines inside code blocks are reported too. Lines
// have no length limit.
type LineScanner struct{}

// Scan implements HeadingScanner.
func (LineScanner) Scan(reader io.Reader) ([]Heading, error) {
	var headings []Heading
	lineReader := bufio.NewReader(reader)
	for {
		line, readError := lineReader.ReadString(lineDelimiter)
		if readError != nil && readError != io.EOF {
			return nil, readError
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if match := headingLinePattern.FindStringSubmatch(line); match != nil {
			headings = append(headings, Heading{
				Level: levelFromMarkerCount(len(match[1])),
				Text:  strings.TrimSpace(match[2]),
			})
		}
		if readError == io.EOF {
			return headings, nil
		}
	}
}

// MarkdownScanner parses the document with goldmark and reports top-level ATX and setext
// headings of levels two through six. Fenced code is skipped and inline markup is reduced
// to its text.
type MarkdownScanner struct{}

// Scan implements HeadingScanner.
func (MarkdownScanner) Scan(reader io.Reader) ([]Heading, error) {
	source, readError := io.ReadAll(reader)
	if readError != nil {
		return nil, readError
	}

	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []Heading
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		headingNode, isHeading := node.(*ast.Heading)
		if !isHeading {
			continue
		}
		if headingNode.Level < minimumMarkdownLevel || headingNode.Level > maximumMarkdownLevel {
			continue
		}
		headings = append(headings, Heading{
			Level: levelFromMarkerCount(headingNode.Level),
			Text:  strings.TrimSpace(string(headingNode.Text(source))),
		})
	}
	return headings, nil
}

var (
	_ HeadingScanner = LineScanner{}
	_ HeadingScanner = MarkdownScanner{}
)
