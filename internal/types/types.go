// Package types defines every cross‑package data structure used by the repokit CLI.
package types

const (
	CommandTOC  = "toc"
	CommandTree = "tree"
	CommandInit = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatHTML = "html"

	ParserLines    = "lines"
	ParserMarkdown = "markdown"

	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
}

// HeadingOutput is one table of contents entry as rendered by the json format.
type HeadingOutput struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// TreeNode represents a node of a directory layout returned by the tree command.
type TreeNode struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Skipped  bool        `json:"skipped,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}
