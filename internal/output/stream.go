// Package output renders tree events and table of contents headings.
package output

import (
	"github.com/temirov/repokit/internal/services/stream"
)

// StreamRenderer consumes tree events as they arrive. Flush is called once after every root
// has been streamed.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}

const (
	jsonIndentPrefix = ""
	jsonIndentSpacer = "  "

	summaryLineFormat    = "\n%d %s, %d %s"
	skippedSuffixFormat  = " (%d not expanded)"
	singularDirectory    = "directory"
	pluralDirectories    = "directories"
	singularFile         = "file"
	pluralFiles          = "files"
	errorUnknownFormat   = "unsupported format %q"
	errorJSONEncode      = "encoding json: %w"
	errorMissingTreeRoot = "json stream: entry for %s arrived before its root"
)

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
