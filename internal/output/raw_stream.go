package output

import (
	"fmt"
	"io"

	"github.com/temirov/repokit/internal/services/stream"
)

type rawStreamRenderer struct {
	stdout         io.Writer
	includeSummary bool
	rootsRendered  int
}

// NewRawStreamRenderer writes each entry line as soon as it arrives. Consecutive roots are
// separated by a blank line.
func NewRawStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	return &rawStreamRenderer{stdout: stdout, includeSummary: includeSummary}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	if renderer.stdout == nil {
		return nil
	}
	switch event.Kind {
	case stream.EventKindStart:
		if renderer.rootsRendered > 0 {
			if _, err := fmt.Fprintln(renderer.stdout); err != nil {
				return err
			}
		}
		renderer.rootsRendered++
	case stream.EventKindEntry:
		if event.Entry == nil {
			return nil
		}
		_, err := fmt.Fprintln(renderer.stdout, event.Entry.String())
		return err
	case stream.EventKindSummary:
		if !renderer.includeSummary || event.Summary == nil {
			return nil
		}
		_, err := fmt.Fprintln(renderer.stdout, FormatSummaryLine(event.Summary))
		return err
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	return nil
}

// FormatSummaryLine formats the closing line printed under a tree.
func FormatSummaryLine(summary *stream.SummaryEvent) string {
	if summary == nil {
		summary = &stream.SummaryEvent{}
	}
	line := fmt.Sprintf(summaryLineFormat,
		summary.Directories, pluralize(summary.Directories, singularDirectory, pluralDirectories),
		summary.Files, pluralize(summary.Files, singularFile, pluralFiles))
	if summary.Skipped > 0 {
		line += fmt.Sprintf(skippedSuffixFormat, summary.Skipped)
	}
	return line
}
