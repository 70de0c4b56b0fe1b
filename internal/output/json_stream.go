package output

import (
	"fmt"
	"io"

	"github.com/temirov/repokit/internal/layout"
	"github.com/temirov/repokit/internal/services/stream"
	"github.com/temirov/repokit/internal/types"
)

type jsonTreeDocument struct {
	*types.TreeNode
	Summary *jsonSummary `json:"summary,omitempty"`
}

type jsonSummary struct {
	Directories int `json:"directories"`
	Files       int `json:"files"`
	Skipped     int `json:"skipped,omitempty"`
}

type jsonStreamRenderer struct {
	stdout         io.Writer
	totalRoots     int
	includeSummary bool
	assembler      *layout.TreeAssembler
	documents      []jsonTreeDocument
}

// NewJSONStreamRenderer assembles each root into a nested object and writes them on Flush:
// a single object for one root, an array otherwise.
func NewJSONStreamRenderer(stdout io.Writer, totalRoots int, includeSummary bool) StreamRenderer {
	if totalRoots < 1 {
		totalRoots = 1
	}
	return &jsonStreamRenderer{stdout: stdout, totalRoots: totalRoots, includeSummary: includeSummary}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		renderer.assembler = &layout.TreeAssembler{}
	case stream.EventKindEntry:
		if event.Entry == nil {
			return nil
		}
		if renderer.assembler == nil || (event.Entry.Depth > 0 && renderer.assembler.Root() == nil) {
			return fmt.Errorf(errorMissingTreeRoot, event.Entry.Path)
		}
		renderer.assembler.Add(*event.Entry)
	case stream.EventKindSummary:
		if renderer.assembler == nil || renderer.assembler.Root() == nil {
			return nil
		}
		document := jsonTreeDocument{TreeNode: renderer.assembler.Root()}
		if renderer.includeSummary && event.Summary != nil {
			document.Summary = &jsonSummary{
				Directories: event.Summary.Directories,
				Files:       event.Summary.Files,
				Skipped:     event.Summary.Skipped,
			}
		}
		renderer.documents = append(renderer.documents, document)
		renderer.assembler = nil
	}
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	if renderer.stdout == nil || len(renderer.documents) == 0 {
		return nil
	}
	var payload interface{} = renderer.documents
	if renderer.totalRoots == 1 && len(renderer.documents) == 1 {
		payload = renderer.documents[0]
	}
	return writeJSON(renderer.stdout, payload)
}

func writeJSON(writer io.Writer, payload interface{}) error {
	encoded, err := encodeJSON(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer, encoded)
	return err
}
