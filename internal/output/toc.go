package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/temirov/repokit/internal/toc"
	"github.com/temirov/repokit/internal/types"
)

// RenderHeadings formats headings for the toc command.
func RenderHeadings(format string, headings []toc.Heading, builder toc.Builder) (string, error) {
	switch format {
	case types.FormatHTML:
		return builder.Render(headings), nil
	case types.FormatJSON:
		outputs := make([]types.HeadingOutput, 0, len(headings))
		for _, heading := range headings {
			outputs = append(outputs, types.HeadingOutput{
				Level:  heading.Level,
				Text:   heading.Text,
				Anchor: heading.Anchor(),
			})
		}
		return encodeJSON(outputs)
	default:
		return "", fmt.Errorf(errorUnknownFormat, format)
	}
}

// WriteHeadings renders headings and writes them to writer followed by a newline.
func WriteHeadings(writer io.Writer, format string, headings []toc.Heading, builder toc.Builder) (string, error) {
	rendered, err := RenderHeadings(format, headings, builder)
	if err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(writer, rendered); err != nil {
		return "", err
	}
	return rendered, nil
}

func encodeJSON(payload interface{}) (string, error) {
	encoded, err := json.MarshalIndent(payload, jsonIndentPrefix, jsonIndentSpacer)
	if err != nil {
		return "", fmt.Errorf(errorJSONEncode, err)
	}
	return string(encoded), nil
}
