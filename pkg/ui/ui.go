// Package ui renders command views in the format picked by --format.
// Terminal output is styled with lipgloss and pterm, text output is plain
// and tab aligned, json and yaml emit the views as data.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/ui/json"
	"github.com/arthur-debert/xgappup/pkg/ui/terminal"
	"github.com/arthur-debert/xgappup/pkg/ui/text"
	"github.com/arthur-debert/xgappup/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a view from pkg/display
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to the terminal renderer otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidArgument, "unknown format: %v", format)
	}
}
