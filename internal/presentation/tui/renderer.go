// Package tui holds the terminal presentation helpers for the interactive
// wizard.
package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/pulmotools/ildflow/pkg/runner"
)

// NewRenderer returns a markdown renderer sized to the current terminal.
// When stdout is not a terminal the content passes through unchanged, so
// piped output stays plain markdown.
func NewRenderer() runner.ContentRenderer {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 && w < width {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return r.Render
}
