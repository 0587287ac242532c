// Package display renders markdown for terminal output.
package display

import (
	"github.com/charmbracelet/glamour"
)

// Markdown pretty-prints documents with glamour. The zero value is ready
// to use.
type Markdown struct {
	// Width wraps output at this column; 0 uses the glamour default.
	Width int
}

// Render returns the ANSI-styled form of a markdown document.
func (m Markdown) Render(markdown string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if m.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(m.Width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
