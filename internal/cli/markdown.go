package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders model prose as ANSI markdown, falling back to
// the raw text when the renderer is unavailable.
func renderMarkdown(md string, width int) string {
	if width < 20 {
		width = 78
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
