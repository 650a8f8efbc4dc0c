// Package style defines the visual styling for aidd's terminal output,
// using adaptive colors that adjust to light and dark themes.
package style

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Error styles fatal error lines
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"}).
		Bold(true)

	// Success styles completion lines
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"})

	// Hint styles secondary guidance such as the cleanup hint
	Hint = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"})
)

// RenderMarkdown renders markdown for the terminal via glamour, falling back
// to the raw content off-terminal or on any rendering error.
func RenderMarkdown(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
