package scaffold

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer is the remote trust gate: it must answer before any network
// access happens for a remote scaffold source.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// PromptConfirmer asks on Out and reads a single answer line from In.
// Only "y" or "yes" (case-insensitive) confirm; anything else, or In
// closing before an answer, does not.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewPromptConfirmer returns a confirmer wired to stdin/stderr
func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{In: os.Stdin, Out: os.Stderr}
}

// Confirm implements Confirmer
func (c *PromptConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N] ", c.formatPrompt(prompt))

	scanner := bufio.NewScanner(c.In)
	if !scanner.Scan() {
		// Closed or failed input stream is a non-answer, not a hang.
		return false, scanner.Err()
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// formatPrompt bolds the prompt only when Out is really a terminal, so a
// redirected or injected writer gets plain text.
func (c *PromptConfirmer) formatPrompt(s string) string {
	f, ok := c.Out.(*os.File)
	if !ok {
		return s
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}
