package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks yes/no questions on a terminal. Anything but an explicit
// yes is a no.
type Confirmer struct {
	reader *LineReader
	writer io.Writer
	force  bool
}

// NewConfirmer creates a confirmer. With force set every prompt is answered
// yes without reading input.
func NewConfirmer(r io.Reader, w io.Writer, force bool) *Confirmer {
	return NewLineConfirmer(NewLineReader(r), w, force)
}

// NewLineConfirmer creates a confirmer sharing a reader with other prompts.
func NewLineConfirmer(r *LineReader, w io.Writer, force bool) *Confirmer {
	return &Confirmer{reader: r, writer: w, force: force}
}

// Confirm implements service.Confirmer.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.force {
		return true, nil
	}
	if _, err := fmt.Fprint(c.writer, FormatPrompt(prompt+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := c.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Prompt asks for a line of free text.
func Prompt(ctx context.Context, r *LineReader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return r.ReadLine(ctx)
}
