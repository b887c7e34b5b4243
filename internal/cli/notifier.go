package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/payday/internal/service"
)

// Notifier prints notifications to a terminal, one styled line each.
type Notifier struct {
	writer io.Writer
	quiet  bool
	mu     sync.Mutex
}

// NewNotifier creates a notifier writing to w. A quiet notifier only
// prints warnings and errors.
func NewNotifier(w io.Writer, quiet bool) *Notifier {
	return &Notifier{writer: w, quiet: quiet}
}

// Notify implements service.Notifier.
func (n *Notifier) Notify(level service.Level, message string) {
	if n.quiet && level != service.LevelWarning && level != service.LevelError {
		return
	}

	var line string
	switch level {
	case service.LevelSuccess:
		line = FormatSuccess(message)
	case service.LevelWarning:
		line = FormatWarning(message)
	case service.LevelError:
		line = FormatError(message)
	default:
		line = FormatInfo(message)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.writer, line); err != nil {
		slog.Warn("Failed to write notification", "error", err)
	}
}
