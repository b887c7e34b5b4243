package tui

import (
	"time"

	"github.com/Veraticus/payday/internal/model"
)

// tickMsg refreshes the live timer.
type tickMsg time.Time

// stoppedMsg reports the result of saving the session.
type stoppedMsg struct {
	err   error
	entry model.HoursEntry
}
