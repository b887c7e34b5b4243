package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/hours"
	"github.com/Veraticus/payday/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the timer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	session := m.tracker.Session()
	elapsed := m.tracker.Elapsed(m.now)
	earned := hours.ComputeSalary(elapsed.Decimal(), m.tracker.Rate())

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(cli.ClockIcon + " Work Hours"))
	b.WriteString("\n")

	b.WriteString(m.row("Status", m.status(session)))
	b.WriteString(m.row("Started", startedAt(session)))
	b.WriteString(m.row("Worked", m.theme.Value.Render(elapsed.String())))
	b.WriteString(m.row("Breaks", model.NewWorkedTime(model.TotalBreakTime(session.Breaks)).String()))
	b.WriteString(m.row("Earned", m.theme.Value.Render(cli.FormatMoney(earned))))
	b.WriteString("\n")

	ratio := float64(elapsed.Duration()) / float64(hours.RegularDay)
	b.WriteString(m.progress.ViewAs(min(ratio, 1)))
	b.WriteString("\n")
	if ratio > 1 {
		b.WriteString(m.theme.StatusBreak.Render("Overtime"))
		b.WriteString("\n")
	}

	if n := len(m.saved); n > 0 {
		last := m.saved[n-1]
		b.WriteString("\n")
		b.WriteString(m.theme.StatusSuccess.Render(fmt.Sprintf("Saved %s  %s  %s",
			last.Date.String(), last.HoursWorked.String(), cli.FormatMoney(last.TotalSalary))))
		b.WriteString("\n")
	}
	if m.lastError != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render(errorText(m.lastError)))
		b.WriteString("\n")
	}
	if m.confirming {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusBreak.Render("Session not saved. Press q again to discard it."))
		b.WriteString("\n")
	}

	content := m.theme.Box.Width(m.width).Render(strings.TrimRight(b.String(), "\n"))
	if !m.config.ShowHelp {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.help.View(m.keymap))
}

func (m Model) row(label, value string) string {
	return m.theme.Label.Render(label) + value + "\n"
}

func (m Model) status(session hours.Session) string {
	switch {
	case m.saving:
		return m.theme.StatusIdle.Render("Saving...")
	case session.IsOnBreak:
		return m.theme.StatusBreak.Render("On break")
	case session.IsTracking:
		return m.theme.StatusRunning.Render("Tracking")
	default:
		return m.theme.StatusIdle.Render("Idle")
	}
}

func startedAt(session hours.Session) string {
	if !session.IsTracking {
		return "-"
	}
	return session.StartedAt.Format(time.TimeOnly)
}
