package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/taskgraph/todo"
)

// Styles renders task list decorations. The zero value renders plain text.
type Styles struct {
	enabled  bool
	header   lipgloss.Style
	number   lipgloss.Style
	blocked  lipgloss.Style
	complete lipgloss.Style
	snoozed  lipgloss.Style
	overdue  lipgloss.Style
}

// NewStyles returns styles that emit ANSI sequences only when enabled.
func NewStyles(enabled bool) Styles {
	return Styles{
		enabled:  enabled,
		header:   lipgloss.NewStyle().Bold(true),
		number:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		blocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		complete: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		snoozed:  lipgloss.NewStyle().Faint(true),
		overdue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// Header styles a section heading.
func (s Styles) Header(text string) string {
	return s.render(s.header, text)
}

// Number styles a display number.
func (s Styles) Number(n int) string {
	return s.render(s.number, strconv.Itoa(n))
}

// Overdue styles a past-due marker.
func (s Styles) Overdue(text string) string {
	return s.render(s.overdue, text)
}

// Status returns the status label, styled by status. Snoozed incomplete
// tasks are labeled as such.
func (s Styles) Status(status todo.Status, snoozed bool) string {
	switch {
	case status == todo.StatusComplete:
		return s.render(s.complete, string(status))
	case snoozed:
		return s.render(s.snoozed, "snoozed")
	case status == todo.StatusBlocked:
		return s.render(s.blocked, string(status))
	default:
		return string(status)
	}
}

// StatusIcon returns a one-character marker for tree views.
func (s Styles) StatusIcon(status todo.Status) string {
	switch status {
	case todo.StatusComplete:
		return s.render(s.complete, "x")
	case todo.StatusBlocked:
		return s.render(s.blocked, "!")
	default:
		return " "
	}
}
