package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amonks/taskgraph/internal/markdown"
	"github.com/amonks/taskgraph/internal/ui"
	"github.com/amonks/taskgraph/todo"
)

const taskDetailLineWidth = 80

const detailTimeLayout = "2006-01-02 15:04"

// printTaskDetail prints detailed information about a task.
func printTaskDetail(w io.Writer, l *todo.List, id todo.ID, styles ui.Styles, color bool, now time.Time) error {
	task, err := l.Get(id)
	if err != nil {
		return err
	}
	number, _ := l.Number(id)
	status, _ := l.Status(id)
	snoozed, _ := l.IsSnoozed(id)
	implicitPriority, _ := l.ImplicitPriority(id)
	implicitDue, _ := l.ImplicitDueDate(id)
	blockers, _ := l.DirectBlockers(id)
	blocked, _ := l.DirectBlocked(id)

	fmt.Fprintf(w, "Number:   %s\n", styles.Number(number))
	fmt.Fprintf(w, "Status:   %s\n", styles.Status(status, snoozed))
	if implicitPriority != task.Priority {
		fmt.Fprintf(w, "Priority: %d (inherited %d)\n", task.Priority, implicitPriority)
	} else {
		fmt.Fprintf(w, "Priority: %d\n", task.Priority)
	}
	if line := formatDueLine(task.DueDate, implicitDue, styles, now); line != "" {
		fmt.Fprintf(w, "Due:      %s\n", line)
	}
	if snoozed {
		fmt.Fprintf(w, "Snoozed:  until %s\n", task.StartDate.Local().Format(detailTimeLayout))
	}
	fmt.Fprintf(w, "Created:  %s (%s)\n", task.CreationTime.Local().Format(detailTimeLayout), ui.FormatTimeAgo(task.CreationTime, now))
	if task.CompletionTime != nil {
		fmt.Fprintf(w, "Checked:  %s (%s)\n", task.CompletionTime.Local().Format(detailTimeLayout), ui.FormatTimeAgo(*task.CompletionTime, now))
	}
	if len(blockers) > 0 {
		fmt.Fprintf(w, "Blocked by: %s\n", formatNumbers(l, blockers, styles))
	}
	if len(blocked) > 0 {
		fmt.Fprintf(w, "Blocks:   %s\n", formatNumbers(l, blocked, styles))
	}

	fmt.Fprintf(w, "\n%s\n%s\n", styles.Header("Description:"), formatTaskDesc(task.Desc, color))
	return nil
}

func formatDueLine(explicit, implicit *time.Time, styles ui.Styles, now time.Time) string {
	if implicit == nil {
		return ""
	}
	relative, overdue := ui.FormatDue(*implicit, now)
	if overdue {
		relative = styles.Overdue(relative)
	}
	line := fmt.Sprintf("%s (%s)", implicit.Local().Format(detailTimeLayout), relative)
	if explicit == nil || !explicit.Equal(*implicit) {
		line += " inherited"
	}
	return line
}

func formatNumbers(l *todo.List, ids []todo.ID, styles ui.Styles) string {
	numbers := make([]string, 0, len(ids))
	for _, id := range ids {
		number, err := l.Number(id)
		if err != nil {
			continue
		}
		numbers = append(numbers, styles.Number(number))
	}
	return strings.Join(numbers, ", ")
}

func formatTaskDesc(desc string, color bool) string {
	formatted := markdown.Render(taskDetailLineWidth, 2, color, desc)
	if strings.TrimSpace(formatted) == "" {
		return ui.Wrap(desc, taskDetailLineWidth, 2)
	}
	return formatted
}
