package main

import (
	"strconv"
	"time"

	"github.com/amonks/taskgraph/internal/ui"
	"github.com/amonks/taskgraph/todo"
)

// inheritedMarker flags values taken from a blocked task rather than set
// on the task itself.
const inheritedMarker = "*"

// formatTaskTable renders incomplete tasks: number, implicit priority,
// implicit due date, status and description.
func formatTaskTable(l *todo.List, ids []todo.ID, styles ui.Styles, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"#", "PRI", "DUE", "STATUS", "DESC"}, len(ids)).AlignRight(0, 1)
	for _, id := range ids {
		task, err := l.Get(id)
		if err != nil {
			continue
		}
		number, _ := l.Number(id)
		status, _ := l.Status(id)
		snoozed, _ := l.IsSnoozed(id)
		builder.AddRow([]string{
			styles.Number(number),
			formatPriorityCell(l, id, task),
			formatDueCell(l, id, task, styles, now),
			styles.Status(status, snoozed),
			ui.TruncateTableCell(task.Desc),
		})
	}
	return builder.String()
}

func formatPriorityCell(l *todo.List, id todo.ID, task todo.Task) string {
	implicit, _ := l.ImplicitPriority(id)
	cell := strconv.Itoa(implicit)
	if implicit != task.Priority {
		cell += inheritedMarker
	}
	return cell
}

func formatDueCell(l *todo.List, id todo.ID, task todo.Task, styles ui.Styles, now time.Time) string {
	implicit, _ := l.ImplicitDueDate(id)
	if implicit == nil {
		return "-"
	}
	cell, overdue := ui.FormatDue(*implicit, now)
	if task.DueDate == nil || !task.DueDate.Equal(*implicit) {
		cell += inheritedMarker
	}
	if overdue {
		cell = styles.Overdue(cell)
	}
	return cell
}

// formatDoneTable renders complete tasks: number, when they were checked,
// how long they were open and description.
func formatDoneTable(l *todo.List, ids []todo.ID, styles ui.Styles, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"#", "DONE", "TOOK", "DESC"}, len(ids)).AlignRight(0)
	for _, id := range ids {
		task, err := l.Get(id)
		if err != nil || task.CompletionTime == nil {
			continue
		}
		number, _ := l.Number(id)
		took := "-"
		if duration, ok := todo.Elapsed(task, now); ok {
			took = ui.FormatDurationShort(duration)
		}
		builder.AddRow([]string{
			styles.Number(number),
			ui.FormatTimeAgo(*task.CompletionTime, now),
			took,
			ui.TruncateTableCell(task.Desc),
		})
	}
	return builder.String()
}

// formatMatchTable renders tasks of any status.
func formatMatchTable(l *todo.List, ids []todo.ID, styles ui.Styles) string {
	builder := ui.NewTableBuilder([]string{"#", "STATUS", "DESC"}, len(ids)).AlignRight(0)
	for _, id := range ids {
		task, err := l.Get(id)
		if err != nil {
			continue
		}
		number, _ := l.Number(id)
		status, _ := l.Status(id)
		snoozed, _ := l.IsSnoozed(id)
		builder.AddRow([]string{
			styles.Number(number),
			styles.Status(status, snoozed),
			ui.TruncateTableCell(task.Desc),
		})
	}
	return builder.String()
}
