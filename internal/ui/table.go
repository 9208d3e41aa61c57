package ui

import (
	"os"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."
const tableColumnGap = 2

// tableViewportWidth reports the width available to tables, or 0 when
// unknown. Tests replace it.
var tableViewportWidth = func() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AlignRight right-aligns the given columns, as for numbers.
func (builder *TableBuilder) AlignRight(columns ...int) *TableBuilder {
	if builder.rightAlign == nil {
		builder.rightAlign = make(map[int]bool, len(columns))
	}
	for _, column := range columns {
		builder.rightAlign[column] = true
	}
	return builder
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// Len returns the number of rows added.
func (builder *TableBuilder) Len() int {
	return len(builder.rows)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return formatTable(builder.headers, builder.rows, builder.rightAlign)
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) string {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	widths := make([]int, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		widths[i] = displayWidth(header)
	}
	for _, row := range normalizedRows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if displayLen := displayWidth(cell); displayLen > widths[i] {
				widths[i] = displayLen
			}
		}
	}

	last := len(widths) - 1
	if viewport := tableViewportWidth(); viewport > 0 && last >= 0 {
		used := 0
		for _, width := range widths[:last] {
			used += width + tableColumnGap
		}
		if available := viewport - used; available > 0 && available < widths[last] {
			widths[last] = available
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i == last && displayWidth(cell) > widths[i] {
				cell = truncateWithEllipsis(cell, widths[i])
			}
			padding := strings.Repeat(" ", max(widths[i]-displayWidth(cell), 0))
			if rightAlign[i] {
				builder.WriteString(padding + cell)
			} else if i == last {
				builder.WriteString(cell)
			} else {
				builder.WriteString(cell + padding)
			}
			if i < last {
				builder.WriteString(strings.Repeat(" ", tableColumnGap))
			}
		}
		builder.WriteByte('\n')
	}

	writeRow(normalizedHeaders)
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	return truncateWithEllipsis(value, tableCellMaxWidth)
}

func truncateWithEllipsis(value string, width int) string {
	if width <= displayWidth(tableCellEllipsis) {
		return tableCellEllipsis
	}
	return truncate.StringWithTail(value, uint(width), tableCellEllipsis)
}

// displayWidth counts terminal columns, skipping escape sequences.
func displayWidth(value string) int {
	return ansi.PrintableRuneWidth(value)
}

func normalizeTableCell(value string) string {
	return cellNewlines.Replace(value)
}

var cellNewlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
