package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/amonks/taskgraph/internal/strings"
)

// Wrap reflows each paragraph of value to width and indents every line by
// indent spaces. Blank lines separate paragraphs.
func Wrap(value string, width, indent int) string {
	wrapWidth := max(width-indent, 1)

	var wrapped []string
	for _, paragraph := range internalstrings.Paragraphs(value) {
		text := internalstrings.NormalizeWhitespace(paragraph)
		wrapped = append(wrapped, IndentBlock(wordwrap.String(text, wrapWidth), indent))
	}
	return strings.Join(wrapped, "\n\n")
}

// IndentBlock prefixes each line with spaces.
func IndentBlock(value string, spaces int) string {
	value = internalstrings.TrimTrailingNewlines(value)
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
