// Package strings holds the text cleanup shared by task descriptions,
// terminal wrapping and markdown rendering.
package strings

import "strings"

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims both ends.
func NormalizeWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeLowerTrimSpace trims surrounding whitespace and lowercases the input.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if !strings.ContainsRune(value, '\r') {
		return value
	}
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(value)
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// Paragraphs splits value on blank lines. Lines within a paragraph are
// joined with single spaces; empty paragraphs are dropped.
func Paragraphs(value string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = current[:0]
		}
	}
	for line := range strings.SplitSeq(NormalizeNewlines(value), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}
