// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/amonks/taskgraph/internal/strings"
	"github.com/amonks/taskgraph/internal/ui"
)

type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	width int
	color bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]renderer{}
)

// Render formats markdown text for terminal output, falling back to the
// input when rendering fails. Color selects the dark ANSI style instead of
// plain ASCII.
func Render(width, indent int, color bool, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	indent = max(indent, 0)
	renderWidth := max(width-indent, 1)

	rendered := value
	if r := markdownRenderer(rendererKey{width: renderWidth, color: color}); r != nil {
		if formatted, ok := safeRender(r, value); ok {
			rendered = formatted
		}
	}
	rendered = strings.Trim(rendered, "\n")
	if strings.TrimSpace(rendered) == "" {
		return ""
	}
	return ui.IndentBlock(rendered, indent)
}

func safeRender(r renderer, value string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(key rendererKey) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[key]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	if key.color {
		style = styles.DarkStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(key.width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}

func uintPtr(value uint) *uint {
	return &value
}
