package main

import (
	"fmt"
	"io"

	"github.com/amonks/taskgraph/internal/ui"
	"github.com/amonks/taskgraph/todo"
)

// printDepTree prints a blocker tree with ASCII art.
func printDepTree(w io.Writer, l *todo.List, node *todo.DepTreeNode, prefix string, isLast bool, styles ui.Styles) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		connector = ""
	}

	number, _ := l.Number(node.ID)
	fmt.Fprintf(w, "%s%s[%s] %s (%s)\n",
		prefix, connector, styles.StatusIcon(node.Status), node.Task.Desc, styles.Number(number))

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = " "
	}

	for i, child := range node.Children {
		printDepTree(w, l, child, childPrefix, i == len(node.Children)-1, styles)
	}
}
