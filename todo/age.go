package todo

import (
	"time"

	internalage "github.com/amonks/taskgraph/internal/age"
)

// Elapsed returns how long a task took, measured from its start date to its
// completion, or how long it has been open so far.
func Elapsed(item Task, now time.Time) (time.Duration, bool) {
	return internalage.Span(item.StartDate, item.CompletionTime, now)
}
