package todo

import "time"

// Task represents a single record in the list. It has no knowledge of the
// graph; status and implicit values are derived by the List.
type Task struct {
	// Desc is the task description.
	Desc string `json:"desc"`

	// CreationTime is when the task was added.
	CreationTime time.Time `json:"creation_time"`

	// CompletionTime is when the task was checked off (nil while incomplete).
	CompletionTime *time.Time `json:"completion_time,omitempty"`

	// Priority is the explicit priority. Higher is more urgent.
	Priority int `json:"priority"`

	// DueDate is the explicit due date (nil when unset).
	DueDate *time.Time `json:"due_date,omitempty"`

	// StartDate hides the task from default views until it passes.
	StartDate time.Time `json:"start_date"`
}

// IsComplete returns true when the task has a completion time.
func (t Task) IsComplete() bool {
	return t.CompletionTime != nil
}

// IsSnoozed returns true when the task is incomplete and its start date is
// after now.
func (t Task) IsSnoozed(now time.Time) bool {
	return !t.IsComplete() && t.StartDate.After(now)
}

func (t Task) clone() Task {
	out := t
	if t.CompletionTime != nil {
		completed := *t.CompletionTime
		out.CompletionTime = &completed
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}

// TimePtr returns a pointer to the provided time.
func TimePtr(value time.Time) *time.Time {
	return &value
}
