// Package todo implements a personal task list whose tasks form a dependency
// graph.
//
// A task may block other tasks. A task's visible status (complete, incomplete
// or blocked) is derived from the graph rather than stored, as are its
// implicit priority and implicit due date, which flow backward across
// blocking edges from the tasks it blocks.
//
// The public API mirrors the CLI commands:
//   - Add, Remove, SetDesc, SetPriority, SetDueDate, SetStartDate for task data
//   - Check, Restore, Punt for lifecycle and ordering
//   - Block, Unblock, UnblockFrom, Chain, Merge, Path for the graph
//   - Number, LookupByNumber, LookupByName for the user-facing numbering
//   - Clean to rebuild the incomplete order from graph state
package todo

// Status represents the derived state of a task.
type Status string

const (
	// StatusIncomplete indicates the task is not done and nothing blocks it.
	StatusIncomplete Status = "incomplete"

	// StatusBlocked indicates the task is not done and at least one direct
	// blocker is not complete.
	StatusBlocked Status = "blocked"

	// StatusComplete indicates the task has been checked off.
	StatusComplete Status = "complete"
)

// ValidStatuses returns all status values.
func ValidStatuses() []Status {
	return []Status{StatusIncomplete, StatusBlocked, StatusComplete}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// CheckPolicy controls whether Check accepts blocked tasks.
type CheckPolicy string

const (
	// CheckRejectBlocked makes Check fail with ErrBlocked on blocked tasks.
	CheckRejectBlocked CheckPolicy = "reject"

	// CheckAllowBlocked lets Check complete a task whose blockers are still open.
	CheckAllowBlocked CheckPolicy = "allow"
)

// ValidCheckPolicies returns all check policy values.
func ValidCheckPolicies() []CheckPolicy {
	return []CheckPolicy{CheckRejectBlocked, CheckAllowBlocked}
}

// IsValid returns true if the policy is a known value.
func (p CheckPolicy) IsValid() bool {
	for _, valid := range ValidCheckPolicies() {
		if p == valid {
			return true
		}
	}
	return false
}

// Priority constants. Higher values are more urgent; any int is allowed.
const (
	PriorityDefault = 0
	PriorityHigh    = 1
	PriorityLow     = -1
)

// MaxDescLength is the maximum allowed length for a task description.
const MaxDescLength = 500
