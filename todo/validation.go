package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyDesc is returned when a task description is empty.
	ErrEmptyDesc = errors.New("description cannot be empty")

	// ErrDescTooLong is returned when a description exceeds MaxDescLength.
	ErrDescTooLong = errors.New("description exceeds maximum length")

	// ErrTaskNotFound is returned when an ID no longer refers to a live task.
	ErrTaskNotFound = errors.New("task not found")

	// ErrWouldCycle is returned when an edge would make the graph cyclic.
	ErrWouldCycle = errors.New("would create a dependency cycle")

	// ErrAlreadyComplete is returned when completing a complete task.
	ErrAlreadyComplete = errors.New("task is already complete")

	// ErrAlreadyIncomplete is returned when restoring an incomplete task.
	ErrAlreadyIncomplete = errors.New("task is already incomplete")

	// ErrWouldOrphanDependents is returned when restoring a task would leave a
	// complete task depending on an incomplete one.
	ErrWouldOrphanDependents = errors.New("complete tasks depend on this task")

	// ErrBlocked is returned when checking a blocked task under CheckRejectBlocked.
	ErrBlocked = errors.New("task is blocked")

	// ErrNoPath is returned when no dependency path joins two tasks.
	ErrNoPath = errors.New("no dependency path")

	// ErrInvalidCheckPolicy is returned for an unknown check policy.
	ErrInvalidCheckPolicy = errors.New("invalid check policy")

	// ErrDeserialize is returned when persisted state cannot be decoded.
	ErrDeserialize = errors.New("deserialize task list")

	// ErrIO is returned when persisted state cannot be read or written.
	ErrIO = errors.New("task list i/o")
)

// NumberError reports a display number that matches no task.
type NumberError struct {
	Number int
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("no task numbered %d", e.Number)
}

// Is makes NumberError match ErrTaskNotFound.
func (e *NumberError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// ValidateDesc checks if the description is valid.
func ValidateDesc(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrEmptyDesc
	}
	if n := utf8.RuneCountInString(desc); n > MaxDescLength {
		return fmt.Errorf("%w: %d > %d", ErrDescTooLong, n, MaxDescLength)
	}
	return nil
}

// ValidateTask checks if a task struct is valid on its own.
func ValidateTask(t *Task) error {
	if err := ValidateDesc(t.Desc); err != nil {
		return err
	}
	if t.CreationTime.IsZero() {
		return fmt.Errorf("creation_time cannot be empty")
	}
	return nil
}

func missingTaskError(id ID) error {
	return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}
