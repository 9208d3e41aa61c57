package main

func taskEmptyListMessage(total int, includeAll bool) string {
	if total == 0 {
		return "No tasks."
	}
	if !includeAll {
		return "No tasks to show. Use --all to include snoozed tasks."
	}
	return "No tasks."
}

func doneEmptyListMessage() string {
	return "No completed tasks."
}
