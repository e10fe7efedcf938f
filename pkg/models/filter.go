package models

import "time"

// TaskFilter specifies optional criteria for selecting a task subset.
// Zero-value fields impose no constraint; supplied fields are ANDed together.
type TaskFilter struct {
	// Text matches case-insensitively as a substring of Title or Description.
	Text string
	// Assignee matches exactly, case-insensitively.
	Assignee string
	// Status matches exactly; empty means any column.
	Status Status
	// DueFrom / DueTo bound the due date inclusively. A task without a due
	// date is excluded whenever either bound is set.
	DueFrom *time.Time
	DueTo   *time.Time
	// Tags must all be present on the task (AND semantics).
	Tags []string
}

// Empty reports whether the filter imposes no constraints at all.
func (f TaskFilter) Empty() bool {
	return f.Text == "" && f.Assignee == "" && f.Status == "" &&
		f.DueFrom == nil && f.DueTo == nil && len(f.Tags) == 0
}
