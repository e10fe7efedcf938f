package core

import (
	"strings"

	"github.com/drapaimern/taskboard/pkg/models"
)

// FilterTasks returns the subsequence of tasks matching f, preserving the
// input order. It is a pure function: no store access, no mutation. With
// the board capped at human scale, a linear scan is all this needs.
func FilterTasks(tasks []models.Task, f models.TaskFilter) []models.Task {
	if f.Empty() {
		return tasks
	}
	var out []models.Task
	for _, task := range tasks {
		if MatchesFilter(task, f) {
			out = append(out, task)
		}
	}
	return out
}

// MatchesFilter reports whether a single task satisfies every criterion
// the filter supplies.
func MatchesFilter(task models.Task, f models.TaskFilter) bool {
	if f.Text != "" && !containsFold(task.Title, f.Text) && !containsFold(task.Description, f.Text) {
		return false
	}
	if f.Assignee != "" && !strings.EqualFold(task.Assignee, f.Assignee) {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.DueFrom != nil || f.DueTo != nil {
		// A date filter never matches a task without a due date.
		if task.DueDate == nil {
			return false
		}
		if f.DueFrom != nil && task.DueDate.Before(*f.DueFrom) {
			return false
		}
		if f.DueTo != nil && task.DueDate.After(*f.DueTo) {
			return false
		}
	}
	if len(f.Tags) > 0 && !hasAllTags(task.Tags, f.Tags) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// hasAllTags reports whether every requested tag is present on the task
// (AND semantics). Both sides are compared in normalized form.
func hasAllTags(taskTags, wanted []string) bool {
	have := make(map[string]bool, len(taskTags))
	for _, tag := range taskTags {
		have[models.NormalizeTag(tag)] = true
	}
	for _, tag := range wanted {
		if !have[models.NormalizeTag(tag)] {
			return false
		}
	}
	return true
}
