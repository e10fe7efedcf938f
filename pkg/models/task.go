package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status represents the board column a task occupies.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// AllStatuses returns the four board columns in display order.
func AllStatuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusBlocked, StatusDone}
}

// Valid reports whether s is one of the four recognized columns.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable column heading.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusBlocked:
		return "Blocked"
	case StatusDone:
		return "Done"
	default:
		return "Backlog"
	}
}

// ParseStatus converts user or file input into a Status. Matching is
// case-insensitive and tolerates the "In Progress" / "in-progress" /
// "inprogress" spellings seen at CSV and flag boundaries.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "inprogress" {
		normalized = string(StatusInProgress)
	}
	s := Status(normalized)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q: %w", raw, ErrValidation)
	}
	return s, nil
}

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = PriorityMedium

// AllPriorities returns the priority levels from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is a recognized priority level.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the ordering weight of p, lowest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// ParsePriority converts user or file input into a Priority, case-insensitively.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q: %w", raw, ErrValidation)
	}
	return p, nil
}

// DueDateLayout is the serialized form of due dates at the CSV and CLI boundaries.
const DueDateLayout = "2006-01-02"

// Task represents a single unit of work on the board.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskDraft carries the caller-supplied fields for creating a task.
// The store assigns ID and timestamps.
type TaskDraft struct {
	Title       string
	Description string
	Status      Status
	Assignee    string
	Priority    Priority
	DueDate     *time.Time
	Tags        []string
}

// TaskUpdate carries a partial update. Nil fields are left untouched;
// a non-nil pointer overwrites the field, so an empty string clears it.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Assignee    *string
	Priority    *Priority
	DueDate     **time.Time
	Tags        *[]string
}

// NormalizeTag canonicalizes a single tag: trimmed and lowercased.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags canonicalizes a tag list into a sorted, deduplicated set.
// Applying it twice yields the same result.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}

// ParseTags splits a comma-joined tag string into a normalized tag set.
// Used at the storage column and CSV boundaries, where tags live as one string.
func ParseTags(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(joined, ","))
}

// FormatTags joins a tag set back into the comma-joined boundary form.
func FormatTags(tags []string) string {
	return strings.Join(NormalizeTags(tags), ",")
}
