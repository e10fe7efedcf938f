// Package bulk implements the CSV export/import pathway. Export writes the
// full task set as tabular text; Import parses the same layout back into
// task drafts. Import never preserves ids; the store always assigns fresh
// ones.
package bulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/drapaimern/taskboard/pkg/models"
)

// Columns is the header row. Export emits exactly this order; Import
// resolves columns by name so round-tripping is insensitive to reordering.
var Columns = []string{
	"id", "title", "description", "status", "assignee",
	"priority", "due_date", "tags", "created_at", "updated_at",
}

// Export writes tasks as CSV with a header row. One row per task, fields
// in the order of Columns, tags comma-joined (and therefore quoted per
// RFC 4180 whenever non-empty).
func Export(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format(models.DueDateLayout)
		}
		row := []string{
			task.ID,
			task.Title,
			task.Description,
			string(task.Status),
			task.Assignee,
			string(task.Priority),
			due,
			models.FormatTags(task.Tags),
			task.CreatedAt.UTC().Format(time.RFC3339),
			task.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for task %s: %w", task.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// Import parses CSV content into task drafts. The header must contain
// title and status columns; id, created_at and updated_at columns are
// ignored. Any malformed row fails the whole parse with models.ErrFormat,
// so the caller can keep imports atomic.
func Import(r io.Reader) ([]models.TaskDraft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per row against the header

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", models.ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %v: %w", err, models.ErrFormat)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("missing required column \"title\": %w", models.ErrFormat)
	}
	if _, ok := cols["status"]; !ok {
		return nil, fmt.Errorf("missing required column \"status\": %w", models.ErrFormat)
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var drafts []models.TaskDraft
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", line, err, models.ErrFormat)
		}

		draft := models.TaskDraft{
			Title:       cell(row, "title"),
			Description: cell(row, "description"),
			Assignee:    cell(row, "assignee"),
			Tags:        models.ParseTags(cell(row, "tags")),
		}
		if draft.Title == "" {
			return nil, fmt.Errorf("row %d: missing title: %w", line, models.ErrFormat)
		}

		// An empty status cell falls back to backlog so exports from
		// tools with optional status columns still load.
		rawStatus := cell(row, "status")
		if rawStatus == "" {
			draft.Status = models.StatusBacklog
		} else {
			status, err := models.ParseStatus(rawStatus)
			if err != nil {
				return nil, fmt.Errorf("row %d: unknown status %q: %w", line, rawStatus, models.ErrFormat)
			}
			draft.Status = status
		}

		if rawPriority := cell(row, "priority"); rawPriority != "" {
			priority, err := models.ParsePriority(rawPriority)
			if err != nil {
				return nil, fmt.Errorf("row %d: unknown priority %q: %w", line, rawPriority, models.ErrFormat)
			}
			draft.Priority = priority
		}

		if rawDue := cell(row, "due_date"); rawDue != "" {
			due, err := time.Parse(models.DueDateLayout, rawDue)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad due_date %q (want YYYY-MM-DD): %w", line, rawDue, models.ErrFormat)
			}
			draft.DueDate = &due
		}

		drafts = append(drafts, draft)
	}
	return drafts, nil
}
