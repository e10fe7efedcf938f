// Package core contains the business logic for taskboard: task lifecycle
// management, the query engine, and configuration handling.
package core

import (
	"fmt"

	"github.com/drapaimern/taskboard/pkg/models"
)

// TaskStore is the persistence contract the manager drives. Defining it
// here keeps core independent of the storage package.
type TaskStore interface {
	Create(draft models.TaskDraft) (*models.Task, error)
	CreateAll(drafts []models.TaskDraft) ([]models.Task, error)
	Get(id string) (*models.Task, error)
	Update(id string, upd models.TaskUpdate) (*models.Task, error)
	Move(id string, status models.Status) (*models.Task, error)
	Delete(id string) error
	ListAll() ([]models.Task, error)
}

// EventRecorder receives task mutation events for the audit log.
// Implementations must be best-effort; recording never fails an operation.
type EventRecorder interface {
	Record(eventType, taskID, detail string)
}

// TaskManager defines the interface for task lifecycle operations.
type TaskManager interface {
	CreateTask(draft models.TaskDraft) (*models.Task, error)
	GetTask(id string) (*models.Task, error)
	UpdateTask(id string, upd models.TaskUpdate) (*models.Task, error)
	MoveTask(id string, status models.Status) (*models.Task, error)
	DeleteTask(id string) error
	GetAllTasks() ([]models.Task, error)
	QueryTasks(filter models.TaskFilter) ([]models.Task, error)
	ImportTasks(drafts []models.TaskDraft) ([]models.Task, error)
	CountByStatus() (map[models.Status]int, error)
}

// taskManager implements TaskManager on top of a TaskStore, applying
// configured defaults and recording mutation events.
type taskManager struct {
	store           TaskStore
	events          EventRecorder
	defaultStatus   models.Status
	defaultPriority models.Priority
}

// NewTaskManager creates a TaskManager. events may be nil to disable the
// audit log.
func NewTaskManager(store TaskStore, events EventRecorder, cfg *models.GlobalConfig) TaskManager {
	tm := &taskManager{
		store:           store,
		events:          events,
		defaultStatus:   models.StatusBacklog,
		defaultPriority: models.DefaultPriority,
	}
	if cfg != nil {
		if cfg.DefaultStatus.Valid() {
			tm.defaultStatus = cfg.DefaultStatus
		}
		if cfg.DefaultPriority.Valid() {
			tm.defaultPriority = cfg.DefaultPriority
		}
	}
	return tm
}

func (tm *taskManager) record(eventType, taskID, detail string) {
	if tm.events != nil {
		tm.events.Record(eventType, taskID, detail)
	}
}

// CreateTask fills in configured defaults for status and priority, then
// delegates to the store for validation and insertion.
func (tm *taskManager) CreateTask(draft models.TaskDraft) (*models.Task, error) {
	if draft.Status == "" {
		draft.Status = tm.defaultStatus
	}
	if draft.Priority == "" {
		draft.Priority = tm.defaultPriority
	}
	task, err := tm.store.Create(draft)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	tm.record("task.created", task.ID, task.Title)
	return task, nil
}

func (tm *taskManager) GetTask(id string) (*models.Task, error) {
	return tm.store.Get(id)
}

func (tm *taskManager) UpdateTask(id string, upd models.TaskUpdate) (*models.Task, error) {
	task, err := tm.store.Update(id, upd)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	tm.record("task.updated", task.ID, task.Title)
	return task, nil
}

// MoveTask is the status-only update. It succeeds even when the task is
// already in the target column.
func (tm *taskManager) MoveTask(id string, status models.Status) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("moving task: unknown status %q: %w", status, models.ErrValidation)
	}
	task, err := tm.store.Move(id, status)
	if err != nil {
		return nil, fmt.Errorf("moving task: %w", err)
	}
	tm.record("task.moved", task.ID, string(status))
	return task, nil
}

func (tm *taskManager) DeleteTask(id string) error {
	if err := tm.store.Delete(id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	tm.record("task.deleted", id, "")
	return nil
}

func (tm *taskManager) GetAllTasks() ([]models.Task, error) {
	return tm.store.ListAll()
}

// QueryTasks runs the filter over the baseline ordering. The result is an
// order-preserving subsequence of GetAllTasks.
func (tm *taskManager) QueryTasks(filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := tm.store.ListAll()
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return FilterTasks(tasks, filter), nil
}

// ImportTasks inserts every draft atomically; a single bad draft aborts
// the whole batch and leaves the store unchanged.
func (tm *taskManager) ImportTasks(drafts []models.TaskDraft) ([]models.Task, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	for i := range drafts {
		if drafts[i].Status == "" {
			drafts[i].Status = tm.defaultStatus
		}
		if drafts[i].Priority == "" {
			drafts[i].Priority = tm.defaultPriority
		}
	}
	tasks, err := tm.store.CreateAll(drafts)
	if err != nil {
		return nil, fmt.Errorf("importing tasks: %w", err)
	}
	tm.record("tasks.imported", "", fmt.Sprintf("%d tasks", len(tasks)))
	return tasks, nil
}

// CountByStatus returns the number of tasks in each of the four columns.
// Columns without tasks are present with a zero count.
func (tm *taskManager) CountByStatus() (map[models.Status]int, error) {
	tasks, err := tm.store.ListAll()
	if err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}
	counts := make(map[models.Status]int, 4)
	for _, status := range models.AllStatuses() {
		counts[status] = 0
	}
	for _, task := range tasks {
		counts[task.Status]++
	}
	return counts, nil
}
