// Package storage provides the persistence layer for taskboard: a SQLite
// database accessed through GORM, holding the single tasks table.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/drapaimern/taskboard/pkg/models"
)

// taskRecord is the persisted row shape. Tags are flattened to a
// comma-joined string here and nowhere else; everything above this file
// sees a proper tag set.
type taskRecord struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;index"`
	Assignee    string
	Priority    string `gorm:"not null"`
	DueDate     *time.Time
	Tags        string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName pins the table name regardless of GORM pluralization settings.
func (taskRecord) TableName() string { return "tasks" }

// TaskStore persists tasks in a SQLite database. A single mutex serializes
// mutations (single-writer discipline); each call runs in its own
// transaction, so a failed validation leaves the stored row unchanged.
type TaskStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewTaskStore opens the SQLite database at path and migrates the tasks
// table. Pass ":memory:" for an ephemeral store (used by tests). A failure
// here is unrecoverable and should abort startup.
func NewTaskStore(path string) (*TaskStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("opening task database %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening task database %s: %w", path, err)
	}
	// Single-user board: one connection is all we need, and it keeps
	// ":memory:" databases stable across calls.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRecord{}); err != nil {
		return nil, fmt.Errorf("migrating tasks table: %w", err)
	}
	return &TaskStore{db: db}, nil
}

// Close releases the underlying database connection.
func (s *TaskStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("closing task database: %w", err)
	}
	return sqlDB.Close()
}

// Create validates the draft, assigns a fresh id and timestamps, and
// inserts the task. Titles are trimmed; tags are normalized to a set.
func (s *TaskStore) Create(draft models.TaskDraft) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := recordFromDraft(draft)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	task := taskFromRecord(*rec)
	return &task, nil
}

// CreateAll inserts every draft in one transaction. Either all tasks are
// created or none are; the atomic import path depends on this.
func (s *TaskStore) CreateAll(drafts []models.TaskDraft) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, 0, len(drafts))
	base := time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, draft := range drafts {
			rec, err := recordFromDraft(draft)
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			// Strictly increasing timestamps keep the batch's relative
			// order under the created_at baseline ordering.
			rec.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			rec.UpdatedAt = rec.CreatedAt
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("inserting task %d: %w", i+1, err)
			}
			tasks = append(tasks, taskFromRecord(*rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns the task with the given id, or models.ErrNotFound.
func (s *TaskStore) Get(id string) (*models.Task, error) {
	var rec taskRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateLookupErr(id, err)
	}
	task := taskFromRecord(rec)
	return &task, nil
}

// Update applies the supplied fields to the task with the given id,
// re-validating title, status and priority when present, and refreshes
// UpdatedAt. The read-modify-write runs in one transaction.
func (s *TaskStore) Update(id string, upd models.TaskUpdate) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rec taskRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return translateLookupErr(id, err)
		}
		if err := applyUpdate(&rec, upd); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("updating task %s: %w", id, err)
		}
		out = taskFromRecord(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Move changes only the task's status. Moving a task to the column it is
// already in succeeds and refreshes UpdatedAt.
func (s *TaskStore) Move(id string, status models.Status) (*models.Task, error) {
	return s.Update(id, models.TaskUpdate{Status: &status})
}

// Delete removes the task permanently. Its id is a random UUID and is
// never handed out again.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var rec taskRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return translateLookupErr(id, err)
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return fmt.Errorf("deleting task %s: %w", id, err)
		}
		return nil
	})
}

// ListAll returns every task ordered by creation time ascending, with id as
// a tiebreak so the order is total and deterministic. This is the baseline
// ordering every other view builds from.
func (s *TaskStore) ListAll() ([]models.Task, error) {
	var recs []taskRecord
	if err := s.db.Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, taskFromRecord(rec))
	}
	return tasks, nil
}

func translateLookupErr(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("task %s: %w", id, models.ErrNotFound)
	}
	return fmt.Errorf("fetching task %s: %w", id, err)
}

func recordFromDraft(draft models.TaskDraft) (*taskRecord, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, fmt.Errorf("title must not be empty: %w", models.ErrValidation)
	}
	if !draft.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", draft.Status, models.ErrValidation)
	}
	priority := draft.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("unknown priority %q: %w", draft.Priority, models.ErrValidation)
	}
	return &taskRecord{
		ID:          uuid.NewString(),
		Title:       title,
		Description: draft.Description,
		Status:      string(draft.Status),
		Assignee:    strings.TrimSpace(draft.Assignee),
		Priority:    string(priority),
		DueDate:     draft.DueDate,
		Tags:        models.FormatTags(draft.Tags),
	}, nil
}

func applyUpdate(rec *taskRecord, upd models.TaskUpdate) error {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return fmt.Errorf("title must not be empty: %w", models.ErrValidation)
		}
		rec.Title = title
	}
	if upd.Description != nil {
		rec.Description = *upd.Description
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return fmt.Errorf("unknown status %q: %w", *upd.Status, models.ErrValidation)
		}
		rec.Status = string(*upd.Status)
	}
	if upd.Assignee != nil {
		rec.Assignee = strings.TrimSpace(*upd.Assignee)
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return fmt.Errorf("unknown priority %q: %w", *upd.Priority, models.ErrValidation)
		}
		rec.Priority = string(*upd.Priority)
	}
	if upd.DueDate != nil {
		rec.DueDate = *upd.DueDate
	}
	if upd.Tags != nil {
		rec.Tags = models.FormatTags(*upd.Tags)
	}
	return nil
}

func taskFromRecord(rec taskRecord) models.Task {
	return models.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      models.Status(rec.Status),
		Assignee:    rec.Assignee,
		Priority:    models.Priority(rec.Priority),
		DueDate:     rec.DueDate,
		Tags:        models.ParseTags(rec.Tags),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
