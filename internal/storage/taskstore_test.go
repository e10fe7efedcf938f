package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/drapaimern/taskboard/pkg/models"
)

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()
	store, err := NewTaskStore(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDraft(title string) models.TaskDraft {
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return models.TaskDraft{
		Title:    title,
		Status:   models.StatusBacklog,
		Assignee: "dana",
		Priority: models.PriorityHigh,
		DueDate:  &due,
		Tags:     []string{"x", "y"},
	}
}

func TestCreate_EchoesFields(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create(sampleDraft("Write docs"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.ID == "" {
		t.Fatal("expected assigned id")
	}
	if task.Title != "Write docs" {
		t.Fatalf("expected title echoed, got %q", task.Title)
	}
	if task.Status != models.StatusBacklog {
		t.Fatalf("expected backlog, got %q", task.Status)
	}
	if task.Priority != models.PriorityHigh {
		t.Fatalf("expected high, got %q", task.Priority)
	}
	if !reflect.DeepEqual(task.Tags, []string{"x", "y"}) {
		t.Fatalf("expected tags [x y], got %v", task.Tags)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task, err := store.Create(sampleDraft("t"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("id %s assigned twice", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestCreate_EmptyTitle(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(models.TaskDraft{Title: "   ", Status: models.StatusBacklog})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreate_InvalidStatus(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(models.TaskDraft{Title: "ok", Status: "parked"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreate_DefaultsPriority(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create(models.TaskDraft{Title: "ok", Status: models.StatusDone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Priority != models.DefaultPriority {
		t.Fatalf("expected default priority, got %q", task.Priority)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("no-such-id")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_PartialPreservesOtherFields(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("Original"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	title := "Renamed"
	got, err := store.Update(task.ID, models.TaskUpdate{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %q", got.Title)
	}
	if got.Assignee != task.Assignee {
		t.Fatalf("expected assignee preserved, got %q", got.Assignee)
	}
	if got.Priority != task.Priority {
		t.Fatalf("expected priority preserved, got %q", got.Priority)
	}
	if !reflect.DeepEqual(got.Tags, task.Tags) {
		t.Fatalf("expected tags preserved, got %v", got.Tags)
	}
}

func TestUpdate_ClearsOptionalFields(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := ""
	var noDue *time.Time
	got, err := store.Update(task.ID, models.TaskUpdate{
		Assignee: &empty,
		DueDate:  &noDue,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Assignee != "" {
		t.Fatalf("expected assignee cleared, got %q", got.Assignee)
	}
	if got.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", got.DueDate)
	}
}

func TestUpdate_InvalidLeavesRecordUnchanged(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("Keep me"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ""
	status := models.StatusDone
	_, err = store.Update(task.ID, models.TaskUpdate{Title: &bad, Status: &status})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Keep me" || got.Status != models.StatusBacklog {
		t.Fatalf("failed update must not change the record: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := newTestStore(t)
	title := "t"
	_, err := store.Update("missing", models.TaskUpdate{Title: &title})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMove_ThenGet(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Move(task.ID, models.StatusDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusDone {
		t.Fatalf("expected done, got %q", got.Status)
	}
}

func TestMove_Idempotent(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := store.Move(task.ID, models.StatusBlocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Move(task.ID, models.StatusBlocked)
	if err != nil {
		t.Fatalf("second move to same column must succeed, got %v", err)
	}

	if second.Status != models.StatusBlocked {
		t.Fatalf("expected blocked, got %q", second.Status)
	}
	if second.Title != first.Title || second.Assignee != first.Assignee {
		t.Fatal("second move must not change anything but UpdatedAt")
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatal("UpdatedAt must not go backwards")
	}
}

func TestDelete_ThenGone(t *testing.T) {
	store := newTestStore(t)
	task, err := store.Create(sampleDraft("t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	all, err := store.ListAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, got := range all {
		if got.ID == task.ID {
			t.Fatal("deleted id reappeared in ListAll")
		}
	}
}

func TestDelete_NotFound(t *testing.T) {
	store := newTestStore(t)
	if err := store.Delete("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAll_CreationOrder(t *testing.T) {
	store := newTestStore(t)

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		if _, err := store.Create(sampleDraft(title)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at
	}

	all, err := store.ListAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(all))
	}
	for i, title := range titles {
		if all[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, all[i].Title)
		}
	}
}

func TestCreateAll_PreservesOrder(t *testing.T) {
	store := newTestStore(t)

	drafts := []models.TaskDraft{
		{Title: "a", Status: models.StatusBacklog},
		{Title: "b", Status: models.StatusDone},
		{Title: "c", Status: models.StatusBlocked},
	}
	created, err := store.CreateAll(drafts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(created))
	}

	all, err := store.ListAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, all[i].Title)
		}
	}
}

func TestCreateAll_AtomicOnInvalidDraft(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Create(sampleDraft("pre-existing")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drafts := []models.TaskDraft{
		{Title: "good", Status: models.StatusBacklog},
		{Title: "", Status: models.StatusBacklog}, // invalid
	}
	if _, err := store.CreateAll(drafts); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	all, err := store.ListAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].Title != "pre-existing" {
		t.Fatalf("failed batch must leave the store unchanged, got %d tasks", len(all))
	}
}

func TestTagsRoundTripThroughColumn(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create(models.TaskDraft{
		Title:  "t",
		Status: models.StatusBacklog,
		Tags:   []string{" Beta ", "alpha", "BETA"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"alpha", "beta"}) {
		t.Fatalf("expected normalized tag set, got %v", got.Tags)
	}
}
