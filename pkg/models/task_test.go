package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"backlog":     StatusBacklog,
		"Backlog":     StatusBacklog,
		"in_progress": StatusInProgress,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"InProgress":  StatusInProgress,
		"BLOCKED":     StatusBlocked,
		"done":        StatusDone,
		"  done  ":    StatusDone,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q): unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "todo", "review", "doneish"} {
		_, err := ParseStatus(raw)
		if err == nil {
			t.Fatalf("ParseStatus(%q): expected error", raw)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseStatus(%q): expected ErrValidation, got %v", raw, err)
		}
	}
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("HIGH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != PriorityHigh {
		t.Fatalf("expected high, got %q", got)
	}

	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPriorityRank_Ordering(t *testing.T) {
	if !(PriorityLow.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityHigh.Rank()) {
		t.Fatal("priority ranks are not ordered low < medium < high")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusInProgress.Label(); got != "In Progress" {
		t.Fatalf("expected \"In Progress\", got %q", got)
	}
	if got := StatusBacklog.Label(); got != "Backlog" {
		t.Fatalf("expected \"Backlog\", got %q", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Urgent", "backend", "URGENT", "", "  "})
	want := []string{"backend", "urgent"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	once := NormalizeTags([]string{"B", "a", "b", " c "})
	twice := NormalizeTags(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent: %v vs %v", once, twice)
	}
}

func TestParseFormatTags_RoundTrip(t *testing.T) {
	joined := "x, Y ,x"
	set := ParseTags(joined)
	if !reflect.DeepEqual(set, []string{"x", "y"}) {
		t.Fatalf("unexpected tag set: %v", set)
	}
	rejoined := FormatTags(set)
	if rejoined != "x,y" {
		t.Fatalf("expected \"x,y\", got %q", rejoined)
	}
	if !reflect.DeepEqual(ParseTags(rejoined), set) {
		t.Fatal("split/rejoin is not stable")
	}
}

func TestParseTags_Empty(t *testing.T) {
	if got := ParseTags("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestAllStatuses_Count(t *testing.T) {
	statuses := AllStatuses()
	if len(statuses) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Valid() {
			t.Fatalf("status %q not valid", status)
		}
	}
}
