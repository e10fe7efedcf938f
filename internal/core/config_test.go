package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drapaimern/taskboard/pkg/models"
)

func TestLoadGlobalConfig_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != filepath.Join(dir, "tasks.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
	if cfg.DefaultStatus != models.StatusBacklog {
		t.Fatalf("unexpected default status %q", cfg.DefaultStatus)
	}
	if cfg.DefaultPriority != models.DefaultPriority {
		t.Fatalf("unexpected default priority %q", cfg.DefaultPriority)
	}
	if !cfg.EventLogEnabled {
		t.Fatal("event log should default to enabled")
	}
}

func TestSaveThenLoadGlobalConfig(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	want := &models.GlobalConfig{
		DatabasePath:    filepath.Join(dir, "custom.db"),
		DefaultPriority: models.PriorityHigh,
		DefaultStatus:   models.StatusInProgress,
		EventLogEnabled: false,
	}
	if err := cm.SaveGlobalConfig(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.DatabasePath != want.DatabasePath {
		t.Errorf("database path: got %q, want %q", got.DatabasePath, want.DatabasePath)
	}
	if got.DefaultPriority != want.DefaultPriority {
		t.Errorf("priority: got %q, want %q", got.DefaultPriority, want.DefaultPriority)
	}
	if got.DefaultStatus != want.DefaultStatus {
		t.Errorf("status: got %q, want %q", got.DefaultStatus, want.DefaultStatus)
	}
	if got.EventLogEnabled != want.EventLogEnabled {
		t.Errorf("event log: got %v, want %v", got.EventLogEnabled, want.EventLogEnabled)
	}
}

func TestLoadGlobalConfig_PartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".taskboard.yaml")
	data := []byte("defaults:\n  priority: low\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultPriority != models.PriorityLow {
		t.Fatalf("priority not read: %q", cfg.DefaultPriority)
	}
	// Unset keys fall back to defaults.
	if cfg.DefaultStatus != models.StatusBacklog {
		t.Fatalf("status should default: %q", cfg.DefaultStatus)
	}
	if cfg.DatabasePath != filepath.Join(dir, "tasks.db") {
		t.Fatalf("database path should default: %q", cfg.DatabasePath)
	}
}

func TestLoadGlobalConfig_InvalidStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".taskboard.yaml")
	data := []byte("defaults:\n  status: parked\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := NewConfigurationManager(dir).LoadGlobalConfig(); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestLoadGlobalConfig_NormalizesStatusSpelling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".taskboard.yaml")
	data := []byte("defaults:\n  status: \"In Progress\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultStatus != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", cfg.DefaultStatus)
	}
}
