// Package internal provides the App struct that wires all components of
// taskboard together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drapaimern/taskboard/internal/cli"
	"github.com/drapaimern/taskboard/internal/core"
	"github.com/drapaimern/taskboard/internal/observability"
	"github.com/drapaimern/taskboard/internal/storage"
)

// App holds all service dependencies for taskboard. It is constructed once
// at process start and closed at shutdown; no component lives in a
// module-level singleton.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	Store *storage.TaskStore

	// Core services
	TaskMgr core.TaskManager

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components. basePath is the directory
// holding the configuration file, the database and the event log
// (typically ~/.taskboard or a directory containing .taskboard.yaml).
func NewApp(basePath string) (*App, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating base path %s: %w", basePath, err)
	}

	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// --- Storage layer ---
	// A store that cannot be opened is fatal; nothing degrades gracefully
	// without persistence.
	app.Store, err = storage.NewTaskStore(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// --- Observability ---
	if cfg.EventLogEnabled {
		eventLogPath := filepath.Join(basePath, ".taskboard_events.jsonl")
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: run without the audit trail if the log can't be created.
			app.EventLog = nil
		}
	}

	// --- Core services ---
	var recorder core.EventRecorder
	if app.EventLog != nil {
		recorder = app.EventLog
	}
	app.TaskMgr = core.NewTaskManager(app.Store, recorder, cfg)

	// --- CLI wiring ---
	cli.BasePath = basePath
	cli.TaskMgr = app.TaskMgr
	cli.ConfigMgr = app.ConfigMgr
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases the store and the event log.
func (a *App) Close() error {
	var firstErr error
	if a.EventLog != nil {
		if err := a.EventLog.Close(); err != nil {
			firstErr = err
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveBasePath determines where taskboard keeps its state: the
// TASKBOARD_HOME environment variable if set, otherwise the nearest
// ancestor directory containing .taskboard.yaml, otherwise ~/.taskboard.
func ResolveBasePath() string {
	if home := os.Getenv("TASKBOARD_HOME"); home != "" {
		return home
	}

	if dir, err := os.Getwd(); err == nil {
		for {
			if _, err := os.Stat(filepath.Join(dir, ".taskboard.yaml")); err == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskboard")
}
