// Package observability provides the append-only audit trail of board
// mutations. Every create, update, move, delete and import is recorded as
// one JSONL line; recording is best-effort and never fails the operation
// that triggered it.
package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event is a single recorded board mutation.
type Event struct {
	Time   time.Time `json:"time"`
	Type   string    `json:"type"` // e.g. "task.created", "task.moved"
	TaskID string    `json:"task_id,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// EventFilter specifies criteria for reading events back.
type EventFilter struct {
	Since *time.Time
	Type  string
}

// EventLog defines the interface for writing and reading mutation events.
type EventLog interface {
	Record(eventType, taskID, detail string)
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog creates an EventLog backed by a JSONL file at the given path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

// Record appends a JSON-encoded event followed by a newline. Errors are
// swallowed; the audit trail must never take a board operation down with it.
func (l *jsonlEventLog) Record(eventType, taskID, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(Event{
		Time:   time.Now().UTC(),
		Type:   eventType,
		TaskID: taskID,
		Detail: detail,
	})
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = l.file.Write(data)
}

// Read scans the log file line by line and returns the events matching the
// given filter, oldest first.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // skip malformed lines
		}
		if matchesEventFilter(event, filter) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}
	return events, nil
}

// Close closes the underlying file handle.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func matchesEventFilter(event Event, filter EventFilter) bool {
	if filter.Type != "" && event.Type != filter.Type {
		return false
	}
	if filter.Since != nil && event.Time.Before(*filter.Since) {
		return false
	}
	return true
}
