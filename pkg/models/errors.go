package models

import "errors"

// Error kinds surfaced by the core. Lower layers wrap these with context
// via fmt.Errorf and %w; callers discriminate with errors.Is. The CLI is
// responsible for turning them into user-facing messages.
var (
	// ErrValidation indicates a bad or missing field value on create or update.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an operation referenced a nonexistent task id.
	ErrNotFound = errors.New("task not found")

	// ErrFormat indicates malformed bulk-import content.
	ErrFormat = errors.New("malformed import data")
)
