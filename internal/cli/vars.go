package cli

import (
	"github.com/drapaimern/taskboard/internal/core"
	"github.com/drapaimern/taskboard/internal/observability"
)

// Service instances shared by the commands, set during app initialization
// in app.go.
var (
	BasePath  string
	TaskMgr   core.TaskManager
	ConfigMgr core.ConfigurationManager
	EventLog  observability.EventLog
)
