package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/pkg/models"
)

// completeTaskIDs returns a completion function that lists task IDs,
// optionally filtered to exclude certain columns.
func completeTaskIDs(excludeStatuses ...models.Status) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if TaskMgr == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		tasks, err := TaskMgr.GetAllTasks()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		exclude := make(map[models.Status]bool)
		for _, s := range excludeStatuses {
			exclude[s] = true
		}

		var ids []string
		for _, task := range tasks {
			if exclude[task.Status] {
				continue
			}
			if toComplete == "" || strings.HasPrefix(task.ID, toComplete) {
				// Include title and column as description for better UX.
				ids = append(ids, task.ID+"\t"+task.Status.Label()+": "+task.Title)
			}
		}

		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeStatusValues lists the four column names.
func completeStatusValues(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, status := range models.AllStatuses() {
		out = append(out, string(status)+"\t"+status.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completePriorityValues lists the priority levels.
func completePriorityValues(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, priority := range models.AllPriorities() {
		out = append(out, string(priority))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeMoveArgs completes the task id first, then the target column.
func completeMoveArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeTaskIDs()(cmd, args, toComplete)
	}
	return completeStatusValues(cmd, args, toComplete)
}
