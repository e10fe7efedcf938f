package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered",
	Long: `List tasks in creation order. All filter flags are combined with AND:

  --search    case-insensitive substring of title or description
  --assignee  exact assignee match (case-insensitive)
  --status    a single column, e.g. --status done
  --due-from  earliest due date (YYYY-MM-DD, inclusive)
  --due-to    latest due date (YYYY-MM-DD, inclusive)
  --tags      tags the task must all carry

Date filters exclude tasks without a due date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		tasks, err := TaskMgr.QueryTasks(filter)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}
		printTaskTable(tasks)
		return nil
	},
}

// filterFromFlags assembles a TaskFilter from the list command's flags.
func filterFromFlags(cmd *cobra.Command) (models.TaskFilter, error) {
	var filter models.TaskFilter

	filter.Text, _ = cmd.Flags().GetString("search")
	filter.Assignee, _ = cmd.Flags().GetString("assignee")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	filter.Tags = tags

	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		status, err := models.ParseStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if cmd.Flags().Changed("due-from") {
		raw, _ := cmd.Flags().GetString("due-from")
		from, err := time.Parse(models.DueDateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("bad --due-from %q (want YYYY-MM-DD): %w", raw, models.ErrValidation)
		}
		filter.DueFrom = &from
	}
	if cmd.Flags().Changed("due-to") {
		raw, _ := cmd.Flags().GetString("due-to")
		to, err := time.Parse(models.DueDateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("bad --due-to %q (want YYYY-MM-DD): %w", raw, models.ErrValidation)
		}
		filter.DueTo = &to
	}
	return filter, nil
}

// printTaskTable prints tasks as a fixed-width table.
func printTaskTable(tasks []models.Task) {
	fmt.Printf("%-36s  %-12s  %-6s  %-10s  %s\n", "ID", "STATUS", "PRI", "DUE", "TITLE")
	for _, task := range tasks {
		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.Format(models.DueDateLayout)
		}
		fmt.Printf("%-36s  %-12s  %-6s  %-10s  %s\n",
			task.ID, task.Status, task.Priority, due, task.Title)
	}
}

// addListFilterFlags registers the filter flags read by filterFromFlags.
func addListFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Substring to search in title/description")
	cmd.Flags().String("assignee", "", "Filter by assignee")
	cmd.Flags().String("status", "", "Filter by column")
	cmd.Flags().String("due-from", "", "Earliest due date (YYYY-MM-DD)")
	cmd.Flags().String("due-to", "", "Latest due date (YYYY-MM-DD)")
	cmd.Flags().StringSlice("tags", nil, "Tags the task must all carry")
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatusValues)
}

func init() {
	addListFilterFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}
