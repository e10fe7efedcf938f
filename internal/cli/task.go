package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks (add, edit, move, rm, show)",
	Long: `Unified task management commands.

Add new tasks to the board, edit their fields, move them between columns,
remove them, and inspect a single task in detail.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task to the board",
	Long: `Add a new task with the given title.

The task lands in the backlog column unless --status says otherwise.
Priority defaults to the configured default (medium out of the box).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		draft := models.TaskDraft{Title: args[0]}
		draft.Description, _ = cmd.Flags().GetString("desc")
		draft.Assignee, _ = cmd.Flags().GetString("assignee")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		draft.Tags = tags

		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			status, err := models.ParseStatus(raw)
			if err != nil {
				return err
			}
			draft.Status = status
		}
		if cmd.Flags().Changed("priority") {
			raw, _ := cmd.Flags().GetString("priority")
			priority, err := models.ParsePriority(raw)
			if err != nil {
				return err
			}
			draft.Priority = priority
		}
		if cmd.Flags().Changed("due") {
			raw, _ := cmd.Flags().GetString("due")
			due, err := parseDueFlag(raw)
			if err != nil {
				return err
			}
			draft.DueDate = due
		}

		task, err := TaskMgr.CreateTask(draft)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Created task %s\n", task.ID)
		printTaskDetails(task)
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit fields of an existing task",
	Long: `Edit an existing task. Only the flags you pass are changed; everything
else keeps its current value. Passing an empty value clears an optional
field (e.g. --assignee "" or --due "").`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		var upd models.TaskUpdate
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			upd.Title = &title
		}
		if cmd.Flags().Changed("desc") {
			desc, _ := cmd.Flags().GetString("desc")
			upd.Description = &desc
		}
		if cmd.Flags().Changed("assignee") {
			assignee, _ := cmd.Flags().GetString("assignee")
			upd.Assignee = &assignee
		}
		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			status, err := models.ParseStatus(raw)
			if err != nil {
				return err
			}
			upd.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			raw, _ := cmd.Flags().GetString("priority")
			priority, err := models.ParsePriority(raw)
			if err != nil {
				return err
			}
			upd.Priority = &priority
		}
		if cmd.Flags().Changed("due") {
			raw, _ := cmd.Flags().GetString("due")
			due, err := parseDueFlag(raw)
			if err != nil {
				return err
			}
			upd.DueDate = &due
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetStringSlice("tags")
			upd.Tags = &tags
		}

		task, err := TaskMgr.UpdateTask(args[0], upd)
		if err != nil {
			return describeTaskErr(err)
		}

		fmt.Printf("Updated task %s\n", task.ID)
		printTaskDetails(task)
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to another column",
	Long: `Move a task to the given column (backlog, in_progress, blocked, done).

Moving a task to the column it is already in is a no-op that still succeeds.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeMoveArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}
		task, err := TaskMgr.MoveTask(args[0], status)
		if err != nil {
			return describeTaskErr(err)
		}

		fmt.Printf("Moved task %s to %s\n", task.ID, task.Status.Label())
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task permanently",
	Long: `Delete a task from the board. Deletion is permanent; there is no
archive or undo, and the id is never reused.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		if err := TaskMgr.DeleteTask(args[0]); err != nil {
			return describeTaskErr(err)
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:               "show <task-id>",
	Short:             "Show a single task in detail",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		task, err := TaskMgr.GetTask(args[0])
		if err != nil {
			return describeTaskErr(err)
		}

		fmt.Printf("Task %s\n", task.ID)
		printTaskDetails(task)
		fmt.Printf("  Created:  %s\n", task.CreatedAt.Local().Format(time.RFC3339))
		fmt.Printf("  Updated:  %s\n", task.UpdatedAt.Local().Format(time.RFC3339))
		return nil
	},
}

// parseDueFlag turns a --due value into an optional date. An empty string
// clears the due date.
func parseDueFlag(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(models.DueDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("bad due date %q (want YYYY-MM-DD): %w", raw, models.ErrValidation)
	}
	return &due, nil
}

// describeTaskErr keeps not-found errors short for the terminal; anything
// else passes through unchanged.
func describeTaskErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("no such task: %w", err)
	}
	return err
}

func printTaskDetails(task *models.Task) {
	fmt.Printf("  Title:    %s\n", task.Title)
	fmt.Printf("  Status:   %s\n", task.Status.Label())
	fmt.Printf("  Priority: %s\n", task.Priority)
	if task.Assignee != "" {
		fmt.Printf("  Assignee: %s\n", task.Assignee)
	}
	if task.DueDate != nil {
		fmt.Printf("  Due:      %s\n", task.DueDate.Format(models.DueDateLayout))
	}
	if len(task.Tags) > 0 {
		fmt.Printf("  Tags:     %s\n", models.FormatTags(task.Tags))
	}
	if task.Description != "" {
		fmt.Printf("  Desc:     %s\n", task.Description)
	}
}

func addTaskFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("desc", "", "Task description")
	cmd.Flags().String("status", "", "Column (backlog, in_progress, blocked, done)")
	cmd.Flags().String("assignee", "", "Assignee label")
	cmd.Flags().String("priority", "", "Priority (low, medium, high)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSlice("tags", nil, "Tags (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatusValues)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorityValues)
}

func init() {
	addTaskFieldFlags(taskAddCmd)
	addTaskFieldFlags(taskEditCmd)
	taskEditCmd.Flags().String("title", "", "New title")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskShowCmd)
	rootCmd.AddCommand(taskCmd)
}
