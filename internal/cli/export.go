package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/internal/bulk"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all tasks as CSV",
	Long: `Export every task on the board as CSV with a header row, in creation
order. Writes to stdout when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		tasks, err := TaskMgr.GetAllTasks()
		if err != nil {
			return fmt.Errorf("exporting tasks: %w", err)
		}

		if len(args) == 0 {
			return bulk.Export(os.Stdout, tasks)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()

		if err := bulk.Export(f, tasks); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
