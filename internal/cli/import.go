package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/internal/bulk"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tasks from a CSV file",
	Long: `Import tasks from a CSV file with a header row. The title and status
columns are required; id, created_at and updated_at columns are ignored
and fresh ids are assigned.

The import is atomic: if any row is malformed, nothing is imported and
the board is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()

		drafts, err := bulk.Import(f)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}

		tasks, err := TaskMgr.ImportTasks(drafts)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}

		fmt.Printf("Imported %d tasks from %s\n", len(tasks), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
