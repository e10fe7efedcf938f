package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/internal/observability"
)

var (
	eventsTypeFilter  string
	eventsSinceFilter string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the board's mutation history",
	Long: `Show the audit trail of board mutations (task.created, task.updated,
task.moved, task.deleted, tasks.imported), oldest first.

Use --type to restrict to one event type and --since to restrict to
events on or after a date (YYYY-MM-DD).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not enabled")
		}

		var filter observability.EventFilter
		filter.Type = eventsTypeFilter
		if eventsSinceFilter != "" {
			since, err := time.Parse("2006-01-02", eventsSinceFilter)
			if err != nil {
				return fmt.Errorf("bad --since %q (want YYYY-MM-DD)", eventsSinceFilter)
			}
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, event := range events {
			line := fmt.Sprintf("%s  %-15s", event.Time.Local().Format(time.RFC3339), event.Type)
			if event.TaskID != "" {
				line += "  " + event.TaskID
			}
			if event.Detail != "" {
				line += "  " + event.Detail
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsTypeFilter, "type", "", "Filter by event type")
	eventsCmd.Flags().StringVar(&eventsSinceFilter, "since", "", "Only events on or after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(eventsCmd)
}
