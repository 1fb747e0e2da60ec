package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the learner's lesson events",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		after, _ := cmd.Flags().GetInt64("after")
		events, err := e.store.LessonEvents(cmd.Context(), e.user.ID, store.QueryOpts{Limit: limit, After: after})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No lesson events yet.")
			return nil
		}
		for _, ev := range events {
			fmt.Fprintf(out, "%6d  %s  %-8.8s  %-20s  %-10s  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.SessionID,
				ev.LessonID,
				ev.Action,
				ev.Detail)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of events (0 for all)")
	historyCmd.Flags().Int64("after", 0, "Only events after this sequence number")
}
