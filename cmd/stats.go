package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/screens/home"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the learner's progress and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		progress, err := e.store.LoadProgress(ctx, e.user.ID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		held, err := e.store.LoadBadges(ctx, e.user.ID)
		if err != nil {
			return fmt.Errorf("load badges: %w", err)
		}

		printStats(cmd.OutOrStdout(), e.user.DisplayName, e.catalog, progress[e.catalog.ID()], held)
		return nil
	},
}

func printStats(w io.Writer, learner string, cat *catalog.Catalog, rec lesson.ProgressRecord, held []catalog.Badge) {
	fmt.Fprintf(w, "Learner: %s\n\n", learner)

	fmt.Fprintf(w, "%s\n", cat.Title())
	if rec.Completed {
		fmt.Fprintf(w, "  Completed on %s with %d%%\n", home.FormatDate(rec.Date), rec.Score)
	} else {
		fmt.Fprintln(w, "  Not started")
	}

	fmt.Fprintf(w, "\nBadges (%d)\n", len(held))
	if len(held) == 0 {
		fmt.Fprintln(w, "  none yet")
	}
	for _, b := range held {
		date := "N/A"
		if b.EarnedDate != nil {
			date = home.FormatDate(*b.EarnedDate)
		}
		fmt.Fprintf(w, "  ★ %-24s %s\n", b.Name, date)
	}
}
