package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, skipSplash bool) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("tui started", "lesson", e.catalog.ID())
	return app.Run(cmd.Context(), app.Options{
		Catalog:    e.catalog,
		Lesson:     e.lessonOptions(),
		History:    e.store,
		Learner:    e.user.DisplayName,
		Learners:   e.store,
		SkipSplash: skipSplash,
	})
}
