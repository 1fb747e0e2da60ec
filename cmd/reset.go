package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete the learner's progress, badges and lesson events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to reset %s without --yes", e.user.DisplayName)
		}
		if err := e.store.Reset(cmd.Context(), e.user.ID); err != nil {
			return err
		}
		e.log.Info("learner reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Reset progress for %s.\n", e.user.DisplayName)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
