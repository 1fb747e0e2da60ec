package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a lesson document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s %s, %d sections, %d items, %d questions)\n",
			args[0], cat.ID(), cat.Version(), cat.SectionCount(), cat.ItemCount(), cat.QuestionCount())
		return nil
	},
}
