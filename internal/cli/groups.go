package cli

import (
	"github.com/mydehq/mediascout/internal/report"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [filename...]",
	Short: "Show only the series and saga groups of a batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := analyze(cmd, args)
		if err != nil {
			return err
		}
		return report.WriteGroups(cmd.OutOrStdout(), rep, format)
	},
}

func init() {
	addInputFlags(groupsCmd)
	RootCmd.AddCommand(groupsCmd)
}
