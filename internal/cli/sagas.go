package cli

import (
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/report"
	"github.com/spf13/cobra"
)

var sagasCmd = &cobra.Command{
	Use:   "sagas",
	Short: "List the known sagas, built-in and configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sagas, err := api.Sagas(options(cmd)...)
		if err != nil {
			return err
		}
		return report.WriteSagas(cmd.OutOrStdout(), sagas, format)
	},
}

func init() {
	RootCmd.AddCommand(sagasCmd)
}
