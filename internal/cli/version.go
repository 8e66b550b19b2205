package cli

import (
	"fmt"

	"github.com/mydehq/mediascout/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mediascout %s\n", version.String())
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
