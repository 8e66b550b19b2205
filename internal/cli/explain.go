package cli

import (
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/report"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <filename>",
	Short: "Show how every detection rule judged a filename",
	Long: `Evaluate every rule of the detection cascade against one filename and
show what each proposed, its confidence, the gate it had to clear and which
proposal was finally selected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		traces, err := api.Explain(args[0], options(cmd)...)
		if err != nil {
			return err
		}
		return report.WriteTraces(cmd.OutOrStdout(), args[0], traces, format)
	},
}

func init() {
	RootCmd.AddCommand(explainCmd)
}
