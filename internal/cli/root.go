package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/report"
	"github.com/mydehq/mediascout/internal/types"
	"github.com/mydehq/mediascout/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagFrom      string
	flagFormat    string
	flagWorkers   int
	flagMediaOnly bool
	flagVerbose   bool
	flagQuiet     bool

	format report.Format
	logger *ui.Logger
)

var RootCmd = &cobra.Command{
	Use:   "mediascout [filename...]",
	Short: "Classify media filenames into movies, sagas and TV series",
	Long: `Classify media filenames into movies, saga installments and TV episodes,
then group them into series and sagas.

Filenames come from the arguments, from --from <file> ("-" for stdin), or
from stdin when it is piped. Nothing is read from disk besides those lists.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		f, err := report.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		format = f
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Custom configuration file path")
	RootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "text", "Output format (text, json, yaml)")
	RootCmd.PersistentFlags().IntVarP(&flagWorkers, "workers", "w", 0, "Analysis workers (0 = one per CPU)")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
	RootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress output except errors")

	addInputFlags(RootCmd)

	// Default logger setup (before flags parse)
	logger = ui.NewLogger(os.Stderr)

	colorizeHelp(RootCmd)
}

// addInputFlags registers the flags of commands that read filename lists
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFrom, "from", "i", "", `Read filenames from a file ("-" for stdin)`)
	cmd.Flags().BoolVarP(&flagMediaOnly, "media-only", "m", false, "Skip names whose extension is not in the configured formats")
}

func setupLogger() {
	logger.SetVerbosity(flagVerbose, flagQuiet)
}

func handleEvent(e types.Event) {
	switch e.Type {
	case types.EventSuccess:
		logger.Success(ui.ColorizeEvent(e.Message))
	case types.EventWarning:
		logger.Warn(ui.ColorizeEvent(e.Message))
	case types.EventError:
		logger.Error(e.Message)
	default:
		logger.Debug(e.Message)
	}
}

// options builds the api options shared by every command
func options(cmd *cobra.Command) []api.Option {
	opts := []api.Option{
		api.WithConfig(flagConfig),
		api.WithEvents(handleEvent),
	}
	if cmd.Flags().Changed("workers") {
		opts = append(opts, api.WithWorkers(flagWorkers))
	}
	return opts
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// readInput collects filenames from the arguments, --from and piped stdin
func readInput(cmd *cobra.Command, args []string) ([]string, error) {
	var formats []string
	if flagMediaOnly {
		cfg, err := api.LoadConfig(options(cmd)...)
		if err != nil {
			return nil, err
		}
		formats = cfg.Formats
	}

	names := api.FilterNames(args, formats)

	var src io.Reader
	switch {
	case flagFrom == "-":
		src = cmd.InOrStdin()
	case flagFrom != "":
		more, err := api.ReadNamesFile(flagFrom, formats)
		if err != nil {
			return nil, err
		}
		names = append(names, more...)
	case len(args) == 0 && !stdinIsTerminal():
		src = cmd.InOrStdin()
	}

	if src != nil {
		more, err := api.ReadNames(src, formats)
		if err != nil {
			return nil, err
		}
		names = append(names, more...)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no filenames given (pass them as arguments, with --from, or on stdin)")
	}
	logger.Debug("Read input", "filenames", len(names))
	return names, nil
}

func analyze(cmd *cobra.Command, args []string) (*api.Report, error) {
	names, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return api.Analyze(cmd.Context(), names, options(cmd)...)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rep, err := analyze(cmd, args)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), rep, format)
}
