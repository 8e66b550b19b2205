package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/config"
	"github.com/mydehq/mediascout/internal/ui"
	"github.com/spf13/cobra"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Write the default configuration to [path], --config, or the per-user
location ($XDG_CONFIG_HOME/mediascout/config.yml). An existing file is only
replaced after confirmation, or with --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if len(args) > 0 {
			path = args[0]
		}
		return runConfigInit(path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.FindPath()
		}
		if path == "" {
			logger.Info(ui.StyleDim.Render("No configuration file found, built-in defaults in use"))
			path = config.UserPath()
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := api.LoadConfig(options(cmd)...)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file without asking")
	configCmd.AddCommand(configInitCmd, configPathCmd, configShowCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(path string) error {
	if path == "" {
		path = config.UserPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine the config location, pass a path")
	}

	cfg := config.DefaultConfig()
	data, err := config.Marshal(&cfg)
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if exists && !flagConfigForce {
		if !stdinIsTerminal() || !stdoutIsTerminal() {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		ok, err := ui.ConfirmWrite(path, data, true)
		if errors.Is(err, ui.ErrAborted) {
			if ui.AbortKey() == "ctrl+c" {
				fmt.Println()
			}
			logger.Info(ui.StyleDim.Render("Init cancelled"))
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			logger.Info(ui.StyleDim.Render("Kept existing configuration"))
			return nil
		}
	}

	if err := config.Write(path, &cfg); err != nil {
		return err
	}
	logger.Success("Created " + ui.StylePath.Render(path))
	return nil
}
