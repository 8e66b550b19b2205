package cli

import (
	"regexp"
	"strings"

	"github.com/mydehq/mediascout/internal/ui"
	"github.com/spf13/cobra"
)

const coloredUsageTmpl = `{{Header "Usage:"}}
  {{if .Runnable}}{{Usage .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{Command .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{Header "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{Header "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{Header "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{Command (printf "%-15s" .Name)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{Header "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | Flags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{Header "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces | Flags}}{{end}}{{if .HasHelpSubCommands}}

{{Header "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{Command (printf "%-15s" .Name)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

{{Header "Use"}} {{Command (printf "%s [command] --help" .CommandPath)}} {{Header "for more information about a command."}}{{end}}
`

var (
	reFlags    = regexp.MustCompile(`(-\w|--[\w-]+)`)
	reArgs     = regexp.MustCompile(`<[a-zA-Z0-9_-]+>`)
	reOptional = regexp.MustCompile(`\[[a-zA-Z0-9_.-]+\]`)
	reCmd      = regexp.MustCompile(`^\w+`)
)

func colorizeHelp(cmd *cobra.Command) {
	cobra.AddTemplateFunc("Header", func(s string) string {
		out := ui.StyleHeader.Render(s)
		if s == "Usage:" {
			return "\n" + out
		}
		return out
	})
	cobra.AddTemplateFunc("Command", func(s string) string { return ui.StyleCommand.Render(s) })

	cobra.AddTemplateFunc("Flags", func(s string) string {
		s = reFlags.ReplaceAllStringFunc(s, func(match string) string {
			return ui.StyleFlag.Render(match)
		})

		return strings.ReplaceAll(s, ", ", ui.StyleDim.Render(", "))
	})

	cobra.AddTemplateFunc("Usage", func(s string) string {
		// <required> args
		s = reArgs.ReplaceAllStringFunc(s, func(match string) string {
			return ui.StylePath.Render(match)
		})

		// [optional] args, including "[filename...]"
		s = reOptional.ReplaceAllStringFunc(s, func(match string) string {
			return ui.StyleDim.Render(match)
		})

		return reCmd.ReplaceAllStringFunc(s, func(match string) string {
			return ui.StyleCommand.Render(match)
		})
	})

	cmd.SetUsageTemplate(coloredUsageTmpl)
}
