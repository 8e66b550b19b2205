package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Adaptive Color definitions
	colorHeader = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#00af00", ANSI256: "34", ANSI: "2"},
		Light: lipgloss.CompleteColor{TrueColor: "#008700", ANSI256: "28", ANSI: "2"},
	}
	colorCommand = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5fffff", ANSI256: "86", ANSI: "6"},
		Light: lipgloss.CompleteColor{TrueColor: "#008787", ANSI256: "30", ANSI: "6"},
	}
	colorPath = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#5f5fff", ANSI256: "63", ANSI: "4"},
		Light: lipgloss.CompleteColor{TrueColor: "#0000af", ANSI256: "19", ANSI: "4"},
	}
	colorPattern = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#d7ff87", ANSI256: "192", ANSI: "11"},
		Light: lipgloss.CompleteColor{TrueColor: "#5f8700", ANSI256: "64", ANSI: "10"},
	}
	colorDim = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#bdbdbd", ANSI256: "250", ANSI: "8"},
		Light: lipgloss.CompleteColor{TrueColor: "#626262", ANSI256: "241", ANSI: "0"},
	}
	colorFlag = lipgloss.CompleteAdaptiveColor{
		Dark:  lipgloss.CompleteColor{TrueColor: "#ff5faf", ANSI256: "204", ANSI: "13"},
		Light: lipgloss.CompleteColor{TrueColor: "#af005f", ANSI256: "125", ANSI: "5"},
	}

	// Exported Styles for CLI and TUI
	StyleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	StyleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorCommand)
	StylePath    = lipgloss.NewStyle().Foreground(colorPath)
	StylePattern = lipgloss.NewStyle().Foreground(colorPattern)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleFlag    = lipgloss.NewStyle().Italic(true).Foreground(colorFlag)

	// StyleBanner frames section titles
	StyleBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCommand).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHeader).
			Padding(0, 4).
			Align(lipgloss.Center)

	// Confidence level styles
	StyleHigh   = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	StyleMedium = lipgloss.NewStyle().Foreground(colorPattern)
	StyleLow    = lipgloss.NewStyle().Bold(true).Foreground(colorFlag)
)

// LevelStyle returns the style for a confidence level name
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "high":
		return StyleHigh
	case "medium":
		return StyleMedium
	default:
		return StyleLow
	}
}

// Theme returns the Catppuccin theme for huh forms.
func Theme() *huh.Theme {
	return huh.ThemeCatppuccin()
}

func KeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")
	km.Confirm.Submit.SetHelp("enter", "confirm • esc: cancel")
	km.Note.Next.SetHelp("enter", "next • esc: cancel")

	return km
}

// ColorizeEvent adds CLI styling to "Label: value" event messages.
func ColorizeEvent(msg string) string {
	if idx := strings.Index(msg, ": "); idx >= 0 {
		label := msg[:idx+1]
		value := msg[idx+2:]
		return fmt.Sprintf("%s %s", StyleHeader.Render(label), StylePath.Render(value))
	}
	return msg
}

// HighlightYAML applies simple syntax highlighting to a YAML string for TUI display.
func HighlightYAML(input string) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorCommand).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(colorPattern)

	lines := strings.Split(input, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if idx := strings.Index(line, "#"); idx >= 0 {
			lines[i] = line[:idx] + StyleDim.Render(line[idx:])
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := line[:idx]
		val := line[idx+1:]

		prefix := ""
		if strings.HasPrefix(strings.TrimSpace(key), "- ") {
			pIdx := strings.Index(key, "- ")
			prefix = key[:pIdx+2]
			key = key[pIdx+2:]
		}

		if strings.TrimSpace(val) == "" {
			lines[i] = prefix + keyStyle.Render(key) + ":"
		} else {
			lines[i] = prefix + keyStyle.Render(key) + ":" + valStyle.Render(val)
		}
	}
	return strings.Join(lines, "\n")
}
