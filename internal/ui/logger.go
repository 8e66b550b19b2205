package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger wraps the charmbracelet logger to add a success level
type Logger struct {
	*log.Logger
}

// NewLogger returns a styled logger writing to w
func NewLogger(w io.Writer) *Logger {
	l := &Logger{Logger: log.New(w)}
	l.SetStyles(levelStyles())
	return l
}

// SetVerbosity maps the --verbose and --quiet flags to a level
func (l *Logger) SetVerbosity(verbose, quiet bool) {
	switch {
	case quiet:
		l.SetLevel(log.ErrorLevel)
	case verbose:
		l.SetLevel(log.DebugLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
}

// Success prints a success message with a green prefix
func (l *Logger) Success(msg interface{}, keyvals ...interface{}) {
	l.Helper()
	if l.GetLevel() > log.InfoLevel {
		return
	}
	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		SetString("SUCCESS").
		String()

	// Print skips the default "INFO" prefix
	l.Print(fmt.Sprintf("%s %v", label, msg), keyvals...)
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO ").
		Bold(true).
		Foreground(lipgloss.Color("86"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN ").
		Bold(true).
		Foreground(lipgloss.Color("192"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))

	return styles
}
