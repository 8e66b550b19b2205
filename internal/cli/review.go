package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/report"
	"github.com/mydehq/mediascout/internal/types"
	"github.com/mydehq/mediascout/internal/ui"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review [filename...]",
	Short: "Browse the results that need a human look",
	Long: `Open an interactive browser over the medium and low confidence results
of a batch. Each entry can be expanded into the per-rule explanation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdoutIsTerminal() {
			return errors.New("review needs an interactive terminal")
		}
		rep, err := analyze(cmd, args)
		if err != nil {
			return err
		}

		opts := options(cmd)
		m := newReviewModel(rep, func(name string) []detector.Trace {
			traces, err := api.Explain(name, opts...)
			if err != nil {
				logger.Debug("Explain failed", "file", name, "error", err)
				return nil
			}
			return traces
		})

		var progOpts []tea.ProgramOption
		if !stdinIsTerminal() {
			// The filename list came through stdin, keys come from the tty
			progOpts = append(progOpts, tea.WithInputTTY())
		}
		if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
			return fmt.Errorf("review failed: %w", err)
		}
		return nil
	},
}

func init() {
	addInputFlags(reviewCmd)
	RootCmd.AddCommand(reviewCmd)
}

type reviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Filter  key.Binding
	Explain key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Explain, k.Help, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Filter, k.Explain},
		{k.Help, k.Quit},
	}
}

var reviewKeys = reviewKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
	Top:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Bottom:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
	Explain: key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "explain")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// reviewFilter selects which confidence levels are listed
type reviewFilter int

const (
	filterReview reviewFilter = iota
	filterLow
	filterAll
)

func (f reviewFilter) String() string {
	switch f {
	case filterLow:
		return "low"
	case filterAll:
		return "all"
	default:
		return "medium + low"
	}
}

func (f reviewFilter) keep(level string) bool {
	switch f {
	case filterLow:
		return level == grouper.LevelLow
	case filterAll:
		return true
	default:
		return level != grouper.LevelHigh
	}
}

// reviewModel is a Bubble Tea model listing results for manual review
type reviewModel struct {
	results []types.DetectionResult
	buckets grouper.Buckets

	explain func(string) []detector.Trace
	traces  map[string][]detector.Trace

	filter     reviewFilter
	cursor     int
	expanded   bool
	windowSize int

	keys reviewKeyMap
	help help.Model
}

func newReviewModel(rep *api.Report, explain func(string) []detector.Trace) reviewModel {
	h := help.New()
	h.Styles.ShortKey = ui.StyleCommand
	h.Styles.FullKey = ui.StyleCommand
	h.Styles.ShortDesc = ui.StyleDim
	h.Styles.FullDesc = ui.StyleDim

	return reviewModel{
		results:    rep.Results,
		buckets:    rep.Buckets,
		explain:    explain,
		traces:     make(map[string][]detector.Trace),
		windowSize: 12,
		keys:       reviewKeys,
		help:       h,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

// visible returns the results kept by the current filter
func (m reviewModel) visible() []types.DetectionResult {
	var out []types.DetectionResult
	for _, r := range m.results {
		if m.filter.keep(m.buckets.Level(r.Confidence)) {
			out = append(out, r)
		}
	}
	return out
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.windowSize = max(3, msg.Height-16)

	case tea.KeyMsg:
		visible := m.visible()

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(visible)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Top):
			m.cursor = 0

		case key.Matches(msg, m.keys.Bottom):
			m.cursor = max(0, len(visible)-1)

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % 3
			m.cursor = 0

		case key.Matches(msg, m.keys.Explain):
			m.expanded = !m.expanded
			if m.expanded && m.cursor < len(visible) {
				name := visible[m.cursor].OriginalFilename
				if _, ok := m.traces[name]; !ok && m.explain != nil {
					m.traces[name] = m.explain(name)
				}
			}

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	visible := m.visible()
	b.WriteString(ui.StyleBanner.Render("Review results") + "\n")
	b.WriteString(ui.StyleDim.Render(fmt.Sprintf("  %d of %d shown, filter: ", len(visible), len(m.results))))
	b.WriteString(ui.StyleCommand.Render(m.filter.String()) + "\n\n")

	if len(visible) == 0 {
		b.WriteString(ui.StyleDim.Render("  Nothing to review.") + "\n")
	} else {
		start, end := window(m.cursor, len(visible), m.windowSize)
		if start > 0 {
			b.WriteString(ui.StyleDim.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n")
		}

		selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.StyleCommand.GetForeground())
		for i := start; i < end; i++ {
			r := visible[i]
			conf := report.Confidence(r.Confidence, m.buckets)
			if i == m.cursor {
				b.WriteString("  " + selectedStyle.Render("> "+r.OriginalFilename) + " " + conf + "\n")
			} else {
				b.WriteString("    " + r.OriginalFilename + " " + conf + "\n")
			}
		}

		if end < len(visible) {
			b.WriteString(ui.StyleDim.Render(fmt.Sprintf("  ↓ %d more", len(visible)-end)) + "\n")
		}

		if m.cursor < len(visible) {
			b.WriteString("\n" + m.detail(visible[m.cursor]))
		}
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// detail renders the selected result and, when expanded, its rule traces
func (m reviewModel) detail(r types.DetectionResult) string {
	var b strings.Builder
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s %s\n", ui.StyleDim.Render(fmt.Sprintf("%-9s", name)), value)
		}
	}

	field("type", report.KindLabel(r.DetectedType))
	field("title", r.ExtractedTitle)
	field("details", report.Details(r))
	field("pattern", ui.StylePattern.Render(r.DetectionPattern.Pattern))
	if g := r.SuggestedGrouping; g != nil {
		field("group", fmt.Sprintf("%s %s", g.GroupType, g.GroupTitle))
	}

	if !m.expanded {
		return b.String()
	}

	b.WriteString("\n")
	for _, tr := range m.traces[r.OriginalFilename] {
		mark := ui.StyleDim.Render("·")
		switch {
		case tr.Selected:
			mark = ui.StyleHigh.Render("✓")
		case tr.Candidate != nil && !tr.Passed:
			mark = ui.StyleLow.Render("✗")
		}
		line := fmt.Sprintf("  %s %-10s", mark, tr.Rule)
		if c := tr.Candidate; c != nil {
			line += fmt.Sprintf(" %.2f %s", c.Confidence, report.KindLabel(c.DetectedType))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// window returns the visible [start, end) range keeping cursor centered
func window(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := max(0, cursor-size/2)
	end := start + size
	if end > n {
		end = n
		start = end - size
	}
	return start, end
}
