package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/types"
	"github.com/mydehq/mediascout/internal/ui"
)

var kindLabels = map[types.MediaKind]string{
	types.KindMovie:       "Movie",
	types.KindSagaMovie:   "Saga",
	types.KindTVEpisode:   "Episode",
	types.KindTVSpecial:   "Special",
	types.KindDocumentary: "Documentary",
	types.KindMusicVideo:  "Music video",
	types.KindAudioTrack:  "Track",
	types.KindAudioAlbum:  "Album",
	types.KindOther:       "Other",
}

// KindLabel returns the display name of a media kind
func KindLabel(k types.MediaKind) string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// Details summarizes the kind-specific fields of a result in one line
func Details(r types.DetectionResult) string {
	var parts []string
	switch r.DetectedType {
	case types.KindTVEpisode:
		if r.ExtractedEpisode != nil {
			parts = append(parts, fmt.Sprintf("S%02dE%02d", r.SeasonOrDefault(), *r.ExtractedEpisode))
		}
		if r.ExtractedEpisodeTitle != "" {
			parts = append(parts, r.ExtractedEpisodeTitle)
		}
	case types.KindSagaMovie:
		if r.ExtractedSagaHint != "" {
			parts = append(parts, r.ExtractedSagaHint)
		}
		if r.ExtractedSequenceNumber != nil {
			parts = append(parts, "#"+strconv.Itoa(*r.ExtractedSequenceNumber))
		}
		if r.ExtractedPhaseHint != "" {
			parts = append(parts, "("+r.ExtractedPhaseHint+")")
		}
	}
	if r.ExtractedYear != nil {
		parts = append(parts, strconv.Itoa(*r.ExtractedYear))
	}
	return strings.Join(parts, " ")
}

// Confidence renders a confidence value with its level, styled
func Confidence(c float64, b grouper.Buckets) string {
	level := b.Level(c)
	return ui.LevelStyle(level).Render(fmt.Sprintf("%.2f %s", c, level))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.StyleDim).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.StyleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func writeText(w io.Writer, rep *api.Report) error {
	t := newTable("File", "Type", "Title", "Details", "Confidence")
	for _, r := range rep.Results {
		t.Row(
			r.OriginalFilename,
			KindLabel(r.DetectedType),
			r.ExtractedTitle,
			Details(r),
			Confidence(r.Confidence, rep.Buckets),
		)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	return writeGroupsText(w, rep)
}

func writeGroupsText(w io.Writer, rep *api.Report) error {
	var b strings.Builder

	series := rep.Groups.SeriesList()
	sagas := rep.Groups.SagaList()

	if len(series) == 0 && len(sagas) == 0 {
		b.WriteString(ui.StyleDim.Render("No series or sagas found") + "\n")
	}

	if len(series) > 0 {
		fmt.Fprintf(&b, "\n%s\n", ui.StyleHeader.Render(fmt.Sprintf("Series (%d)", len(series))))
		for _, g := range series {
			fmt.Fprintf(&b, "  %s %s %s\n",
				ui.StyleCommand.Render(g.Title),
				ui.StyleDim.Render("["+g.ID+"]"),
				plural(g.TotalEpisodes, "episode")+", "+plural(g.TotalSeasons, "season"))
			for _, e := range g.Episodes {
				fmt.Fprintf(&b, "    %s %s\n", ui.StylePath.Render(e.OriginalFilename), ui.StyleDim.Render(Details(e)))
			}
		}
	}

	if len(sagas) > 0 {
		fmt.Fprintf(&b, "\n%s\n", ui.StyleHeader.Render(fmt.Sprintf("Sagas (%d)", len(sagas))))
		for _, g := range sagas {
			line := fmt.Sprintf("  %s %s %s",
				ui.StyleCommand.Render(g.Title),
				ui.StyleDim.Render("["+g.ID+"]"),
				plural(g.TotalMovies, "movie"))
			if len(g.SuggestedPhases) > 0 {
				line += ui.StyleDim.Render(" phases: ") + ui.StylePattern.Render(strings.Join(g.SuggestedPhases, ", "))
			}
			b.WriteString(line + "\n")
			for _, m := range g.Movies {
				fmt.Fprintf(&b, "    %s %s\n", ui.StylePath.Render(m.OriginalFilename), ui.StyleDim.Render(m.ExtractedTitle))
			}
		}
	}

	b.WriteString("\n" + statsText(rep.Stats))
	_, err := io.WriteString(w, b.String())
	return err
}

func statsText(st types.DetectionStats) string {
	key := func(s string) string { return ui.StyleDim.Render(s) }
	val := func(n int) string { return ui.StyleCommand.Render(strconv.Itoa(n)) }
	sep := ui.StyleDim.Render(" · ")

	lines := []string{
		ui.StyleHeader.Render("Stats"),
		"  " + key("files ") + val(st.TotalFiles),
		"  " + key("movies ") + val(st.StandaloneMovies) + sep + key("saga movies ") + val(st.SagaMovies) + sep + key("episodes ") + val(st.Episodes),
		"  " + key("series ") + val(st.Series) + sep + key("sagas ") + val(st.Sagas),
		"  " + key("confidence ") +
			ui.StyleHigh.Render(fmt.Sprintf("high %d", st.Confidence.High)) + sep +
			ui.StyleMedium.Render(fmt.Sprintf("medium %d", st.Confidence.Medium)) + sep +
			ui.StyleLow.Render(fmt.Sprintf("low %d", st.Confidence.Low)),
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeTracesText(w io.Writer, filename string, traces []detector.Trace) error {
	t := newTable("Rule", "Gate", "Proposal", "Confidence", "Outcome")
	for _, tr := range traces {
		gate := "-"
		if tr.Rule != "fallback" {
			gate = fmt.Sprintf("> %.2f", tr.Gate)
		}

		proposal, conf := ui.StyleDim.Render("no match"), "-"
		if c := tr.Candidate; c != nil {
			proposal = KindLabel(c.DetectedType) + " " + c.ExtractedTitle
			if d := Details(*c); d != "" {
				proposal += ui.StyleDim.Render(" " + d)
			}
			conf = fmt.Sprintf("%.2f", c.Confidence)
		}

		t.Row(tr.Rule, gate, proposal, conf, outcome(tr))
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", ui.StylePath.Render(filename), t.Render())
	return err
}

func outcome(tr detector.Trace) string {
	switch {
	case tr.Selected:
		return ui.StyleHigh.Render("selected")
	case tr.Passed:
		return ui.StyleMedium.Render("passed, shadowed")
	case tr.Candidate != nil:
		return ui.StyleLow.Render("below gate")
	default:
		return ui.StyleDim.Render("no opinion")
	}
}

func writeSagasText(w io.Writer, sagas []types.SagaDefinition) error {
	t := newTable("ID", "Title", "Aliases", "Phases")
	for _, s := range sagas {
		phases := make([]string, 0, len(s.Phases))
		for _, p := range s.Phases {
			phases = append(phases, fmt.Sprintf("%d. %s", p.Number, p.Title))
		}
		t.Row(s.ID, s.Title, strings.Join(s.Aliases, ", "), strings.Join(phases, ", "))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
