package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/types"
)

// run executes the root command with args and returns stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := os.Stat("/etc/mediascout/config.yml"); err == nil {
		t.Skip("system config present")
	}

	flagConfig, flagFrom, flagFormat = "", "", "text"
	flagWorkers, flagMediaOnly, flagConfigForce = 0, false, false
	flagVerbose, flagQuiet = false, true

	if args == nil {
		args = []string{}
	}

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

type analyzeDoc struct {
	Results []types.DetectionResult `json:"results"`
	Stats   types.DetectionStats    `json:"stats"`
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "", "--quiet", "--format", "json",
		"/tv/Breaking.Bad.S01E02.Cat.in.the.Bag.mp4", "The.Matrix.1999.1080p.mp4")
	if err != nil {
		t.Fatal(err)
	}

	var doc analyzeDoc
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(doc.Results) != 2 || doc.Stats.TotalFiles != 2 {
		t.Fatalf("unexpected report: %+v", doc)
	}
	if doc.Results[0].OriginalFilename != "Breaking.Bad.S01E02.Cat.in.the.Bag.mp4" {
		t.Errorf("directory not stripped: %q", doc.Results[0].OriginalFilename)
	}
}

func TestAnalyzeCommand_Inputs(t *testing.T) {
	list := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(list, []byte("# dump\nIron.Man.2008.1080p.mp4\nnotes.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  int
	}{
		{"from file", "", []string{"--from", list}, 2},
		{"from file media only", "", []string{"--from", list, "--media-only"}, 1},
		{"from dash", "a.mkv\nb.mkv\n", []string{"--from", "-"}, 2},
		{"piped stdin", "a.mkv\n\nb.mkv\nc.mkv\n", nil, 3},
		{"args and file", "", []string{"--from", list, "x.mkv"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-q", "-f", "json"}, tt.args...)
			out, err := run(t, tt.stdin, args...)
			if err != nil {
				t.Fatal(err)
			}
			var doc analyzeDoc
			if err := json.Unmarshal([]byte(out), &doc); err != nil {
				t.Fatalf("invalid json: %v\n%s", err, out)
			}
			if len(doc.Results) != tt.want {
				t.Errorf("got %d results; want %d", len(doc.Results), tt.want)
			}
		})
	}
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	if _, err := run(t, "", "-q", "--format", "xml", "a.mkv"); err == nil {
		t.Error("expected unknown format error")
	}
	if _, err := run(t, "", "-q"); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := run(t, "", "-q", "--from", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing list")
	}
}

func TestExplainCommand(t *testing.T) {
	out, err := run(t, "", "-q", "explain", "My.Show.Pilot.mkv")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"series", "below gate", "fallback", "selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("explain output missing %q:\n%s", want, out)
		}
	}
}

func TestGroupsCommand(t *testing.T) {
	out, err := run(t, "", "-q", "groups",
		"Breaking.Bad.S01E01.Pilot.mkv", "Breaking.Bad.S02E01.mkv", "Thor.2011.mkv")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Series (1)", "2 seasons", "Sagas (1)", "Marvel Cinematic Universe"} {
		if !strings.Contains(out, want) {
			t.Errorf("groups output missing %q:\n%s", want, out)
		}
	}
}

func TestSagasCommand(t *testing.T) {
	out, err := run(t, "", "-q", "sagas", "-f", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "id: harry-potter") {
		t.Errorf("sagas output missing harry-potter:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediascout", "config.yml")

	if _, err := run(t, "", "-q", "config", "init", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	// Tests never run on a terminal, so an existing file needs --force.
	if _, err := run(t, "", "-q", "config", "init", path); err == nil {
		t.Error("expected error overwriting without --force")
	}
	if _, err := run(t, "", "-q", "config", "init", "--force", path); err != nil {
		t.Errorf("--force failed: %v", err)
	}

	out, err := run(t, "", "-q", "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q; want %q", out, path)
	}

	out, err = run(t, "", "-q", "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "known_saga: 0.8") {
		t.Errorf("config show missing gates:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mediascout ") {
		t.Errorf("version output = %q", out)
	}
}

func newTestReview(t *testing.T) reviewModel {
	t.Helper()
	rep, err := api.Analyze(context.Background(), []string{
		"Breaking.Bad.S01E01.Pilot.mkv",
		"My.Show.Pilot.mkv",
		"random_stuff_xyz",
		"The.Matrix.1999.1080p.mp4",
	}, api.WithDetector(detector.Default()), api.WithBuckets(grouper.DefaultBuckets()), api.WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	return newReviewModel(rep, detector.Default().Explain)
}

func press(m reviewModel, keys ...string) reviewModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(reviewModel)
	}
	return m
}

func TestReviewModel(t *testing.T) {
	m := newTestReview(t)

	if got := len(m.visible()); got != 2 {
		t.Fatalf("review filter shows %d results; want 2 low ones", got)
	}

	m = press(m, "down", "down")
	if m.cursor != 1 {
		t.Errorf("cursor = %d; want 1 (clamped)", m.cursor)
	}

	m = press(m, "f", "f")
	if m.filter != filterAll || m.cursor != 0 {
		t.Errorf("filter = %v cursor = %d", m.filter, m.cursor)
	}
	if got := len(m.visible()); got != 4 {
		t.Errorf("all filter shows %d results; want 4", got)
	}

	m = press(m, "f")
	if m.filter != filterReview {
		t.Errorf("filter did not wrap around: %v", m.filter)
	}

	m = press(m, "enter")
	if !m.expanded {
		t.Fatal("enter did not expand")
	}
	view := m.View()
	for _, want := range []string{"Review results", "My.Show.Pilot.mkv", "known_saga", "fallback"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q did not quit")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, n, size int
		start, end      int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 10, 0, 10},
		{10, 20, 10, 5, 15},
		{19, 20, 10, 10, 20},
	}
	for _, tt := range tests {
		s, e := window(tt.cursor, tt.n, tt.size)
		if s != tt.start || e != tt.end {
			t.Errorf("window(%d, %d, %d) = %d, %d; want %d, %d", tt.cursor, tt.n, tt.size, s, e, tt.start, tt.end)
		}
	}
}
