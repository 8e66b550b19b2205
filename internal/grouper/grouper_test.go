package grouper

import (
	"reflect"
	"testing"

	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/types"
)

var sample = []string{
	"Breaking.Bad.S01E01.Pilot.mkv",
	"Breaking.Bad.S01E02.Cat.in.the.Bag.mp4",
	"Breaking.Bad.S02E01.Seven.Thirty.Seven.mkv",
	"Game.of.Thrones.1x05.mkv",
	"Iron.Man.2008.1080p.mp4",
	"Avengers.Phase.1.Assemble.mkv",
	"Thor.Phase.2.The.Dark.World.mkv",
	"Captain.America.Phase.1.First.Avenger.mkv",
	"The.Matrix.1999.1080p.mp4",
	"random_stuff_xyz",
}

func analyzeAll(t *testing.T, names []string) []types.DetectionResult {
	t.Helper()
	d := detector.Default()
	out := make([]types.DetectionResult, 0, len(names))
	for _, n := range names {
		out = append(out, d.Analyze(n))
	}
	return out
}

func TestGroup(t *testing.T) {
	g := Group(analyzeAll(t, sample))

	if len(g.Series) != 2 {
		t.Fatalf("got %d series; want 2", len(g.Series))
	}
	bb, ok := g.Series["breaking-bad"]
	if !ok {
		t.Fatalf("missing breaking-bad group, have %v", g.Series)
	}
	if bb.Title != "Breaking Bad" || bb.TotalEpisodes != 3 || bb.TotalSeasons != 2 {
		t.Errorf("unexpected series group: %+v", bb)
	}

	if len(g.Sagas) != 1 {
		t.Fatalf("got %d sagas; want 1", len(g.Sagas))
	}
	mcu := g.Sagas["marvel-cinematic-universe"]
	if mcu == nil {
		t.Fatalf("missing MCU group, have %v", g.Sagas)
	}
	if mcu.TotalMovies != 4 {
		t.Errorf("TotalMovies = %d; want 4", mcu.TotalMovies)
	}
	if want := []string{"Phase 1", "Phase 2"}; !reflect.DeepEqual(mcu.SuggestedPhases, want) {
		t.Errorf("SuggestedPhases = %v; want %v", mcu.SuggestedPhases, want)
	}
}

func TestGroup_Order(t *testing.T) {
	g := Group(analyzeAll(t, sample))

	var ids []string
	for _, s := range g.SeriesList() {
		ids = append(ids, s.ID)
	}
	if want := []string{"breaking-bad", "game-of-thrones"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("SeriesList ids = %v; want %v", ids, want)
	}

	eps := g.Series["breaking-bad"].Episodes
	for i, want := range sample[:3] {
		if eps[i].OriginalFilename != want {
			t.Errorf("episode %d = %q; want %q", i, eps[i].OriginalFilename, want)
		}
	}
}

func TestGroup_Idempotent(t *testing.T) {
	results := analyzeAll(t, sample)
	a, b := Group(results), Group(results)
	if !reflect.DeepEqual(a, b) {
		t.Error("Group() is not idempotent")
	}
}

func TestGroup_DoesNotMutate(t *testing.T) {
	results := analyzeAll(t, sample)
	before := analyzeAll(t, sample)

	g := Group(results)
	g.Series["breaking-bad"].Episodes[0].ExtractedTitle = "MODIFIED"

	if !reflect.DeepEqual(results, before) {
		t.Error("Group() shares or mutates its input")
	}
}

func TestGroup_Consistency(t *testing.T) {
	g := Group(analyzeAll(t, sample))
	for id, s := range g.Series {
		if s.TotalEpisodes != len(s.Episodes) {
			t.Errorf("%s: TotalEpisodes = %d, len = %d", id, s.TotalEpisodes, len(s.Episodes))
		}
		seasons := map[int]bool{}
		for _, e := range s.Episodes {
			seasons[e.SeasonOrDefault()] = true
		}
		if s.TotalSeasons != len(seasons) {
			t.Errorf("%s: TotalSeasons = %d; want %d", id, s.TotalSeasons, len(seasons))
		}
	}
	for id, s := range g.Sagas {
		if s.TotalMovies != len(s.Movies) {
			t.Errorf("%s: TotalMovies = %d, len = %d", id, s.TotalMovies, len(s.Movies))
		}
	}
}

func TestGroup_SeasonDefaultsToOne(t *testing.T) {
	results := []types.DetectionResult{
		{
			OriginalFilename: "a",
			DetectedType:     types.KindTVEpisode,
			ExtractedTitle:   "Show",
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType: types.GroupSeries, GroupTitle: "Show",
			},
		},
		{
			OriginalFilename: "b",
			DetectedType:     types.KindTVEpisode,
			ExtractedTitle:   "Show",
			ExtractedSeason:  types.IntPtr(1),
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType: types.GroupSeries, GroupTitle: "Show",
			},
		},
	}
	g := Group(results)
	if s := g.Series["show"]; s == nil || s.TotalSeasons != 1 || s.TotalEpisodes != 2 {
		t.Errorf("unexpected group: %+v", s)
	}
}

func TestGroup_SkipsMismatchedSuggestions(t *testing.T) {
	results := []types.DetectionResult{
		{
			DetectedType: types.KindMovie,
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType: types.GroupSeries, GroupTitle: "Show",
			},
		},
		{
			DetectedType: types.KindTVEpisode,
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType: types.GroupSaga, GroupTitle: "Saga",
			},
		},
		{DetectedType: types.KindSagaMovie},
	}
	g := Group(results)
	if len(g.Series) != 0 || len(g.Sagas) != 0 {
		t.Errorf("expected no groups, got %d series and %d sagas", len(g.Series), len(g.Sagas))
	}
}

func TestGroup_Empty(t *testing.T) {
	g, st := Summarize(nil, DefaultBuckets())
	if len(g.Series) != 0 || len(g.Sagas) != 0 {
		t.Error("expected empty groups")
	}
	if st != (types.DetectionStats{}) {
		t.Errorf("expected zero stats, got %+v", st)
	}
	if len(g.SeriesList()) != 0 || len(g.SagaList()) != 0 {
		t.Error("expected empty lists")
	}
}

func TestStats(t *testing.T) {
	results := analyzeAll(t, sample)
	_, st := Summarize(results, DefaultBuckets())

	want := types.DetectionStats{
		TotalFiles:       10,
		StandaloneMovies: 2,
		SagaMovies:       4,
		Episodes:         4,
		Series:           2,
		Sagas:            1,
		Confidence:       types.ConfidenceHistogram{High: 9, Medium: 0, Low: 1},
	}
	if st != want {
		t.Errorf("Stats = %+v; want %+v", st, want)
	}

	c := st.Confidence
	if c.High+c.Medium+c.Low != len(results) {
		t.Errorf("buckets sum to %d; want %d", c.High+c.Medium+c.Low, len(results))
	}
}

func TestBuckets_Level(t *testing.T) {
	exclusive := DefaultBuckets()
	inclusive := Buckets{High: 0.8, Medium: 0.6, Inclusive: true}

	tests := []struct {
		name string
		b    Buckets
		c    float64
		want string
	}{
		{"exclusive 0.9", exclusive, 0.9, LevelHigh},
		{"exclusive 0.7 boundary", exclusive, 0.7, LevelMedium},
		{"exclusive 0.6", exclusive, 0.6, LevelMedium},
		{"exclusive 0.4 boundary", exclusive, 0.4, LevelLow},
		{"exclusive 0.3", exclusive, 0.3, LevelLow},
		{"inclusive 0.8 boundary", inclusive, 0.8, LevelHigh},
		{"inclusive 0.7", inclusive, 0.7, LevelMedium},
		{"inclusive 0.6 boundary", inclusive, 0.6, LevelMedium},
		{"inclusive 0.4", inclusive, 0.4, LevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Level(tt.c); got != tt.want {
				t.Errorf("Level(%v) = %q; want %q", tt.c, got, tt.want)
			}
		})
	}
}
