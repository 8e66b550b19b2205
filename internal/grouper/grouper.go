// Package grouper clusters detection results into series and saga groups and
// computes batch statistics.
package grouper

import (
	"github.com/mydehq/mediascout/internal/normalize"
	"github.com/mydehq/mediascout/internal/types"
)

// Groups holds the series and saga groups of one batch, keyed by slug id.
// Order lists the ids in the order their first member appeared.
type Groups struct {
	Series map[string]*types.SeriesGroup `json:"series" yaml:"series"`
	Sagas  map[string]*types.SagaGroup   `json:"sagas" yaml:"sagas"`

	seriesOrder []string
	sagaOrder   []string
	seasons     map[string]map[int]struct{}
}

// SeriesList returns the series groups in first-seen order
func (g Groups) SeriesList() []*types.SeriesGroup {
	out := make([]*types.SeriesGroup, 0, len(g.seriesOrder))
	for _, id := range g.seriesOrder {
		out = append(out, g.Series[id])
	}
	return out
}

// SagaList returns the saga groups in first-seen order
func (g Groups) SagaList() []*types.SagaGroup {
	out := make([]*types.SagaGroup, 0, len(g.sagaOrder))
	for _, id := range g.sagaOrder {
		out = append(out, g.Sagas[id])
	}
	return out
}

// Group clusters results by their grouping suggestion. Results are copied;
// the input slice is not modified.
func Group(results []types.DetectionResult) Groups {
	g := Groups{
		Series:  make(map[string]*types.SeriesGroup),
		Sagas:   make(map[string]*types.SagaGroup),
		seasons: make(map[string]map[int]struct{}),
	}

	for _, r := range results {
		s := r.SuggestedGrouping
		if s == nil {
			continue
		}
		switch {
		case r.DetectedType == types.KindTVEpisode && s.GroupType == types.GroupSeries:
			g.addEpisode(r)
		case r.DetectedType == types.KindSagaMovie && s.GroupType == types.GroupSaga:
			g.addMovie(r)
		}
	}

	g.seasons = nil
	return g
}

func (g *Groups) addEpisode(r types.DetectionResult) {
	title := r.SuggestedGrouping.GroupTitle
	id := normalize.Slug(title)

	sg, ok := g.Series[id]
	if !ok {
		sg = &types.SeriesGroup{ID: id, Title: title}
		g.Series[id] = sg
		g.seriesOrder = append(g.seriesOrder, id)
		g.seasons[id] = make(map[int]struct{})
	}

	sg.Episodes = append(sg.Episodes, r)
	sg.TotalEpisodes = len(sg.Episodes)
	g.seasons[id][r.SeasonOrDefault()] = struct{}{}
	sg.TotalSeasons = len(g.seasons[id])
}

func (g *Groups) addMovie(r types.DetectionResult) {
	title := r.SuggestedGrouping.GroupTitle
	id := normalize.Slug(title)

	sg, ok := g.Sagas[id]
	if !ok {
		sg = &types.SagaGroup{ID: id, Title: title}
		g.Sagas[id] = sg
		g.sagaOrder = append(g.sagaOrder, id)
	}

	sg.Movies = append(sg.Movies, r)
	sg.TotalMovies = len(sg.Movies)

	if p := r.ExtractedPhaseHint; p != "" && !contains(sg.SuggestedPhases, p) {
		sg.SuggestedPhases = append(sg.SuggestedPhases, p)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
