package detector

import (
	"strconv"
	"strings"

	"github.com/mydehq/mediascout/internal/normalize"
	"github.com/mydehq/mediascout/internal/types"
)

var (
	seriesExamples   = []string{"Series.S01E01.Title", "Show.1x01.Episode"}
	seriesKwExamples = []string{"show.season.1", "series.episode.1"}
	sagaExamples     = []string{"Saga 1 - Title", "Series Part 1", "MCU Phase 1"}
	sagaKwExamples   = []string{"marvel.movie", "star.wars.episode", "fast.furious.part"}
	movieExamples    = []string{"Movie (2023)", "Film.2023"}
)

// examples copies a shared example list so results never alias it
func examples(list []string) []string {
	return append([]string(nil), list...)
}

// firstKeyword returns the first key found in the cleaned filename
func firstKeyword(clean string, keys []string) string {
	haystack := normalize.MatchKey(clean)
	for _, k := range keys {
		if strings.Contains(haystack, k) {
			return k
		}
	}
	return ""
}

// detectSeries recognizes TV episodes. Keyword-only hits score below the
// default series gate, so with default gates they never survive the cascade.
func (d *Detector) detectSeries(in Input) *types.DetectionResult {
	for _, re := range d.series {
		m := re.FindStringSubmatch(in.Clean)
		if m == nil {
			continue
		}

		title := normalize.CleanTitle(group(m, 1))
		res := &types.DetectionResult{
			DetectedType:     types.KindTVEpisode,
			Confidence:       ConfidenceSeriesPattern,
			ExtractedTitle:   title,
			ExtractedSeason:  parseNum(group(m, 2)),
			ExtractedEpisode: parseNum(group(m, 3)),
			DetectionPattern: types.DetectionPattern{
				Pattern:  stripFlags(re.String()),
				Type:     types.PatternSeries,
				Examples: examples(seriesExamples),
			},
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType:  types.GroupSeries,
				GroupTitle: title,
				Confidence: ConfidenceSeriesPattern,
			},
		}
		if ep := group(m, 4); ep != "" {
			res.ExtractedEpisodeTitle = normalize.CleanTitle(ep)
		}
		return res
	}

	if firstKeyword(in.Clean, d.seriesKeywords) == "" {
		return nil
	}
	return &types.DetectionResult{
		DetectedType:   types.KindTVEpisode,
		Confidence:     ConfidenceSeriesKeyword,
		ExtractedTitle: normalize.CleanTitle(in.Clean),
		DetectionPattern: types.DetectionPattern{
			Pattern:  "keywords",
			Type:     types.PatternSeries,
			Examples: examples(seriesKwExamples),
		},
	}
}

// detectKnownSaga matches the registry aliases. Registry order decides
// between sagas, alias order within a saga.
func (d *Detector) detectKnownSaga(in Input) *types.DetectionResult {
	haystack := normalize.MatchKey(in.Clean)

	for _, ks := range d.sagas {
		idx := -1
		for i, key := range ks.aliasKeys {
			if strings.Contains(haystack, key) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		title := normalize.CleanTitle(ks.aliasRes[idx].ReplaceAllString(in.Clean, " "))
		seq := d.ExtractSequenceNumber(in.Clean)
		phase := ks.phase(haystack)

		return &types.DetectionResult{
			DetectedType:            types.KindSagaMovie,
			Confidence:              ConfidenceKnownSaga,
			ExtractedTitle:          title,
			ExtractedSagaHint:       ks.def.Title,
			ExtractedSequenceNumber: seq,
			ExtractedPhaseHint:      phase,
			DetectionPattern: types.DetectionPattern{
				Pattern:  "known_saga_" + ks.def.ID,
				Type:     types.PatternSaga,
				Examples: examples(ks.def.Aliases),
			},
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType:      types.GroupSaga,
				GroupTitle:     ks.def.Title,
				GroupID:        ks.def.ID,
				Confidence:     ConfidenceKnownSaga,
				SuggestedPhase: phase,
				SuggestedOrder: copyNum(seq),
			},
		}
	}
	return nil
}

// phase returns the title of the first phase named in the filename
func (ks knownSaga) phase(haystack string) string {
	for i, key := range ks.phaseKeys {
		if key != "" && strings.Contains(haystack, key) {
			return ks.def.Phases[i].Title
		}
	}
	return ""
}

// detectSaga recognizes installments of sagas that are not in the registry
func (d *Detector) detectSaga(in Input) *types.DetectionResult {
	for _, re := range d.saga {
		m := re.FindStringSubmatch(in.Clean)
		if m == nil {
			continue
		}

		sagaTitle := normalize.CleanTitle(group(m, 1))
		seq := 1
		if n := parseNum(group(m, 2)); n != nil {
			seq = *n
		}

		title := strings.TrimSpace(sagaTitle + " " + strconv.Itoa(seq))
		if sub := group(m, 3); sub != "" {
			title = normalize.CleanTitle(sub)
		}

		return &types.DetectionResult{
			DetectedType:            types.KindSagaMovie,
			Confidence:              ConfidenceSagaPattern,
			ExtractedTitle:          title,
			ExtractedSagaHint:       sagaTitle,
			ExtractedSequenceNumber: types.IntPtr(seq),
			DetectionPattern: types.DetectionPattern{
				Pattern:  stripFlags(re.String()),
				Type:     types.PatternSaga,
				Examples: examples(sagaExamples),
			},
			SuggestedGrouping: &types.GroupingSuggestion{
				GroupType:      types.GroupSaga,
				GroupTitle:     sagaTitle,
				Confidence:     ConfidenceSagaPattern,
				SuggestedOrder: types.IntPtr(seq),
			},
		}
	}

	kw := firstKeyword(in.Clean, d.sagaKeywords)
	if kw == "" {
		return nil
	}

	hint := normalize.CleanTitle(kw)
	groupTitle := hint
	if groupTitle == "" {
		groupTitle = unknownSagaTitle
	}
	seq := d.ExtractSequenceNumber(in.Clean)

	return &types.DetectionResult{
		DetectedType:            types.KindSagaMovie,
		Confidence:              ConfidenceSagaKeyword,
		ExtractedTitle:          normalize.CleanTitle(in.Clean),
		ExtractedSagaHint:       hint,
		ExtractedSequenceNumber: seq,
		DetectionPattern: types.DetectionPattern{
			Pattern:  "keywords",
			Type:     types.PatternSaga,
			Examples: examples(sagaKwExamples),
		},
		SuggestedGrouping: &types.GroupingSuggestion{
			GroupType:      types.GroupSaga,
			GroupTitle:     groupTitle,
			Confidence:     ConfidenceSagaKeyword,
			SuggestedOrder: copyNum(seq),
		},
	}
}

// detectMovie extracts a title and release year. Without a year it still
// proposes a movie, but below the default movie gate.
func (d *Detector) detectMovie(in Input) *types.DetectionResult {
	for _, re := range d.movie {
		m := re.FindStringSubmatch(in.Clean)
		if m == nil {
			continue
		}
		return &types.DetectionResult{
			DetectedType:   types.KindMovie,
			Confidence:     ConfidenceMoviePattern,
			ExtractedTitle: normalize.CleanTitle(group(m, 1)),
			ExtractedYear:  parseNum(group(m, 2)),
			DetectionPattern: types.DetectionPattern{
				Pattern:  stripFlags(re.String()),
				Type:     types.PatternStandalone,
				Examples: examples(movieExamples),
			},
		}
	}

	return &types.DetectionResult{
		DetectedType:   types.KindMovie,
		Confidence:     ConfidenceMovieDefault,
		ExtractedTitle: normalize.CleanTitle(in.Clean),
		DetectionPattern: types.DetectionPattern{
			Pattern: "default",
			Type:    types.PatternStandalone,
		},
	}
}

// ExtractSequenceNumber returns the first installment number found in a
// cleaned filename, or nil.
func (d *Detector) ExtractSequenceNumber(clean string) *int {
	for _, re := range d.sequence {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		if n := parseNum(group(m, 1)); n != nil {
			return n
		}
	}
	return nil
}

// stripFlags drops the case-insensitivity prefix added at compile time
func stripFlags(src string) string {
	return strings.TrimPrefix(src, "(?i)")
}

func copyNum(n *int) *int {
	if n == nil {
		return nil
	}
	return types.IntPtr(*n)
}
