package grouper

import "github.com/mydehq/mediascout/internal/types"

// Buckets are the confidence histogram bounds. A confidence above High is
// high, above Medium is medium, anything else low. With Inclusive the bounds
// themselves belong to the upper bucket.
type Buckets struct {
	High      float64 `yaml:"high"`
	Medium    float64 `yaml:"medium"`
	Inclusive bool    `yaml:"inclusive"`
}

// DefaultBuckets returns the canonical bounds: high > 0.7, medium in
// (0.4, 0.7], low <= 0.4.
func DefaultBuckets() Buckets {
	return Buckets{High: 0.7, Medium: 0.4}
}

// Confidence levels
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

func (b Buckets) above(c, bound float64) bool {
	if b.Inclusive {
		return c >= bound
	}
	return c > bound
}

// Level names the bucket a confidence falls into
func (b Buckets) Level(c float64) string {
	switch {
	case b.above(c, b.High):
		return LevelHigh
	case b.above(c, b.Medium):
		return LevelMedium
	default:
		return LevelLow
	}
}

// Stats computes batch statistics for results and the groups built from them
func Stats(results []types.DetectionResult, g Groups, b Buckets) types.DetectionStats {
	st := types.DetectionStats{
		TotalFiles: len(results),
		Series:     len(g.Series),
		Sagas:      len(g.Sagas),
	}

	for _, r := range results {
		switch r.DetectedType {
		case types.KindMovie:
			st.StandaloneMovies++
		case types.KindSagaMovie:
			st.SagaMovies++
		case types.KindTVEpisode:
			st.Episodes++
		}

		switch b.Level(r.Confidence) {
		case LevelHigh:
			st.Confidence.High++
		case LevelMedium:
			st.Confidence.Medium++
		default:
			st.Confidence.Low++
		}
	}
	return st
}

// Summarize groups results and computes their statistics in one call
func Summarize(results []types.DetectionResult, b Buckets) (Groups, types.DetectionStats) {
	g := Group(results)
	return g, Stats(results, g, b)
}
