// Package detector classifies media filenames into movies, saga installments
// and TV episodes.
//
// Classification is an ordered cascade of rules evaluated against the cleaned
// filename. Each rule either has no opinion or proposes a result with a
// confidence tied to the heuristic that fired; the first proposal that clears
// the rule's gate wins. When nothing is accepted the filename is classified
// as a standalone movie with the lowest confidence.
package detector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mydehq/mediascout/internal/normalize"
	"github.com/mydehq/mediascout/internal/types"
)

// Tier confidences
const (
	ConfidenceSeriesPattern = 0.9
	ConfidenceSeriesKeyword = 0.6
	ConfidenceKnownSaga     = 0.9
	ConfidenceSagaPattern   = 0.8
	ConfidenceSagaKeyword   = 0.6
	ConfidenceMoviePattern  = 0.8
	ConfidenceMovieDefault  = 0.4
	ConfidenceFallback      = 0.3
)

const (
	fallbackTitle    = "Untitled"
	unknownSagaTitle = "Unknown Saga"
)

// Gates are the minimum confidences (exclusive) a tier's result needs to be
// accepted by the cascade.
type Gates struct {
	Series    float64
	KnownSaga float64
	Saga      float64
	Movie     float64
}

// DefaultGates returns the canonical acceptance gates
func DefaultGates() Gates {
	return Gates{Series: 0.7, KnownSaga: 0.8, Saga: 0.6, Movie: 0.5}
}

// Input is a filename prepared for rule evaluation
type Input struct {
	Original string
	Clean    string
}

// NewInput cleans a filename for rule evaluation. Invalid UTF-8 sequences
// are replaced with U+FFFD, so results always encode losslessly.
func NewInput(filename string) Input {
	filename = strings.ToValidUTF8(filename, "\uFFFD")
	return Input{Original: filename, Clean: normalize.CleanFilename(filename)}
}

// Rule is one tier of the cascade. Detect returns nil when the rule has no
// opinion about the input.
type Rule struct {
	Name   string
	Gate   float64
	Detect func(in Input) *types.DetectionResult
}

type knownSaga struct {
	def       types.SagaDefinition
	aliasKeys []string
	aliasRes  []*regexp.Regexp
	phaseKeys []string
}

// Detector is a configured classifier. It is immutable after New and safe
// for concurrent use.
type Detector struct {
	gates Gates

	series   []*regexp.Regexp
	saga     []*regexp.Regexp
	movie    []*regexp.Regexp
	sequence []*regexp.Regexp

	seriesKeywords []string
	sagaKeywords   []string
	sagas          []knownSaga

	rules []Rule
}

// Option configures a Detector
type Option func(*Detector)

// WithGates overrides the acceptance gates
func WithGates(g Gates) Option {
	return func(d *Detector) { d.gates = g }
}

// New compiles the tables into a Detector. Patterns that don't compile or
// lack the capture groups their table requires are reported as
// types.ErrPatternInvalid.
func New(tables Tables, opts ...Option) (*Detector, error) {
	d := &Detector{gates: DefaultGates()}
	for _, opt := range opts {
		opt(d)
	}

	var err error
	if d.series, err = compileAll("series", tables.SeriesPatterns, 3); err != nil {
		return nil, err
	}
	if d.saga, err = compileAll("saga", tables.SagaPatterns, 1); err != nil {
		return nil, err
	}
	if d.movie, err = compileAll("movie", tables.MoviePatterns, 2); err != nil {
		return nil, err
	}
	if d.sequence, err = compileAll("sequence", tables.SequencePatterns, 1); err != nil {
		return nil, err
	}

	d.seriesKeywords = matchKeys(tables.SeriesKeywords)
	d.sagaKeywords = matchKeys(tables.SagaKeywords)

	for _, def := range tables.KnownSagas {
		ks, err := compileSaga(def)
		if err != nil {
			return nil, err
		}
		d.sagas = append(d.sagas, ks)
	}

	d.rules = []Rule{
		{Name: "series", Gate: d.gates.Series, Detect: d.detectSeries},
		{Name: "known_saga", Gate: d.gates.KnownSaga, Detect: d.detectKnownSaga},
		{Name: "saga", Gate: d.gates.Saga, Detect: d.detectSaga},
		{Name: "movie", Gate: d.gates.Movie, Detect: d.detectMovie},
	}

	return d, nil
}

// Default returns a Detector built from the shipped tables
func Default() *Detector {
	d, err := New(DefaultTables())
	if err != nil {
		// The built-in tables are constant
		panic(fmt.Sprintf("detector: built-in tables: %v", err))
	}
	return d
}

func compileAll(table string, patterns []string, minGroups int) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, types.ErrPatternInvalid{Table: table, Pattern: p, Err: err}
		}
		if re.NumSubexp() < minGroups {
			return nil, types.ErrPatternInvalid{
				Table:   table,
				Pattern: p,
				Err:     fmt.Errorf("needs at least %d capture groups, has %d", minGroups, re.NumSubexp()),
			}
		}
		out = append(out, re)
	}
	return out, nil
}

func matchKeys(words []string) []string {
	keys := make([]string, 0, len(words))
	for _, w := range words {
		if k := normalize.MatchKey(w); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func compileSaga(def types.SagaDefinition) (knownSaga, error) {
	ks := knownSaga{def: def.Clone()}
	for _, alias := range def.Aliases {
		key := normalize.MatchKey(alias)
		if key == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(key))
		if err != nil {
			return knownSaga{}, types.ErrPatternInvalid{Table: "saga alias", Pattern: alias, Err: err}
		}
		ks.aliasKeys = append(ks.aliasKeys, key)
		ks.aliasRes = append(ks.aliasRes, re)
	}
	for _, ph := range def.Phases {
		ks.phaseKeys = append(ks.phaseKeys, normalize.MatchKey(ph.Title))
	}
	return ks, nil
}

// Gates returns the acceptance gates in use
func (d *Detector) Gates() Gates {
	return d.gates
}

// Rules returns the cascade in evaluation order
func (d *Detector) Rules() []Rule {
	return append([]Rule(nil), d.rules...)
}

// KnownSagas returns a copy of the known-saga registry
func (d *Detector) KnownSagas() []types.SagaDefinition {
	out := make([]types.SagaDefinition, 0, len(d.sagas))
	for _, ks := range d.sagas {
		out = append(out, ks.def.Clone())
	}
	return out
}

// Analyze classifies a single filename. It never fails: unrecognizable input
// degrades to the fallback classification.
func (d *Detector) Analyze(filename string) types.DetectionResult {
	in := NewInput(filename)
	for _, r := range d.rules {
		if res := r.Detect(in); res != nil && res.Confidence > r.Gate {
			return finish(in, res)
		}
	}
	return finish(in, fallback(in))
}

// Trace is the outcome of one rule for one filename
type Trace struct {
	Rule      string                 `json:"rule" yaml:"rule"`
	Gate      float64                `json:"gate" yaml:"gate"`
	Candidate *types.DetectionResult `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Passed    bool                   `json:"passed" yaml:"passed"`
	Selected  bool                   `json:"selected" yaml:"selected"`
}

// Explain evaluates every rule against filename and reports what each one
// proposed. The last trace is always the fallback. Exactly one trace is
// Selected, and it agrees with Analyze.
func (d *Detector) Explain(filename string) []Trace {
	in := NewInput(filename)
	traces := make([]Trace, 0, len(d.rules)+1)
	selected := false

	for _, r := range d.rules {
		t := Trace{Rule: r.Name, Gate: r.Gate}
		if res := r.Detect(in); res != nil {
			done := finish(in, res)
			t.Candidate = &done
			t.Passed = res.Confidence > r.Gate
		}
		if t.Passed && !selected {
			t.Selected = true
			selected = true
		}
		traces = append(traces, t)
	}

	fb := finish(in, fallback(in))
	traces = append(traces, Trace{
		Rule:      "fallback",
		Candidate: &fb,
		Passed:    true,
		Selected:  !selected,
	})
	return traces
}

// finish enforces the result invariants shared by every rule
func finish(in Input, res *types.DetectionResult) types.DetectionResult {
	out := *res
	out.OriginalFilename = in.Original
	if out.ExtractedTitle == "" {
		out.ExtractedTitle = titleOf(in)
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	} else if out.Confidence > 1 {
		out.Confidence = 1
	}
	return out
}

// titleOf is the title used when a rule extracted nothing usable
func titleOf(in Input) string {
	if t := normalize.CleanTitle(in.Clean); t != "" {
		return t
	}
	if t := normalize.CleanTitle(in.Original); t != "" {
		return t
	}
	return fallbackTitle
}

func fallback(in Input) *types.DetectionResult {
	return &types.DetectionResult{
		DetectedType:   types.KindMovie,
		Confidence:     ConfidenceFallback,
		ExtractedTitle: titleOf(in),
		DetectionPattern: types.DetectionPattern{
			Pattern: "default",
			Type:    types.PatternStandalone,
		},
	}
}

// group returns capture i or "" when absent
func group(m []string, i int) string {
	if i < len(m) {
		return strings.TrimSpace(m[i])
	}
	return ""
}

func parseNum(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}
