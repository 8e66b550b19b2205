// Package api provides the core implementation for mediascout operations.
// This package is used by both the CLI and the public library API.
package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mydehq/mediascout/internal/config"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/types"
)

// Option is a functional option for configuring operations
type Option func(*Options)

// Options holds configuration for mediascout operations
type Options struct {
	ConfigPath string
	Workers    int
	Events     types.EventHandler
	Detector   *detector.Detector
	Buckets    *grouper.Buckets
}

// WithConfig specifies a custom config file path
func WithConfig(path string) Option {
	return func(o *Options) { o.ConfigPath = path }
}

// WithWorkers sets the size of the analysis pool (0 means one per CPU)
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithEvents registers a handler for progress events
func WithEvents(h types.EventHandler) Option {
	return func(o *Options) { o.Events = h }
}

// WithDetector uses d instead of building one from the configuration
func WithDetector(d *detector.Detector) Option {
	return func(o *Options) { o.Detector = d }
}

// WithBuckets overrides the confidence histogram bounds
func WithBuckets(b grouper.Buckets) Option {
	return func(o *Options) { o.Buckets = &b }
}

func newOptions(opts []Option) *Options {
	options := &Options{Workers: -1}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *Options) emit(t types.EventType, msg string, data any) {
	if o.Events != nil {
		o.Events(types.Event{Type: t, Message: msg, Data: data})
	}
}

// engine is the resolved detector, bounds and pool size for one operation
type engine struct {
	detector *detector.Detector
	buckets  grouper.Buckets
	workers  int
}

func (o *Options) engine() (*engine, error) {
	e := &engine{detector: o.Detector, workers: o.Workers}
	if o.Buckets != nil {
		e.buckets = *o.Buckets
	}

	if e.detector != nil && o.Buckets != nil && o.Workers >= 0 {
		return e, nil
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if path := cfg.Path(); path != "" {
		o.emit(types.EventInfo, "Using config "+path, path)
	}

	if e.detector == nil {
		// Load has already validated these tables.
		if e.detector, err = cfg.Detector(); err != nil {
			return nil, fmt.Errorf("failed to build detector: %w", err)
		}
	}
	if o.Buckets == nil {
		e.buckets = cfg.HistogramBuckets()
	}
	if e.workers < 0 {
		e.workers = cfg.Workers
	}
	return e, nil
}

// Report is the outcome of analyzing one batch of filenames
type Report struct {
	Results []types.DetectionResult
	Groups  grouper.Groups
	Stats   types.DetectionStats
	Buckets grouper.Buckets
}

// Analyze classifies filenames, groups the results and computes statistics.
// Results keep the order of filenames.
func Analyze(ctx context.Context, filenames []string, opts ...Option) (*Report, error) {
	options := newOptions(opts)

	e, err := options.engine()
	if err != nil {
		return nil, err
	}

	options.emit(types.EventInfo, fmt.Sprintf("Analyzing %d filenames", len(filenames)), len(filenames))

	results, err := e.detector.AnalyzeBatch(ctx, filenames, e.workers)
	if err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	for _, r := range results {
		if e.buckets.Level(r.Confidence) == grouper.LevelLow {
			options.emit(types.EventWarning, "Low confidence: "+r.OriginalFilename, r)
		}
	}

	groups, stats := grouper.Summarize(results, e.buckets)
	options.emit(types.EventSuccess,
		fmt.Sprintf("Found %d series and %d sagas", stats.Series, stats.Sagas), stats)

	return &Report{Results: results, Groups: groups, Stats: stats, Buckets: e.buckets}, nil
}

// Explain reports how every rule of the cascade judged filename
func Explain(filename string, opts ...Option) ([]detector.Trace, error) {
	options := newOptions(opts)
	e, err := options.engine()
	if err != nil {
		return nil, err
	}
	return e.detector.Explain(filename), nil
}

// Sagas returns the effective known-saga registry
func Sagas(opts ...Option) ([]types.SagaDefinition, error) {
	options := newOptions(opts)
	e, err := options.engine()
	if err != nil {
		return nil, err
	}
	return e.detector.KnownSagas(), nil
}

// LoadConfig loads the configuration the other operations would use
func LoadConfig(opts ...Option) (*config.Config, error) {
	options := newOptions(opts)
	cfg, err := config.Load(options.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// ReadNames reads one filename per line. Blank lines and lines starting with
// '#' are skipped. The remaining lines go through FilterNames.
func ReadNames(r io.Reader, formats []string) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read filenames: %w", err)
	}
	return FilterNames(lines, formats), nil
}

// FilterNames strips directory components (slash or backslash separated) and drops
// names left empty. When formats is not empty only names with one of those
// extensions are kept.
func FilterNames(names []string, formats []string) []string {
	allowed := make(map[string]bool, len(formats))
	for _, f := range formats {
		allowed[normalizeExt(f)] = true
	}

	var out []string
	for _, name := range names {
		if i := strings.LastIndexAny(name, `/\`); i >= 0 {
			name = name[i+1:]
		}
		if name == "" {
			continue
		}
		if len(allowed) > 0 && !allowed[normalizeExt(filepath.Ext(name))] {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ReadNamesFile is ReadNames over the file at path
func ReadNamesFile(path string, formats []string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrInputNotFound{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNames(f, formats)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
