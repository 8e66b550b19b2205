package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = "mediascout"
	fileName = "config.yml"
	etcPath  = "/etc/mediascout/config.yml"
)

// Config represents the user-specific or system-wide configuration.
type Config struct {
	Workers         int                    `yaml:"workers"`
	ReplaceDefaults bool                   `yaml:"replace_defaults"`
	Gates           GatesConfig            `yaml:"gates"`
	Buckets         BucketsConfig          `yaml:"buckets"`
	Keywords        KeywordsConfig         `yaml:"keywords"`
	Patterns        PatternsConfig         `yaml:"patterns"`
	Sagas           []types.SagaDefinition `yaml:"sagas"`
	Formats         []string               `yaml:"formats"`

	path string
}

// GatesConfig holds the per-tier acceptance gates
type GatesConfig struct {
	Series    float64 `yaml:"series"`
	KnownSaga float64 `yaml:"known_saga"`
	Saga      float64 `yaml:"saga"`
	Movie     float64 `yaml:"movie"`
}

// BucketsConfig holds the confidence histogram bounds
type BucketsConfig struct {
	High      float64 `yaml:"high"`
	Medium    float64 `yaml:"medium"`
	Inclusive bool    `yaml:"inclusive"`
}

type KeywordsConfig struct {
	Series []string `yaml:"series,flow"`
	Saga   []string `yaml:"saga,flow"`
}

type PatternsConfig struct {
	Series   []string `yaml:"series"`
	Saga     []string `yaml:"saga"`
	Movie    []string `yaml:"movie"`
	Sequence []string `yaml:"sequence"`
}

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	g := detector.DefaultGates()
	b := grouper.DefaultBuckets()
	return Config{
		Gates: GatesConfig{
			Series:    g.Series,
			KnownSaga: g.KnownSaga,
			Saga:      g.Saga,
			Movie:     g.Movie,
		},
		Buckets: BucketsConfig{High: b.High, Medium: b.Medium, Inclusive: b.Inclusive},
		Formats: []string{"mkv", "mp4", "avi", "webm", "m4v", "ts", "flv"},
	}
}

// Load loads the configuration from the specified path or standard locations.
// An explicit path must exist; when no file is found in the standard
// locations the defaults are returned.
func Load(customPath string) (*Config, error) {
	cfg := DefaultConfig()

	path := customPath
	if path == "" {
		path = FindPath()
	}
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrConfigNotFound{Path: path}
		}
		return nil, fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return nil, types.ErrConfigInvalid{Path: path, Reason: "parse error", Err: err}
	}
	cfg.path = path

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Path returns the file the config was loaded from, or "" for defaults
func (c *Config) Path() string {
	return c.path
}

// UserPath returns the per-user config location, whether or not it exists
func UserPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return ""
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, dirName, fileName)
}

// FindPath searches for the config file in standard locations.
func FindPath() string {
	if path := UserPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if _, err := os.Stat(etcPath); err == nil {
		return etcPath
	}

	return ""
}

// Validate checks value ranges and compiles every table so that a bad
// pattern fails at load time instead of per filename.
func Validate(cfg *Config) error {
	invalid := func(format string, args ...any) error {
		return types.ErrConfigInvalid{Path: cfg.path, Reason: fmt.Sprintf(format, args...)}
	}

	if cfg.Workers < 0 {
		return invalid("workers must be >= 0, got %d", cfg.Workers)
	}

	gates := map[string]float64{
		"series":     cfg.Gates.Series,
		"known_saga": cfg.Gates.KnownSaga,
		"saga":       cfg.Gates.Saga,
		"movie":      cfg.Gates.Movie,
	}
	for _, name := range []string{"series", "known_saga", "saga", "movie"} {
		if v := gates[name]; v < 0 || v > 1 {
			return invalid("gate %s must be within [0,1], got %v", name, v)
		}
	}

	b := cfg.Buckets
	if b.Medium < 0 || b.High > 1 || b.Medium > b.High {
		return invalid("buckets need 0 <= medium <= high <= 1, got medium=%v high=%v", b.Medium, b.High)
	}

	seen := make(map[string]bool)
	for i, s := range cfg.Sagas {
		if s.ID == "" {
			return invalid("saga #%d has no id", i+1)
		}
		if seen[s.ID] {
			return invalid("duplicate saga id %q", s.ID)
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.Title) == "" {
			return invalid("saga %q has no title", s.ID)
		}
		if !hasAlias(s.Aliases) {
			return invalid("saga %q has no aliases", s.ID)
		}
	}

	for _, f := range cfg.Formats {
		if strings.Trim(f, ". ") == "" {
			return invalid("empty entry in formats")
		}
	}

	if _, err := cfg.Detector(); err != nil {
		return types.ErrConfigInvalid{Path: cfg.path, Reason: "detection tables", Err: err}
	}
	return nil
}

func hasAlias(aliases []string) bool {
	for _, a := range aliases {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	return false
}

// Tables merges the configured tables with the built-ins. User entries are
// tried first; a user saga replaces the built-in saga with the same id.
// With replace_defaults the built-ins are left out.
func (c *Config) Tables() detector.Tables {
	var base detector.Tables
	if !c.ReplaceDefaults {
		base = detector.DefaultTables()
	}

	t := detector.Tables{
		SeriesPatterns:   concat(c.Patterns.Series, base.SeriesPatterns),
		SagaPatterns:     concat(c.Patterns.Saga, base.SagaPatterns),
		MoviePatterns:    concat(c.Patterns.Movie, base.MoviePatterns),
		SequencePatterns: concat(c.Patterns.Sequence, base.SequencePatterns),
		SeriesKeywords:   concat(c.Keywords.Series, base.SeriesKeywords),
		SagaKeywords:     concat(c.Keywords.Saga, base.SagaKeywords),
	}

	ids := make(map[string]bool, len(c.Sagas))
	for _, s := range c.Sagas {
		t.KnownSagas = append(t.KnownSagas, s.Clone())
		ids[s.ID] = true
	}
	for _, s := range base.KnownSagas {
		if !ids[s.ID] {
			t.KnownSagas = append(t.KnownSagas, s)
		}
	}
	return t
}

func concat(user, builtin []string) []string {
	if len(user)+len(builtin) == 0 {
		return nil
	}
	out := make([]string, 0, len(user)+len(builtin))
	out = append(out, user...)
	return append(out, builtin...)
}

// DetectorGates converts the configured gates
func (c *Config) DetectorGates() detector.Gates {
	return detector.Gates{
		Series:    c.Gates.Series,
		KnownSaga: c.Gates.KnownSaga,
		Saga:      c.Gates.Saga,
		Movie:     c.Gates.Movie,
	}
}

// HistogramBuckets converts the configured bucket bounds
func (c *Config) HistogramBuckets() grouper.Buckets {
	return grouper.Buckets{High: c.Buckets.High, Medium: c.Buckets.Medium, Inclusive: c.Buckets.Inclusive}
}

// Detector builds a detector from the merged tables and gates
func (c *Config) Detector() (*detector.Detector, error) {
	return detector.New(c.Tables(), detector.WithGates(c.DetectorGates()))
}

// Marshal renders the config as YAML
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders cfg to path, creating parent directories as needed
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config at %s: %w", path, err)
	}
	return nil
}
