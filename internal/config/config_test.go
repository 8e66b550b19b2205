package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidate(t *testing.T) {
	saga := types.SagaDefinition{ID: "dune", Title: "Dune", Aliases: []string{"dune"}}

	tests := []struct {
		name        string
		mutate      func(*Config)
		shouldError bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"gate above one", func(c *Config) { c.Gates.Series = 1.5 }, true},
		{"negative gate", func(c *Config) { c.Gates.Movie = -0.1 }, true},
		{"medium above high", func(c *Config) { c.Buckets.Medium = 0.9 }, true},
		{"valid saga", func(c *Config) { c.Sagas = []types.SagaDefinition{saga} }, false},
		{"saga without id", func(c *Config) {
			c.Sagas = []types.SagaDefinition{{Title: "Dune", Aliases: []string{"dune"}}}
		}, true},
		{"duplicate saga id", func(c *Config) { c.Sagas = []types.SagaDefinition{saga, saga} }, true},
		{"saga without title", func(c *Config) {
			c.Sagas = []types.SagaDefinition{{ID: "dune", Aliases: []string{"dune"}}}
		}, true},
		{"saga without aliases", func(c *Config) {
			c.Sagas = []types.SagaDefinition{{ID: "dune", Title: "Dune", Aliases: []string{" "}}}
		}, true},
		{"empty format", func(c *Config) { c.Formats = []string{"mkv", "."} }, true},
		{"bad pattern", func(c *Config) { c.Patterns.Movie = []string{`(`} }, true},
		{"pattern missing groups", func(c *Config) { c.Patterns.Series = []string{`S\d+E\d+`} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.shouldError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil {
				var cerr types.ErrConfigInvalid
				if !errors.As(err, &cerr) {
					t.Errorf("expected ErrConfigInvalid, got %T", err)
				}
			}
		})
	}
}

func TestValidate_PatternErrorChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns.Saga = []string{`[`}

	err := Validate(&cfg)
	var perr types.ErrPatternInvalid
	if !errors.As(err, &perr) {
		t.Fatalf("expected ErrPatternInvalid in chain, got %v", err)
	}
	if perr.Table != "saga" {
		t.Errorf("Table = %q; want saga", perr.Table)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `workers: 4
gates:
  series: 0.5
buckets:
  high: 0.8
  medium: 0.6
  inclusive: true
keywords:
  saga: [anthology]
patterns:
  movie:
    - '^(.+?)[.\s]\{(\d{4})\}'
sagas:
  - id: the-hunger-games
    title: The Hunger Games
    aliases: [hunger.games, mockingjay]
    phases:
      - number: 1
        title: Main Saga
formats: [mkv]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Path() != path {
		t.Errorf("Path() = %q; want %q", cfg.Path(), path)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d; want 4", cfg.Workers)
	}
	if cfg.Gates.Series != 0.5 {
		t.Errorf("Gates.Series = %v; want 0.5", cfg.Gates.Series)
	}
	if cfg.Gates.KnownSaga != detector.DefaultGates().KnownSaga {
		t.Errorf("unset gate lost its default: %v", cfg.Gates.KnownSaga)
	}
	if b := cfg.HistogramBuckets(); b.High != 0.8 || b.Medium != 0.6 || !b.Inclusive {
		t.Errorf("unexpected buckets: %+v", b)
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "mkv" {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if len(cfg.Sagas) != 1 || len(cfg.Sagas[0].Phases) != 1 {
		t.Fatalf("unexpected sagas: %+v", cfg.Sagas)
	}

	d, err := cfg.Detector()
	if err != nil {
		t.Fatal(err)
	}
	got := d.Analyze("Mockingjay.Part.1.2014.mkv")
	if got.ExtractedSagaHint != "The Hunger Games" {
		t.Errorf("user saga not applied: %+v", got)
	}
	got = d.Analyze("Arrival {2016}.mkv")
	if got.DetectedType != types.KindMovie || got.ExtractedTitle != "Arrival" || got.ExtractedYear == nil || *got.ExtractedYear != 2016 {
		t.Errorf("user movie pattern not applied: %+v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		var nf types.ErrConfigNotFound
		if !errors.As(err, &nf) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "map_file: titles.yml\n"))
		var ci types.ErrConfigInvalid
		if !errors.As(err, &ci) {
			t.Errorf("expected ErrConfigInvalid, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "workers: [\n"))
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gates:\n  movie: 2\n"))
		var ci types.ErrConfigInvalid
		if !errors.As(err, &ci) || ci.Path == "" {
			t.Errorf("expected ErrConfigInvalid with path, got %v", err)
		}
	})
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gates != DefaultConfig().Gates {
		t.Errorf("empty file should keep defaults, got %+v", cfg.Gates)
	}
}

func TestLoad_StandardLocations(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "mediascout", "config.yml")
	if UserPath() != want {
		t.Errorf("UserPath() = %q; want %q", UserPath(), want)
	}

	if _, err := os.Stat(etcPath); err == nil {
		t.Skip("system config present")
	}
	if FindPath() != "" {
		t.Errorf("FindPath() = %q; want empty", FindPath())
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != "" {
		t.Errorf("defaults should have no path, got %q", cfg.Path())
	}

	cfg.Workers = 2
	if err := Write(want, cfg); err != nil {
		t.Fatal(err)
	}
	if FindPath() != want {
		t.Errorf("FindPath() = %q; want %q", FindPath(), want)
	}
	loaded, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Workers != 2 {
		t.Errorf("Workers = %d; want 2", loaded.Workers)
	}
}

func TestTables(t *testing.T) {
	builtin := detector.DefaultTables()

	t.Run("user entries first", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Patterns.Series = []string{`^(.+?)\.E(\d+)\.(\d+)`}
		cfg.Keywords.Series = []string{"ova"}

		tb := cfg.Tables()
		if tb.SeriesPatterns[0] != cfg.Patterns.Series[0] {
			t.Errorf("user pattern not first: %v", tb.SeriesPatterns[0])
		}
		if len(tb.SeriesPatterns) != len(builtin.SeriesPatterns)+1 {
			t.Errorf("got %d series patterns", len(tb.SeriesPatterns))
		}
		if tb.SeriesKeywords[0] != "ova" {
			t.Errorf("user keyword not first: %v", tb.SeriesKeywords)
		}
	})

	t.Run("user saga shadows built-in", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Sagas = []types.SagaDefinition{{ID: "star-wars", Title: "Star Wars Saga", Aliases: []string{"star.wars"}}}

		tb := cfg.Tables()
		if len(tb.KnownSagas) != len(builtin.KnownSagas) {
			t.Fatalf("got %d sagas; want %d", len(tb.KnownSagas), len(builtin.KnownSagas))
		}
		if tb.KnownSagas[0].Title != "Star Wars Saga" {
			t.Errorf("user saga not first: %+v", tb.KnownSagas[0])
		}
		for _, s := range tb.KnownSagas[1:] {
			if s.ID == "star-wars" {
				t.Error("built-in star-wars still present")
			}
		}
	})

	t.Run("replace defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ReplaceDefaults = true
		cfg.Keywords.Saga = []string{"anthology"}

		tb := cfg.Tables()
		if len(tb.SeriesPatterns) != 0 || len(tb.KnownSagas) != 0 {
			t.Errorf("built-ins leaked: %+v", tb)
		}
		if len(tb.SagaKeywords) != 1 {
			t.Errorf("SagaKeywords = %v", tb.SagaKeywords)
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.Sagas = []types.SagaDefinition{{
		ID:      "the-hunger-games",
		Title:   "The Hunger Games",
		Aliases: []string{"hunger.games"},
		Phases:  []types.PhaseDefinition{{Number: 1, Title: "Main Saga"}},
	}}

	data, err := Marshal(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load of marshalled config failed: %v\n%s", err, data)
	}
	if loaded.Workers != 3 || loaded.Gates != cfg.Gates || loaded.Buckets != cfg.Buckets {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if len(loaded.Sagas) != 1 || loaded.Sagas[0].Phases[0].Title != "Main Saga" {
		t.Errorf("round trip lost sagas: %+v", loaded.Sagas)
	}
}

func TestDefaultConfigSideEffects(t *testing.T) {
	c1 := DefaultConfig()
	c1.Formats[0] = "MODIFIED"

	c2 := DefaultConfig()
	if c2.Formats[0] == "MODIFIED" {
		t.Error("DefaultConfig() shares its Formats slice")
	}
}
