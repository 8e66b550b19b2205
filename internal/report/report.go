// Package report renders analysis results as styled text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/types"
	"gopkg.in/yaml.v3"
)

// Format is an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", types.ErrFormatUnknown{Format: s}
	}
}

// document is the serialized form of a report. Groups are emitted in
// first-seen order.
type document struct {
	Results []types.DetectionResult `json:"results" yaml:"results"`
	Series  []*types.SeriesGroup    `json:"series" yaml:"series"`
	Sagas   []*types.SagaGroup      `json:"sagas" yaml:"sagas"`
	Stats   types.DetectionStats    `json:"stats" yaml:"stats"`
}

type groupsDocument struct {
	Series []*types.SeriesGroup `json:"series" yaml:"series"`
	Sagas  []*types.SagaGroup   `json:"sagas" yaml:"sagas"`
	Stats  types.DetectionStats `json:"stats" yaml:"stats"`
}

type explainDocument struct {
	Filename string           `json:"filename" yaml:"filename"`
	Traces   []detector.Trace `json:"traces" yaml:"traces"`
}

type sagasDocument struct {
	Sagas []types.SagaDefinition `json:"sagas" yaml:"sagas"`
}

// Write renders the full report: results, groups and statistics
func Write(w io.Writer, rep *api.Report, f Format) error {
	if f == FormatText {
		return writeText(w, rep)
	}
	return encode(w, document{
		Results: rep.Results,
		Series:  rep.Groups.SeriesList(),
		Sagas:   rep.Groups.SagaList(),
		Stats:   rep.Stats,
	}, f)
}

// WriteGroups renders only the groups and statistics of a report
func WriteGroups(w io.Writer, rep *api.Report, f Format) error {
	if f == FormatText {
		return writeGroupsText(w, rep)
	}
	return encode(w, groupsDocument{
		Series: rep.Groups.SeriesList(),
		Sagas:  rep.Groups.SagaList(),
		Stats:  rep.Stats,
	}, f)
}

// WriteTraces renders the per-rule evaluation of one filename
func WriteTraces(w io.Writer, filename string, traces []detector.Trace, f Format) error {
	if f == FormatText {
		return writeTracesText(w, filename, traces)
	}
	return encode(w, explainDocument{Filename: filename, Traces: traces}, f)
}

// WriteSagas renders the known-saga registry
func WriteSagas(w io.Writer, sagas []types.SagaDefinition, f Format) error {
	if f == FormatText {
		return writeSagasText(w, sagas)
	}
	return encode(w, sagasDocument{Sagas: sagas}, f)
}

func encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return types.ErrFormatUnknown{Format: string(f)}
	}
}
