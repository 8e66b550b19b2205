// Package mediascout classifies media filenames into movies, saga
// installments and TV episodes, and groups them into series and sagas.
//
// This package mirrors the CLI functionality and provides a compatible API
// for embedding mediascout into other Go applications.

package mediascout

import (
	"github.com/mydehq/mediascout/internal/api"
	"github.com/mydehq/mediascout/internal/detector"
	"github.com/mydehq/mediascout/internal/grouper"
	"github.com/mydehq/mediascout/internal/types"
)

// Re-export all types from internal/api
type (
	Option  = api.Option
	Options = api.Options
	Report  = api.Report

	Detector = detector.Detector
	Tables   = detector.Tables
	Gates    = detector.Gates
	Trace    = detector.Trace
	Buckets  = grouper.Buckets
	Groups   = grouper.Groups

	MediaKind          = types.MediaKind
	DetectionResult    = types.DetectionResult
	GroupingSuggestion = types.GroupingSuggestion
	SeriesGroup        = types.SeriesGroup
	SagaGroup          = types.SagaGroup
	SagaDefinition     = types.SagaDefinition
	DetectionStats     = types.DetectionStats
	Event              = types.Event
	EventHandler       = types.EventHandler
)

const (
	KindMovie     = types.KindMovie
	KindSagaMovie = types.KindSagaMovie
	KindTVEpisode = types.KindTVEpisode
)

// Re-export all option constructors
var (
	WithConfig   = api.WithConfig
	WithWorkers  = api.WithWorkers
	WithEvents   = api.WithEvents
	WithDetector = api.WithDetector
	WithBuckets  = api.WithBuckets
)

// Re-export all core functions
var (
	Analyze       = api.Analyze
	Explain       = api.Explain
	Sagas         = api.Sagas
	LoadConfig    = api.LoadConfig
	ReadNames     = api.ReadNames
	ReadNamesFile = api.ReadNamesFile
	FilterNames   = api.FilterNames

	NewDetector    = detector.New
	DefaultTables  = detector.DefaultTables
	Group          = grouper.Group
	Summarize      = grouper.Summarize
	DefaultBuckets = grouper.DefaultBuckets
)
