// Package types defines core domain types used throughout mediascout.
package types

// MediaKind represents the detected kind of a media file
type MediaKind string

const (
	KindMovie       MediaKind = "movie"
	KindSagaMovie   MediaKind = "saga_movie"
	KindTVEpisode   MediaKind = "tv_episode"
	KindTVSpecial   MediaKind = "tv_special"
	KindDocumentary MediaKind = "documentary"
	KindMusicVideo  MediaKind = "music_video"
	KindAudioTrack  MediaKind = "audio_track"
	KindAudioAlbum  MediaKind = "audio_album"
	KindOther       MediaKind = "other"
)

// PatternKind tells which family of rules produced a match
type PatternKind string

const (
	PatternSeries     PatternKind = "series"
	PatternMovie      PatternKind = "movie"
	PatternSaga       PatternKind = "saga"
	PatternStandalone PatternKind = "standalone"
)

// GroupKind is the kind of group a result is suggested for
type GroupKind string

const (
	GroupSeries     GroupKind = "series"
	GroupSaga       GroupKind = "saga"
	GroupStandalone GroupKind = "standalone"
)

// DetectionPattern records the provenance of a match
type DetectionPattern struct {
	Pattern  string      `json:"pattern" yaml:"pattern"`
	Type     PatternKind `json:"type" yaml:"type"`
	Examples []string    `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// GroupingSuggestion proposes the series or saga a result belongs to
type GroupingSuggestion struct {
	GroupType      GroupKind `json:"groupType" yaml:"group_type"`
	GroupTitle     string    `json:"groupTitle" yaml:"group_title"`
	GroupID        string    `json:"groupId,omitempty" yaml:"group_id,omitempty"`
	Confidence     float64   `json:"confidence" yaml:"confidence"`
	SimilarFiles   []string  `json:"similarFiles,omitempty" yaml:"similar_files,omitempty"`
	SuggestedPhase string    `json:"suggestedPhase,omitempty" yaml:"suggested_phase,omitempty"`
	SuggestedOrder *int      `json:"suggestedOrder,omitempty" yaml:"suggested_order,omitempty"`
}

// DetectionResult is the classification of a single filename.
// Results are never mutated once produced.
type DetectionResult struct {
	OriginalFilename        string              `json:"originalFilename" yaml:"original_filename"`
	DetectedType            MediaKind           `json:"detectedType" yaml:"detected_type"`
	Confidence              float64             `json:"confidence" yaml:"confidence"`
	ExtractedTitle          string              `json:"extractedTitle" yaml:"extracted_title"`
	ExtractedYear           *int                `json:"extractedYear,omitempty" yaml:"extracted_year,omitempty"`
	ExtractedSeason         *int                `json:"extractedSeason,omitempty" yaml:"extracted_season,omitempty"`
	ExtractedEpisode        *int                `json:"extractedEpisode,omitempty" yaml:"extracted_episode,omitempty"`
	ExtractedEpisodeTitle   string              `json:"extractedEpisodeTitle,omitempty" yaml:"extracted_episode_title,omitempty"`
	ExtractedSagaHint       string              `json:"extractedSagaHint,omitempty" yaml:"extracted_saga_hint,omitempty"`
	ExtractedSequenceNumber *int                `json:"extractedSequenceNumber,omitempty" yaml:"extracted_sequence_number,omitempty"`
	ExtractedPhaseHint      string              `json:"extractedPhaseHint,omitempty" yaml:"extracted_phase_hint,omitempty"`
	DetectionPattern        DetectionPattern    `json:"detectionPattern" yaml:"detection_pattern"`
	SuggestedGrouping       *GroupingSuggestion `json:"suggestedGrouping,omitempty" yaml:"suggested_grouping,omitempty"`
}

// SeasonOrDefault returns the extracted season, treating a missing season as 1
func (r *DetectionResult) SeasonOrDefault() int {
	if r.ExtractedSeason == nil {
		return 1
	}
	return *r.ExtractedSeason
}

// SeriesGroup clusters the episodes of one TV series
type SeriesGroup struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	TotalEpisodes int               `json:"totalEpisodes" yaml:"total_episodes"`
	TotalSeasons  int               `json:"totalSeasons" yaml:"total_seasons"`
	Episodes      []DetectionResult `json:"episodes" yaml:"episodes"`
}

// SagaGroup clusters the installments of one movie saga
type SagaGroup struct {
	ID              string            `json:"id" yaml:"id"`
	Title           string            `json:"title" yaml:"title"`
	TotalMovies     int               `json:"totalMovies" yaml:"total_movies"`
	Movies          []DetectionResult `json:"movies" yaml:"movies"`
	SuggestedPhases []string          `json:"suggestedPhases,omitempty" yaml:"suggested_phases,omitempty"`
}

// ConfidenceHistogram counts results per confidence bucket
type ConfidenceHistogram struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// DetectionStats summarizes a batch of results. It is recomputed, never updated.
type DetectionStats struct {
	TotalFiles       int                 `json:"totalFiles" yaml:"total_files"`
	StandaloneMovies int                 `json:"standaloneMovies" yaml:"standalone_movies"`
	SagaMovies       int                 `json:"sagaMovies" yaml:"saga_movies"`
	Episodes         int                 `json:"episodes" yaml:"episodes"`
	Series           int                 `json:"series" yaml:"series"`
	Sagas            int                 `json:"sagas" yaml:"sagas"`
	Confidence       ConfidenceHistogram `json:"confidence" yaml:"confidence"`
}

// PhaseDefinition is a named sub-sequence of a saga
type PhaseDefinition struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
}

// SagaDefinition is an entry of the known-saga registry
type SagaDefinition struct {
	ID      string            `json:"id" yaml:"id"`
	Title   string            `json:"title" yaml:"title"`
	Aliases []string          `json:"aliases" yaml:"aliases,flow"`
	Phases  []PhaseDefinition `json:"phases,omitempty" yaml:"phases,omitempty"`
}

// Clone returns a deep copy of the definition
func (s SagaDefinition) Clone() SagaDefinition {
	out := s
	out.Aliases = append([]string(nil), s.Aliases...)
	out.Phases = append([]PhaseDefinition(nil), s.Phases...)
	return out
}

// EventType represents the type of progress event
type EventType string

const (
	EventInfo     EventType = "info"
	EventProgress EventType = "progress"
	EventSuccess  EventType = "success"
	EventWarning  EventType = "warning"
	EventError    EventType = "error"
)

// Event represents a progress event during operations
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
}

// EventHandler receives progress events during operations
type EventHandler func(Event)

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}
