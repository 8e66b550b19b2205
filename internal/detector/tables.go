package detector

import "github.com/mydehq/mediascout/internal/types"

// Tables is the configuration data the detector owns. Patterns are matched
// case-insensitively against the cleaned filename. Keywords and saga aliases
// are matched as substrings after separator normalization.
//
// Capture group contracts:
//   - series:   title, season, episode, optional episode title
//   - saga:     saga name, optional sequence number, optional subtitle
//   - movie:    title, year
//   - sequence: number
type Tables struct {
	SeriesPatterns   []string
	SagaPatterns     []string
	MoviePatterns    []string
	SequencePatterns []string
	SeriesKeywords   []string
	SagaKeywords     []string
	KnownSagas       []types.SagaDefinition
}

// Clone returns a deep copy of the tables
func (t Tables) Clone() Tables {
	out := Tables{
		SeriesPatterns:   append([]string(nil), t.SeriesPatterns...),
		SagaPatterns:     append([]string(nil), t.SagaPatterns...),
		MoviePatterns:    append([]string(nil), t.MoviePatterns...),
		SequencePatterns: append([]string(nil), t.SequencePatterns...),
		SeriesKeywords:   append([]string(nil), t.SeriesKeywords...),
		SagaKeywords:     append([]string(nil), t.SagaKeywords...),
	}
	for _, s := range t.KnownSagas {
		out.KnownSagas = append(out.KnownSagas, s.Clone())
	}
	return out
}

var defaultTables = Tables{
	SeriesPatterns: []string{
		`^(.+?)[.\s]S(\d{1,2})E(\d{1,2})[.\s]*(.*)$`,                // Series.S01E01.Title
		`^(.+?)[.\s](\d{1,2})x(\d{1,2})[.\s]*(.*)$`,                 // Series.1x01.Title
		`^(.+?)[.\s]Season[.\s](\d{1,2})[.\s]Episode[.\s](\d{1,2})`, // Series Season 1 Episode 1
		`^(.+?)[.\s]\[S(\d{1,2})E(\d{1,2})\]`,                       // Series [S01E01]
	},
	SagaPatterns: []string{
		`^(.+?)[.\s](\d{1,2})[.\s]*[-–][.\s]*(.+)$`,              // Saga 1 - Title
		`^(.+?)[.\s](\d{1,2})[.\s]*[:][.\s]*(.+)$`,               // Saga 1: Title
		`^(.+?)[.\s]Part[.\s](\d{1,2})[.\s]*[-–]?[.\s]*(.*)$`,    // Saga Part 1 - Title
		`^(.+?)[.\s]Volume[.\s](\d{1,2})[.\s]*[-–]?[.\s]*(.*)$`,  // Saga Volume 1
		`^(.+?)[.\s]Chapter[.\s](\d{1,2})[.\s]*[-–]?[.\s]*(.*)$`, // Saga Chapter 1
		`^(.+?)[.\s]Episode[.\s](\d{1,2})[.\s]*[-–]?[.\s]*(.*)$`, // Star Wars Episode 1
		`^(.+?)[.\s]Phase[.\s](\d{1,2})[.\s]*[-–]?[.\s]*(.*)$`,   // MCU Phase 1
		`^(.*Marvel.*|.*MCU.*|.*Avengers.*)`,
		`^(.*Star Wars.*|.*SW.*)`,
		`^(.*Fast.*Furious.*|.*F&F.*)`,
		`^(.*Harry Potter.*|.*HP.*)`,
	},
	MoviePatterns: []string{
		`^(.+?)[.\s]\((\d{4})\)`,        // Movie (2023)
		`^(.+?)[.\s](\d{4})(?:[.\s]|$)`, // Movie 2023
		`^(.+?)[.\s]\[(\d{4})\]`,        // Movie [2023]
	},
	SequencePatterns: []string{
		`(\d{1,2})[.\s]*[-–:][.\s]`,
		`Part[.\s](\d{1,2})`,
		`Volume[.\s](\d{1,2})`,
		`Chapter[.\s](\d{1,2})`,
		`Episode[.\s](\d{1,2})`,
		`Phase[.\s](\d{1,2})`,
	},
	SeriesKeywords: []string{"season", "episode", "pilot", "finale", "series", "show"},
	SagaKeywords: []string{
		"part", "volume", "chapter", "saga", "trilogy", "quadrilogy", "phase", "episode",
		"marvel", "mcu", "dc", "dceu", "star.wars", "harry.potter", "lord.of.the.rings",
		"fast.furious", "james.bond", "007", "mission.impossible", "avengers",
		"x-men", "transformers", "pirates.caribbean", "indiana.jones",
	},
	KnownSagas: []types.SagaDefinition{
		{
			ID:      "marvel-cinematic-universe",
			Title:   "Marvel Cinematic Universe",
			Aliases: []string{"mcu", "marvel", "avengers", "iron.man", "thor", "captain.america"},
			Phases: []types.PhaseDefinition{
				{Number: 1, Title: "Phase 1"},
				{Number: 2, Title: "Phase 2"},
				{Number: 3, Title: "Phase 3"},
				{Number: 4, Title: "Phase 4"},
			},
		},
		{
			ID:      "star-wars",
			Title:   "Star Wars",
			Aliases: []string{"star.wars", "sw", "jedi", "sith", "empire", "republic"},
			Phases: []types.PhaseDefinition{
				{Number: 1, Title: "Original Trilogy"},
				{Number: 2, Title: "Prequel Trilogy"},
				{Number: 3, Title: "Sequel Trilogy"},
			},
		},
		{
			ID:      "fast-furious",
			Title:   "Fast & Furious",
			Aliases: []string{"fast.furious", "f&f", "fast.and.furious", "furious"},
			Phases:  []types.PhaseDefinition{{Number: 1, Title: "Main Saga"}},
		},
		{
			ID:      "harry-potter",
			Title:   "Harry Potter Universe",
			Aliases: []string{"harry.potter", "hp", "potter", "wizarding.world"},
			Phases: []types.PhaseDefinition{
				{Number: 1, Title: "Harry Potter"},
				{Number: 2, Title: "Fantastic Beasts"},
			},
		},
	},
}

// DefaultTables returns a fresh copy of the built-in tables. Callers may
// modify the result freely.
func DefaultTables() Tables {
	return defaultTables.Clone()
}
