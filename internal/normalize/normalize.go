// Package normalize holds the text transforms shared by the detector and the
// grouper: filename cleanup, title casing and slug ids.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	reExtension  = regexp.MustCompile(`\.[^/.]+$`)
	reSeparators = regexp.MustCompile(`[._-]`)
	reNonSlug    = regexp.MustCompile(`[^a-z0-9]+`)
)

// collapse replaces separators with spaces and squeezes whitespace runs
func collapse(s string) string {
	s = reSeparators.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// CleanFilename strips the extension and turns separators into single spaces.
// The result feeds every pattern match of the detector.
func CleanFilename(filename string) string {
	return collapse(reExtension.ReplaceAllString(filename, ""))
}

// CleanTitle cleans separators and title-cases every word: the first rune is
// upper-cased and the remainder lower-cased.
func CleanTitle(title string) string {
	words := strings.Split(collapse(title), " ")

	// Casers keep state, so a fresh pair per call.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

// MatchKey lower-cases s and normalizes separators so that registry aliases
// written with dots ("iron.man") compare equal to cleaned filenames ("iron man").
func MatchKey(s string) string {
	return strings.ToLower(collapse(s))
}

// ContainsFold reports whether needle occurs in haystack after both are
// reduced to their match keys. An empty needle never matches.
func ContainsFold(haystack, needle string) bool {
	key := MatchKey(needle)
	if key == "" {
		return false
	}
	return strings.Contains(MatchKey(haystack), key)
}

// Slug derives a stable identifier from a title. Titles without any ASCII
// letter or digit hash to "g-<xxhash64>" so the id is never empty.
func Slug(title string) string {
	slug := reNonSlug.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug != "" {
		return slug
	}
	return "g-" + strconv.FormatUint(xxhash.Sum64String(title), 16)
}
