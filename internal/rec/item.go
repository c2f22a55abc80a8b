// Package rec implements the recommendation pipeline: candidate sources,
// selection, and the orchestration from a completed answer set to the
// final explained result set.
package rec

import (
	"errors"
	"strings"

	"github.com/daye-lim/shelfmate/internal/scoring"
)

// ErrEmptyPool is returned when every candidate source failed or came
// back empty. This is user-visible: the pipeline never silently returns
// fewer items than requested.
var ErrEmptyPool = errors.New("no recommendation candidates available")

// Item is a candidate normalized from any source into one shape.
type Item struct {
	Title    string
	Creator  string
	Category scoring.Category

	// ID is an external identifier (ISBN, catalog id) when known.
	ID string

	ImageURL    string
	Synopsis    string
	SynopsisURL string
	Year        int
}

// NaturalKey returns the dedup key: the external identifier when
// present, otherwise the case- and space-insensitive title+creator.
func (i Item) NaturalKey() string {
	if i.ID != "" {
		return i.ID
	}
	return squash(i.Title) + "|" + squash(i.Creator)
}

// squash lowercases and strips all whitespace for fuzzy-equal matching.
func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Recommendation is a selected item plus its generated justification and
// any enrichment outcome.
type Recommendation struct {
	Item

	// Why is the one-sentence justification built from the user's own
	// answers.
	Why string

	// Publisher is filled by enrichment when available.
	Publisher string

	// Note is a short human-readable remark when enrichment degraded
	// (timeout, no match). Empty on full success.
	Note string
}

// Result is the outcome of one pipeline run.
type Result struct {
	GenreScores scoring.ScoreMap
	TagScores   scoring.ScoreMap
	Ranked      []scoring.Ranked
	TopGenres   []scoring.Category
	TopTags     []scoring.Category
	MixA, MixB  int

	// Source names the candidate source that produced the result set.
	Source string

	Items []Recommendation
}
