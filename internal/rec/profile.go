package rec

import (
	"context"
	"math/rand/v2"

	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// Profile is the scored view of one quiz run, handed to candidate
// sources to steer query construction.
type Profile struct {
	Mode    *quiz.Mode
	Answers quiz.AnswerSet

	GenreScores scoring.ScoreMap
	TagScores   scoring.ScoreMap
	Ranked      []scoring.Ranked

	// TopGenres has one or two entries: the winner, and the runner-up
	// when its score is non-zero. A genre never appears twice.
	TopGenres []scoring.Category

	// MixA/MixB blend the two top genres for candidate search.
	// MixB is 0 when TopGenres has a single entry.
	MixA, MixB int

	// TopTags is the situational-tag ranking, highest first,
	// zero-scored tags excluded.
	TopTags []scoring.Category
}

// N returns the number of recommendations this run must produce.
func (p *Profile) N() int {
	return p.Mode.RecCount
}

// Source produces candidate items for a profile. Implementations are
// interchangeable; the pipeline picks by configuration and availability,
// not by branching on data.
type Source interface {
	Name() string
	Candidates(ctx context.Context, p *Profile) ([]Item, error)
}

// BuildProfile scores the answers and derives the focus genres, mix
// weights, and tag ranking.
//
// Tie-break policies differ on purpose: genre ties use the injected
// random source (variety between otherwise identical runs), tag ties use
// the scheme's fixed priority order (the focus-tag assignment in
// explanations must be stable within a run).
func BuildProfile(m *quiz.Mode, answers quiz.AnswerSet, rng *rand.Rand) *Profile {
	s := m.Scheme

	genreScores := s.GenreScores(answers)
	tagScores := s.SituationScores(answers)

	ranked := scoring.Rank(genreScores, s.Categories)
	top := scoring.TopSet(ranked)

	var focus []scoring.Category
	var mixA, mixB int
	switch {
	case len(top) >= 2:
		// Shuffle the tied leaders so the blend varies run to run.
		shuffled := make([]scoring.Category, len(top))
		copy(shuffled, top)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		focus = shuffled[:2]
		mixA, mixB = 50, 50
	case len(ranked) >= 2 && ranked[1].Score > 0:
		focus = []scoring.Category{ranked[0].Category, ranked[1].Category}
		mixA, mixB = scoring.MixWeights(ranked[0], ranked[1])
	default:
		focus = []scoring.Category{ranked[0].Category}
		mixA, mixB = 100, 0
	}
	if mixB == 0 && len(focus) > 1 {
		focus = focus[:1]
	}

	tagRanked := scoring.Rank(tagScores, s.Tags)
	var topTags []scoring.Category
	for _, r := range tagRanked {
		if r.Score > 0 {
			topTags = append(topTags, r.Category)
		}
	}

	return &Profile{
		Mode:        m,
		Answers:     answers,
		GenreScores: genreScores,
		TagScores:   tagScores,
		Ranked:      ranked,
		TopGenres:   focus,
		MixA:        mixA,
		MixB:        mixB,
		TopTags:     topTags,
	}
}
