// Package scoring turns a completed answer set into category and
// situational-tag scores, ranks them, and derives the blend weights used
// when two categories feed candidate search together.
package scoring

// Category is a closed-set label: a genre in the primary pass, a
// situational tag in the secondary pass.
type Category string

// ScoreMap holds a non-negative integer score per category. It is
// recomputed from scratch on every run and never persisted.
type ScoreMap map[Category]int

// Weighted is a single contribution of an option to a category.
type Weighted struct {
	Category Category
	Weight   int
}

// Scheme defines how one questionnaire's answers map to scores.
// Genre covers every question; Situation covers only the subset of
// questions that carry situational signal (the last few).
type Scheme struct {
	// Categories is the closed genre set. Order doubles as the fixed
	// priority used by PriorityBreaker.
	Categories []Category

	// Tags is the closed situational-tag vocabulary, in priority order.
	Tags []Category

	// Genre maps question ID → option index → contributions.
	Genre map[int]map[int][]Weighted

	// Situation maps question ID → option index → tag contributions.
	Situation map[int]map[int][]Weighted
}

// GenreScores computes the primary score map. Every category in the
// scheme appears in the result, zero-initialized. An answer that matches
// no rule contributes nothing; it never panics.
func (s *Scheme) GenreScores(answers map[int]int) ScoreMap {
	scores := make(ScoreMap, len(s.Categories))
	for _, c := range s.Categories {
		scores[c] = 0
	}
	applyRules(scores, s.Genre, answers)
	return scores
}

// SituationScores computes the secondary (tag) score map over the
// questions the scheme marks as situational.
func (s *Scheme) SituationScores(answers map[int]int) ScoreMap {
	scores := make(ScoreMap, len(s.Tags))
	for _, t := range s.Tags {
		scores[t] = 0
	}
	applyRules(scores, s.Situation, answers)
	return scores
}

func applyRules(scores ScoreMap, rules map[int]map[int][]Weighted, answers map[int]int) {
	for qid, byOption := range rules {
		opt, ok := answers[qid]
		if !ok {
			continue
		}
		for _, w := range byOption[opt] {
			scores[w.Category] += w.Weight
		}
	}
}
