package scoring

import (
	"math/rand/v2"
	"sort"
)

// Ranked pairs a category with its score for ordered display.
type Ranked struct {
	Category Category
	Score    int
}

// Rank orders the score map descending by score. Equal scores keep the
// relative order given by priority, so the output is deterministic for a
// given input regardless of map iteration order.
func Rank(scores ScoreMap, priority []Category) []Ranked {
	pos := make(map[Category]int, len(priority))
	for i, c := range priority {
		pos[c] = i
	}

	out := make([]Ranked, 0, len(scores))
	for c, v := range scores {
		out = append(out, Ranked{Category: c, Score: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return pos[out[i].Category] < pos[out[j].Category]
	})
	return out
}

// TopSet returns every category sharing the maximum score.
func TopSet(ranked []Ranked) []Category {
	if len(ranked) == 0 {
		return nil
	}
	max := ranked[0].Score
	var top []Category
	for _, r := range ranked {
		if r.Score != max {
			break
		}
		top = append(top, r.Category)
	}
	return top
}

// TieBreaker resolves a first-place tie down to a single winner.
//
// The two policies are not interchangeable: PriorityBreaker is
// deterministic and is used for situational tags (stable focus
// assignment across the result set), RandomBreaker is used for genre
// display where run-to-run variety is the point.
type TieBreaker interface {
	Pick(tied []Category) Category
}

// PriorityBreaker picks the tied category that appears earliest in its
// fixed order.
type PriorityBreaker struct {
	Order []Category
}

func (b PriorityBreaker) Pick(tied []Category) Category {
	if len(tied) == 0 {
		return ""
	}
	best := tied[0]
	bestPos := len(b.Order) + 1
	for _, c := range tied {
		for i, o := range b.Order {
			if o == c && i < bestPos {
				best, bestPos = c, i
			}
		}
	}
	return best
}

// RandomBreaker picks uniformly at random. The source is injectable so
// tests can seed it and assert distribution.
type RandomBreaker struct {
	Rand *rand.Rand
}

func (b RandomBreaker) Pick(tied []Category) Category {
	if len(tied) == 0 {
		return ""
	}
	return tied[b.Rand.IntN(len(tied))]
}

// MixWeights derives the blend between the first- and second-ranked
// categories from their score gap. The pair always sums to 100 and
// drives query construction downstream, not just display.
//
//	runner-up score 0 → 100/0 (single category)
//	gap ≤ 0           → 50/50
//	gap 1             → 60/40
//	gap 2             → 70/30
//	gap ≥ 3           → 80/20
func MixWeights(first, second Ranked) (int, int) {
	if second.Score == 0 {
		return 100, 0
	}
	switch gap := first.Score - second.Score; {
	case gap <= 0:
		return 50, 50
	case gap == 1:
		return 60, 40
	case gap == 2:
		return 70, 30
	default:
		return 80, 20
	}
}
