package rec

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/daye-lim/shelfmate/internal/llm"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// Selector narrows a candidate pool down to the profile's N picks.
// Candidates are deduplicated by natural key first; survivors are
// scored heuristically and the pool is split according to the mix
// weights so a 70/30 profile really reads as 70/30.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select returns exactly n items when the pool allows it, fewer when it
// does not. Callers top up a short selection from the static pool.
func (s *Selector) Select(p *Profile, pool []Item) []Item {
	pool = Dedup(pool)
	n := p.N()
	if len(pool) <= n {
		return pool
	}

	quota := mixQuota(p, n)
	byGenre := make(map[scoring.Category][]Item)
	var rest []Item
	for _, it := range pool {
		if _, ok := quota[it.Category]; ok {
			byGenre[it.Category] = append(byGenre[it.Category], it)
		} else {
			rest = append(rest, it)
		}
	}

	var out []Item
	for genre, want := range quota {
		ranked := s.rankPool(byGenre[genre])
		if want > len(ranked) {
			want = len(ranked)
		}
		out = append(out, ranked[:want]...)
		rest = append(rest, ranked[want:]...)
	}

	// Short quotas (or off-focus candidates) fill from the best of the
	// remainder.
	if len(out) < n {
		ranked := s.rankPool(rest)
		need := n - len(out)
		if need > len(ranked) {
			need = len(ranked)
		}
		out = append(out, ranked[:need]...)
	}
	return out[:min(n, len(out))]
}

// mixQuota translates the profile's percentage split into item counts,
// rounding half up so the leading genre wins the odd item but the
// runner-up never rounds away to nothing.
func mixQuota(p *Profile, n int) map[scoring.Category]int {
	quota := make(map[scoring.Category]int, len(p.TopGenres))
	if len(p.TopGenres) == 1 || p.MixB == 0 {
		quota[p.TopGenres[0]] = n
		return quota
	}
	first := (n*p.MixA + 50) / 100
	if first >= n {
		first = n - 1
	}
	quota[p.TopGenres[0]] = first
	quota[p.TopGenres[1]] = n - first
	return quota
}

// rankPool orders candidates best-first: having an identifier, an
// image, or a recent release each count, and ties land in random order
// so repeated runs over the same pool vary.
func (s *Selector) rankPool(items []Item) []Item {
	type scored struct {
		item Item
		val  int
		tie  int
	}
	ranked := make([]scored, len(items))
	currentYear := time.Now().Year()
	for i, it := range items {
		val := 0
		if it.ID != "" {
			val += 2
		}
		if it.ImageURL != "" {
			val++
		}
		if it.Synopsis != "" || it.SynopsisURL != "" {
			val++
		}
		if it.Year > 0 && currentYear-it.Year <= 10 {
			val++
		}
		ranked[i] = scored{item: it, val: val, tie: s.rng.Int()}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].val != ranked[j].val {
			return ranked[i].val > ranked[j].val
		}
		return ranked[i].tie < ranked[j].tie
	})
	out := make([]Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// Dedup removes natural-key duplicates, keeping first occurrence.
func Dedup(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		key := it.NaturalKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// LLMSelector delegates the final pick to the model: it shows the
// numbered candidate list and asks for n indices. Indices out of range
// or repeated are discarded rather than failing the run.
type LLMSelector struct {
	provider llm.Provider
}

func NewLLMSelector(provider llm.Provider) *LLMSelector {
	return &LLMSelector{provider: provider}
}

var pickSchema = &llm.Schema{
	Name:        "candidate-picks",
	Description: "Indices of the chosen candidates, best first",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"picks": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required":             []any{"picks"},
		"additionalProperties": false,
	},
}

// Pick returns the model's choice of n items from pool. The selection
// may come back short after discarding invalid indices; the caller is
// responsible for topping up.
func (s *LLMSelector) Pick(ctx context.Context, p *Profile, pool []Item, n int) ([]Item, error) {
	ctx = llm.WithPurpose(ctx, "candidate-pick")

	var b strings.Builder
	fmt.Fprintf(&b, "Pick the %d best matches for this reader profile.\n", n)
	fmt.Fprintf(&b, "Focus genres: %s. Current needs: %s.\n\n", joinCategories(p.TopGenres), joinCategories(p.TopTags))
	b.WriteString("Candidates:\n")
	for i, it := range pool {
		fmt.Fprintf(&b, "%d. %s", i, it.Title)
		if it.Creator != "" {
			fmt.Fprintf(&b, " — %s", it.Creator)
		}
		fmt.Fprintf(&b, " [%s]\n", it.Category)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    "You select items from a numbered list. Respond with indices only, best first.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		Schema:    pickSchema,
		MaxTokens: 256,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM pick: %w", err)
	}

	var out struct {
		Picks []int `json:"picks"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse picks: %w", err)
	}

	var picked []Item
	used := make(map[int]bool)
	for _, idx := range out.Picks {
		if idx < 0 || idx >= len(pool) || used[idx] {
			continue
		}
		used[idx] = true
		picked = append(picked, pool[idx])
		if len(picked) == n {
			break
		}
	}
	return picked, nil
}
