package rec

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/daye-lim/shelfmate/internal/enrich"
	"github.com/daye-lim/shelfmate/internal/explain"
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
	"github.com/daye-lim/shelfmate/internal/store"
)

// Pipeline runs one recommendation session end to end: validate,
// score, gather candidates, select, explain, enrich, record.
type Pipeline struct {
	mode     *quiz.Mode
	sources  []Source
	selector *Selector
	picker   *LLMSelector
	enricher *enrich.Enricher
	events   store.EventRepo
	rng      *rand.Rand
}

// PipelineOption configures optional pipeline stages.
type PipelineOption func(*Pipeline)

// WithLLMPicker lets the model make the final selection. Invalid picks
// fall back to the heuristic selector.
func WithLLMPicker(p *LLMSelector) PipelineOption {
	return func(pl *Pipeline) { pl.picker = p }
}

// WithEnricher adds catalog metadata to the selected items.
func WithEnricher(e *enrich.Enricher) PipelineOption {
	return func(pl *Pipeline) { pl.enricher = e }
}

// WithEvents records each completed run.
func WithEvents(repo store.EventRepo) PipelineOption {
	return func(pl *Pipeline) { pl.events = repo }
}

// NewPipeline wires a pipeline for one mode. Sources are tried in
// order; the static pool should come last so there is always a floor.
func NewPipeline(mode *quiz.Mode, sources []Source, rng *rand.Rand, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		mode:     mode,
		sources:  sources,
		selector: NewSelector(rng),
		rng:      rng,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for a completed answer set. An incomplete
// set returns *quiz.IncompleteError before any scoring happens.
func (pl *Pipeline) Run(ctx context.Context, answers quiz.AnswerSet) (*Result, error) {
	if err := quiz.Validate(pl.mode, answers); err != nil {
		return nil, err
	}

	profile := BuildProfile(pl.mode, answers, pl.rng)

	pool, sourceName, err := pl.gather(ctx, profile)
	if err != nil {
		return nil, err
	}

	items := pl.pick(ctx, profile, pool)
	items = pl.topUp(profile, items)

	recs := pl.explainAll(profile, items)
	pl.enrichAll(ctx, recs)
	pl.record(ctx, profile, sourceName, recs)

	return &Result{
		GenreScores: profile.GenreScores,
		TagScores:   profile.TagScores,
		Ranked:      profile.Ranked,
		TopGenres:   profile.TopGenres,
		TopTags:     profile.TopTags,
		MixA:        profile.MixA,
		MixB:        profile.MixB,
		Source:      sourceName,
		Items:       recs,
	}, nil
}

// gather tries each source in order. A source that errors or cannot
// cover N is skipped; only when every source fails does the run fail.
func (pl *Pipeline) gather(ctx context.Context, p *Profile) ([]Item, string, error) {
	var lastErr error = ErrEmptyPool
	for _, src := range pl.sources {
		items, err := src.Candidates(ctx, p)
		if err != nil {
			lastErr = err
			continue
		}
		items = Dedup(items)
		if len(items) < p.N() {
			continue
		}
		return items, src.Name(), nil
	}
	return nil, "", lastErr
}

func (pl *Pipeline) pick(ctx context.Context, p *Profile, pool []Item) []Item {
	if pl.picker != nil {
		if picked, err := pl.picker.Pick(ctx, p, pool, p.N()); err == nil && len(picked) > 0 {
			if len(picked) == p.N() {
				return picked
			}
			// Short pick: keep the model's choices and let the
			// heuristic fill the rest.
			used := make(map[string]bool, len(picked))
			for _, it := range picked {
				used[it.NaturalKey()] = true
			}
			var remainder []Item
			for _, it := range pool {
				if !used[it.NaturalKey()] {
					remainder = append(remainder, it)
				}
			}
			need := p.N() - len(picked)
			more := pl.selector.Select(&Profile{Mode: p.Mode, TopGenres: p.TopGenres, MixA: 100}, remainder)
			if len(more) > need {
				more = more[:need]
			}
			return append(picked, more...)
		}
	}
	return pl.selector.Select(p, pool)
}

// topUp guarantees exactly N items by borrowing from the static pool
// when the selected set runs short.
func (pl *Pipeline) topUp(p *Profile, items []Item) []Item {
	if len(items) >= p.N() {
		return items[:p.N()]
	}
	used := make(map[string]bool, len(items))
	for _, it := range items {
		used[it.NaturalKey()] = true
	}
	extra := FallbackItems(p.Mode, p.TopGenres[0], used, p.N()-len(items), pl.rng)
	return append(items, extra...)
}

func (pl *Pipeline) explainAll(p *Profile, items []Item) []Recommendation {
	gen := explain.NewGenerator(p.Mode.Name, p.TopGenres, p.TopTags, pl.rng)
	recs := make([]Recommendation, len(items))
	for i, it := range items {
		recs[i] = Recommendation{
			Item: it,
			Why:  gen.Explain(i, explain.Subject{Title: it.Title, Category: it.Category}),
		}
	}
	return recs
}

// enrichAll fills catalog metadata in place. Only items still missing a
// synopsis or identifier are looked up.
func (pl *Pipeline) enrichAll(ctx context.Context, recs []Recommendation) {
	if pl.enricher == nil {
		return
	}
	var targets []enrich.Target
	var idx []int
	for i, r := range recs {
		if r.Synopsis != "" && r.ID != "" {
			continue
		}
		targets = append(targets, enrich.Target{Title: r.Title, Creator: r.Creator})
		idx = append(idx, i)
	}
	if len(targets) == 0 {
		return
	}

	metas, _ := pl.enricher.EnrichAll(ctx, targets)
	for j, m := range metas {
		r := &recs[idx[j]]
		if r.ID == "" {
			r.ID = m.ISBN
		}
		if r.ImageURL == "" {
			r.ImageURL = m.CoverURL
		}
		if r.Synopsis == "" {
			r.Synopsis = m.Synopsis
		}
		r.Publisher = m.Publisher
		r.Note = m.Note
	}
}

func (pl *Pipeline) record(ctx context.Context, p *Profile, source string, recs []Recommendation) {
	if pl.events == nil {
		return
	}
	itemsJSON, err := json.Marshal(recs)
	if err != nil {
		return
	}
	// Recording is best-effort; a failed insert never fails the run.
	_ = pl.events.AppendSession(ctx, store.SessionEventData{
		SessionID: uuid.NewString(),
		Mode:      p.Mode.Name,
		Answers:   p.Answers.Letters(p.Mode),
		TopGenres: joinCats(p.TopGenres),
		TopTags:   joinCats(p.TopTags),
		Source:    source,
		ItemsJSON: string(itemsJSON),
	})
}

func joinCats(cs []scoring.Category) string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return strings.Join(out, ",")
}
