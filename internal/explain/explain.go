// Package explain produces the one-line "why this pick" blurbs shown
// with each recommendation. Sentences are assembled from templates and
// small evidence pools; every pool rotates use-once so two picks in the
// same session never share a snippet until the pool is exhausted.
package explain

import (
	"math/rand/v2"
	"strings"

	"github.com/daye-lim/shelfmate/internal/scoring"
)

// Subject is the minimum an explanation needs to know about a pick.
type Subject struct {
	Title    string
	Category scoring.Category
}

// Generator writes explanations for one session. It is stateful: each
// Explain call consumes snippets, so a fresh Generator is needed per
// run.
type Generator struct {
	rng *rand.Rand

	templates *rotation
	genreEv   map[scoring.Category]*rotation
	tagEv     map[scoring.Category]*rotation
	personas  *rotation
	flavors   *rotation

	genres []scoring.Category
	tags   []scoring.Category
}

// NewGenerator builds a session-scoped generator. genres and tags are
// the profile's focus genres and positive situational tags, strongest
// first; mode selects the media-specific wording tables.
func NewGenerator(mode string, genres, tags []scoring.Category, rng *rand.Rand) *Generator {
	t := tablesFor(mode)

	g := &Generator{
		rng:       rng,
		templates: newRotation(t.templates, rng),
		genreEv:   make(map[scoring.Category]*rotation),
		tagEv:     make(map[scoring.Category]*rotation),
		personas:  newRotation(t.personas, rng),
		flavors:   newRotation(t.flavors, rng),
		genres:    genres,
		tags:      tags,
	}
	for cat, pool := range t.genreEvidence {
		g.genreEv[cat] = newRotation(pool, rng)
	}
	for cat, pool := range t.tagEvidence {
		g.tagEv[cat] = newRotation(pool, rng)
	}
	return g
}

// Explain writes one sentence for the i-th pick. The situational angle
// shifts with position: the first pick leans on the strongest tag, the
// second on the runner-up, later picks blend both.
func (g *Generator) Explain(i int, s Subject) string {
	tpl := g.templates.next()

	r := strings.NewReplacer(
		"{title}", s.Title,
		"{g_ev}", g.genreEvidence(s.Category),
		"{need}", g.needPhrase(i),
		"{persona}", g.personas.next(),
		"{flavor}", g.flavors.next(),
	)
	return r.Replace(tpl)
}

func (g *Generator) genreEvidence(cat scoring.Category) string {
	if rot, ok := g.genreEv[cat]; ok {
		return rot.next()
	}
	// Off-pool category (free-form LLM genre slipping through): fall
	// back to the primary focus genre's evidence.
	if len(g.genres) > 0 {
		if rot, ok := g.genreEv[g.genres[0]]; ok {
			return rot.next()
		}
	}
	return "it matches your taste"
}

// needPhrase picks the situational evidence for position i.
func (g *Generator) needPhrase(i int) string {
	if len(g.tags) == 0 {
		return "whatever mood finds you"
	}
	var cat scoring.Category
	switch {
	case i == 0:
		cat = g.tags[0]
	case i == 1 && len(g.tags) > 1:
		cat = g.tags[1]
	default:
		cat = g.tags[i%min(2, len(g.tags))]
	}
	if rot, ok := g.tagEv[cat]; ok {
		return rot.next()
	}
	return "whatever mood finds you"
}

// rotation is a use-once pool: every item is handed out exactly once,
// in shuffled order, before the pool refills and reshuffles.
type rotation struct {
	pool    []string
	pending []string
	rng     *rand.Rand
}

func newRotation(pool []string, rng *rand.Rand) *rotation {
	return &rotation{pool: pool, rng: rng}
}

func (r *rotation) next() string {
	if len(r.pool) == 0 {
		return ""
	}
	if len(r.pending) == 0 {
		r.pending = append(r.pending[:0], r.pool...)
		r.rng.Shuffle(len(r.pending), func(i, j int) {
			r.pending[i], r.pending[j] = r.pending[j], r.pending[i]
		})
	}
	s := r.pending[len(r.pending)-1]
	r.pending = r.pending[:len(r.pending)-1]
	return s
}
