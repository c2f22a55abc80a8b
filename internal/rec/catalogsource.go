package rec

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/daye-lim/shelfmate/internal/books"
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// genreSeeds maps each book genre to catalog search keywords. One seed
// per query keeps the result sets themed instead of a keyword soup.
var genreSeeds = map[scoring.Category][]string{
	quiz.GenreGrowth:     {"self improvement", "habits", "productivity"},
	quiz.GenrePhilosophy: {"philosophy", "stoicism", "ethics"},
	quiz.GenreScience:    {"popular science", "physics", "biology"},
	quiz.GenreSociety:    {"economics", "sociology", "world history"},
	quiz.GenreFiction:    {"literary fiction", "novel", "contemporary fiction"},
}

// tagSeeds adds a situational flavor word to the query when the
// profile carries a strong tag.
var tagSeeds = map[scoring.Category]string{
	quiz.TagMotivation: "inspiring",
	quiz.TagComfort:    "heartwarming",
	quiz.TagRest:       "calm",
	quiz.TagCuriosity:  "fascinating",
}

// CatalogSource pulls candidates from an external book catalog. The
// result shapes vary by provider, so normalization lives in the books
// package; this source only decides what to ask for.
type CatalogSource struct {
	client   *books.Client
	rng      *rand.Rand
	pageSize int
}

func NewCatalogSource(client *books.Client, rng *rand.Rand) *CatalogSource {
	return &CatalogSource{client: client, rng: rng, pageSize: 10}
}

func (s *CatalogSource) Name() string { return "catalog" }

// Candidates runs one search per focus genre (one to three queries),
// each seeded with a genre keyword and, when available, a situational
// flavor word. A failed query is skipped; only when every query fails
// does the source report an error.
func (s *CatalogSource) Candidates(ctx context.Context, p *Profile) ([]Item, error) {
	queries := s.buildQueries(p)
	if len(queries) == 0 {
		return nil, ErrEmptyPool
	}

	var (
		items   []Item
		lastErr error
		failed  int
	)
	seen := make(map[string]bool)
	for _, q := range queries {
		recs, err := s.client.Search(ctx, q.query)
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		for _, r := range recs {
			key := r.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, recordItem(r, q.genre))
		}
	}

	if failed == len(queries) {
		return nil, fmt.Errorf("all catalog queries failed: %w", lastErr)
	}
	if len(items) == 0 {
		return nil, ErrEmptyPool
	}
	return items, nil
}

type catalogQuery struct {
	genre scoring.Category
	query books.Query
}

func (s *CatalogSource) buildQueries(p *Profile) []catalogQuery {
	var flavor string
	if len(p.TopTags) > 0 {
		flavor = tagSeeds[p.TopTags[0]]
	}

	var out []catalogQuery
	for _, genre := range p.TopGenres {
		seeds := genreSeeds[genre]
		if len(seeds) == 0 {
			continue
		}
		keywords := seeds[s.rng.IntN(len(seeds))]
		if flavor != "" {
			keywords += " " + flavor
		}
		out = append(out, catalogQuery{
			genre: genre,
			query: books.Query{Keywords: keywords, PageSize: s.pageSize},
		})
	}
	return out
}

func recordItem(r books.Record, genre scoring.Category) Item {
	return Item{
		Title:       r.Title,
		Creator:     r.Author,
		Category:    genre,
		ID:          r.ISBN,
		ImageURL:    r.CoverURL,
		Synopsis:    r.Synopsis,
		SynopsisURL: r.SynopsisURL,
	}
}
