// Package enrich decorates recommendations with catalog metadata:
// identifiers, publishers, covers, and synopses. Lookups run in a
// bounded worker pool, and failures degrade to a note on the single
// affected item instead of sinking the whole set.
package enrich

import (
	"context"
	"strings"
	"sync"

	"github.com/daye-lim/shelfmate/internal/books"
)

// Target identifies what to look up.
type Target struct {
	Title   string
	Creator string
}

// Metadata is the enrichment result for one target. Note carries the
// degradation message when the lookup failed or matched nothing.
type Metadata struct {
	ISBN      string
	Publisher string
	CoverURL  string
	Synopsis  string
	Note      string
}

// Catalog is the slice of the book catalog client enrichment needs.
type Catalog interface {
	Search(ctx context.Context, q books.Query) ([]books.Record, error)
	FetchDocument(ctx context.Context, docURL string) (string, error)
}

// Enricher resolves metadata for recommendation targets. Results are
// memoized for the lifetime of the Enricher, so a title that appears
// twice costs one request.
type Enricher struct {
	catalog       Catalog
	workers       int
	synopsisLimit int
	lazySynopsis  bool

	mu   sync.Mutex
	memo map[string]Metadata
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithWorkers bounds the lookup fan-out.
func WithWorkers(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSynopsisLimit caps synopsis length in runes.
func WithSynopsisLimit(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.synopsisLimit = n
		}
	}
}

// WithLazySynopsis skips fetching linked synopsis documents; only
// inline text survives.
func WithLazySynopsis(lazy bool) Option {
	return func(e *Enricher) { e.lazySynopsis = lazy }
}

func New(catalog Catalog, opts ...Option) *Enricher {
	e := &Enricher{
		catalog:       catalog,
		workers:       3,
		synopsisLimit: 400,
		memo:          make(map[string]Metadata),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichAll resolves all targets concurrently and returns results in
// input order. Individual failures surface as Metadata.Note; the error
// return is reserved for context cancellation.
func (e *Enricher) EnrichAll(ctx context.Context, targets []Target) ([]Metadata, error) {
	out := make([]Metadata, len(targets))

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				out[i] = Metadata{Note: "details unavailable"}
				return
			}
			defer func() { <-sem }()
			out[i] = e.Enrich(ctx, t)
		}(i, t)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// Enrich resolves metadata for one target.
func (e *Enricher) Enrich(ctx context.Context, t Target) Metadata {
	key := memoKey(t)
	e.mu.Lock()
	if m, ok := e.memo[key]; ok {
		e.mu.Unlock()
		return m
	}
	e.mu.Unlock()

	m := e.lookup(ctx, t)

	e.mu.Lock()
	e.memo[key] = m
	e.mu.Unlock()
	return m
}

func (e *Enricher) lookup(ctx context.Context, t Target) Metadata {
	recs, err := e.catalog.Search(ctx, books.Query{
		Title:    t.Title,
		Author:   t.Creator,
		PageSize: 5,
	})
	if err != nil {
		return Metadata{Note: "details unavailable"}
	}

	best, tier := bestMatch(t.Title, recs)
	if tier == tierNone {
		return Metadata{Note: "no close match found"}
	}

	m := Metadata{
		ISBN:      best.ISBN,
		Publisher: best.Publisher,
		CoverURL:  best.CoverURL,
	}

	synopsis := best.Synopsis
	if synopsis == "" && best.SynopsisURL != "" && !e.lazySynopsis {
		if doc, err := e.catalog.FetchDocument(ctx, best.SynopsisURL); err == nil {
			synopsis = doc
		}
	}
	m.Synopsis = CleanSynopsis(synopsis, e.synopsisLimit)

	if tier == tierWeak {
		m.Note = "closest match, may differ in edition"
	}
	return m
}

func memoKey(t Target) string {
	return strings.ToLower(strings.TrimSpace(t.Title)) + "|" +
		strings.ToLower(strings.TrimSpace(t.Creator))
}
