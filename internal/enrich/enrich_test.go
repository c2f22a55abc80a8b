package enrich

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daye-lim/shelfmate/internal/books"
)

// fakeCatalog serves canned results keyed by query title.
type fakeCatalog struct {
	results map[string][]books.Record
	docs    map[string]string
	err     error
	delay   map[string]time.Duration

	calls atomic.Int32
}

func (f *fakeCatalog) Search(ctx context.Context, q books.Query) ([]books.Record, error) {
	f.calls.Add(1)
	if d, ok := f.delay[q.Title]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q.Title], nil
}

func (f *fakeCatalog) FetchDocument(ctx context.Context, docURL string) (string, error) {
	if doc, ok := f.docs[docURL]; ok {
		return doc, nil
	}
	return "", errors.New("not found")
}

func TestMatchTierOrdering(t *testing.T) {
	recs := []books.Record{
		{Title: "Deep Learning", ISBN: "prefix"},
		{Title: "Deep Work: Rules for Focused Success", ISBN: "substr"},
		{Title: "Deep Work", ISBN: "exact"},
	}

	best, tier := bestMatch("Deep Work", recs)
	if tier != tierExact || best.ISBN != "exact" {
		t.Fatalf("want exact match, got tier %d isbn %q", tier, best.ISBN)
	}

	best, tier = bestMatch("Deep Work", recs[:2])
	if tier != tierSubstring || best.ISBN != "substr" {
		t.Fatalf("want substring match, got tier %d isbn %q", tier, best.ISBN)
	}

	_, tier = bestMatch("Deep Work", recs[:1])
	if tier != tierPrefix {
		t.Fatalf("want prefix match for shared 'deep', got tier %d", tier)
	}
}

func TestCleanSynopsis(t *testing.T) {
	in := "<p>A  <b>bold</b> claim about\n\nfocus.</p>"
	if got := CleanSynopsis(in, 0); got != "A bold claim about focus." {
		t.Errorf("strip/collapse: got %q", got)
	}

	long := strings.Repeat("가", 50)
	got := CleanSynopsis(long, 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated synopsis must end in ellipsis: %q", got)
	}
	if n := len([]rune(got)); n != 11 {
		t.Errorf("want 10 runes plus ellipsis, got %d", n)
	}
}

func TestEnrichMemoizes(t *testing.T) {
	cat := &fakeCatalog{results: map[string][]books.Record{
		"Grit": {{Title: "Grit", ISBN: "9781501111105", Publisher: "Scribner"}},
	}}
	e := New(cat)

	first := e.Enrich(context.Background(), Target{Title: "Grit"})
	second := e.Enrich(context.Background(), Target{Title: "Grit"})

	if first.ISBN != "9781501111105" || second.ISBN != first.ISBN {
		t.Fatalf("unexpected metadata: %+v / %+v", first, second)
	}
	if got := cat.calls.Load(); got != 1 {
		t.Errorf("memoized lookup should hit catalog once, got %d calls", got)
	}
}

func TestEnrichAllPreservesOrderWithSlowLookup(t *testing.T) {
	cat := &fakeCatalog{
		results: map[string][]books.Record{
			"Cosmos":      {{Title: "Cosmos", ISBN: "c"}},
			"Factfulness": {{Title: "Factfulness", ISBN: "f"}},
			"Sapiens":     {{Title: "Sapiens", ISBN: "s"}},
		},
		delay: map[string]time.Duration{"Cosmos": 30 * time.Millisecond},
	}
	e := New(cat, WithWorkers(2))

	targets := []Target{{Title: "Cosmos"}, {Title: "Factfulness"}, {Title: "Sapiens"}}
	got, err := e.EnrichAll(context.Background(), targets)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"c", "f", "s"}
	for i, isbn := range want {
		if got[i].ISBN != isbn {
			t.Errorf("position %d: want ISBN %q, got %q", i, isbn, got[i].ISBN)
		}
	}
}

func TestLookupFailureDegradesToNote(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("boom")}
	e := New(cat)

	m := e.Enrich(context.Background(), Target{Title: "Nudge"})
	if m.Note == "" {
		t.Fatal("failed lookup must carry a note")
	}
	if m.ISBN != "" || m.Synopsis != "" {
		t.Errorf("failed lookup must not carry metadata: %+v", m)
	}
}

func TestNoMatchDegradesToNote(t *testing.T) {
	cat := &fakeCatalog{results: map[string][]books.Record{
		"Evicted": {{Title: "Zen and the Art of Motorcycle Maintenance"}},
	}}
	e := New(cat)

	m := e.Enrich(context.Background(), Target{Title: "Evicted"})
	if m.Note == "" {
		t.Fatal("unmatched lookup must carry a note")
	}
}

func TestLinkedSynopsisFetched(t *testing.T) {
	cat := &fakeCatalog{
		results: map[string][]books.Record{
			"1984": {{Title: "1984", ISBN: "x", SynopsisURL: "https://docs.example/1984"}},
		},
		docs: map[string]string{
			"https://docs.example/1984": "<div>Big Brother is watching.</div>",
		},
	}

	m := New(cat).Enrich(context.Background(), Target{Title: "1984"})
	if m.Synopsis != "Big Brother is watching." {
		t.Errorf("linked synopsis: got %q", m.Synopsis)
	}

	lazy := New(cat, WithLazySynopsis(true)).Enrich(context.Background(), Target{Title: "1984"})
	if lazy.Synopsis != "" {
		t.Errorf("lazy mode must skip linked synopsis, got %q", lazy.Synopsis)
	}
}
