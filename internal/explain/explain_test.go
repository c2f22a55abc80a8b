package explain

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestExplainFillsEveryPlaceholder(t *testing.T) {
	g := NewGenerator("books",
		[]scoring.Category{quiz.GenreScience},
		[]scoring.Category{quiz.TagCuriosity},
		testRand())

	for i := 0; i < 5; i++ {
		got := g.Explain(i, Subject{Title: "Cosmos", Category: quiz.GenreScience})
		if got == "" {
			t.Fatalf("explanation %d is empty", i)
		}
		if strings.Contains(got, "{") || strings.Contains(got, "}") {
			t.Errorf("explanation %d has unfilled placeholder: %q", i, got)
		}
		if !strings.Contains(got, "Cosmos") {
			t.Errorf("explanation %d missing title: %q", i, got)
		}
	}
}

func TestTemplatesRotateWithoutRepeats(t *testing.T) {
	g := NewGenerator("books",
		[]scoring.Category{quiz.GenreFiction},
		[]scoring.Category{quiz.TagComfort},
		testRand())

	// Five templates exist; five picks must each use a different one.
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		tpl := g.templates.next()
		if seen[tpl] {
			t.Fatalf("template repeated before pool exhausted: %q", tpl)
		}
		seen[tpl] = true
	}

	// The sixth draw refills the pool rather than returning empty.
	if got := g.templates.next(); got == "" {
		t.Fatal("rotation returned empty after refill")
	}
}

func TestGenreEvidenceRotates(t *testing.T) {
	g := NewGenerator("books",
		[]scoring.Category{quiz.GenreGrowth},
		nil,
		testRand())

	pool := bookTables.genreEvidence[quiz.GenreGrowth]
	seen := make(map[string]bool)
	for i := 0; i < len(pool); i++ {
		ev := g.genreEvidence(quiz.GenreGrowth)
		if seen[ev] {
			t.Fatalf("evidence repeated before pool exhausted: %q", ev)
		}
		seen[ev] = true
	}
}

func TestOffPoolCategoryFallsBackToPrimaryGenre(t *testing.T) {
	g := NewGenerator("books",
		[]scoring.Category{quiz.GenreSociety},
		nil,
		testRand())

	ev := g.genreEvidence(scoring.Category("no-such-genre"))
	found := false
	for _, s := range bookTables.genreEvidence[quiz.GenreSociety] {
		if s == ev {
			found = true
		}
	}
	if !found {
		t.Errorf("expected fallback to society evidence, got %q", ev)
	}
}

func TestNeedPhraseShiftsWithPosition(t *testing.T) {
	g := NewGenerator("movies",
		[]scoring.Category{quiz.GenreComedy},
		[]scoring.Category{quiz.TagRest, quiz.TagComfort},
		testRand())

	inPool := func(phrase string, cat scoring.Category) bool {
		for _, s := range movieTables.tagEvidence[cat] {
			if s == phrase {
				return true
			}
		}
		return false
	}

	if p := g.needPhrase(0); !inPool(p, quiz.TagRest) {
		t.Errorf("pick 0 should use the top tag, got %q", p)
	}
	if p := g.needPhrase(1); !inPool(p, quiz.TagComfort) {
		t.Errorf("pick 1 should use the runner-up tag, got %q", p)
	}
	if p := g.needPhrase(2); !inPool(p, quiz.TagRest) && !inPool(p, quiz.TagComfort) {
		t.Errorf("pick 2 should blend the top tags, got %q", p)
	}
}

func TestNoTagsStillExplains(t *testing.T) {
	g := NewGenerator("books",
		[]scoring.Category{quiz.GenrePhilosophy},
		nil,
		testRand())

	got := g.Explain(0, Subject{Title: "Meditations", Category: quiz.GenrePhilosophy})
	if strings.Contains(got, "{") {
		t.Errorf("unfilled placeholder with empty tag set: %q", got)
	}
}
