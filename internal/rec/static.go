package rec

import (
	"context"
	"math/rand/v2"

	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// bookPool is the known-good demo pool, five titles per genre.
var bookPool = map[scoring.Category][]Item{
	quiz.GenreGrowth: {
		{Title: "Atomic Habits", Creator: "James Clear"},
		{Title: "Grit", Creator: "Angela Duckworth"},
		{Title: "Deep Work", Creator: "Cal Newport"},
		{Title: "The One Thing", Creator: "Gary Keller"},
		{Title: "The Miracle Morning", Creator: "Hal Elrod"},
	},
	quiz.GenrePhilosophy: {
		{Title: "Justice", Creator: "Michael Sandel"},
		{Title: "Man's Search for Meaning", Creator: "Viktor Frankl"},
		{Title: "The Socrates Express", Creator: "Eric Weiner"},
		{Title: "Meditations", Creator: "Marcus Aurelius"},
		{Title: "Sapiens", Creator: "Yuval Noah Harari"},
	},
	quiz.GenreScience: {
		{Title: "Cosmos", Creator: "Carl Sagan"},
		{Title: "Factfulness", Creator: "Hans Rosling"},
		{Title: "A Short History of Nearly Everything", Creator: "Bill Bryson"},
		{Title: "AI 2041", Creator: "Kai-Fu Lee, Chen Qiufan"},
		{Title: "The Selfish Gene", Creator: "Richard Dawkins"},
	},
	quiz.GenreSociety: {
		{Title: "Guns, Germs, and Steel", Creator: "Jared Diamond"},
		{Title: "Nudge", Creator: "Richard Thaler, Cass Sunstein"},
		{Title: "Capital in the Twenty-First Century", Creator: "Thomas Piketty"},
		{Title: "Evicted", Creator: "Matthew Desmond"},
		{Title: "The Silk Roads", Creator: "Peter Frankopan"},
	},
	quiz.GenreFiction: {
		{Title: "The Miracles of the Namiya General Store", Creator: "Keigo Higashino"},
		{Title: "1984", Creator: "George Orwell"},
		{Title: "Demian", Creator: "Hermann Hesse"},
		{Title: "Klara and the Sun", Creator: "Kazuo Ishiguro"},
		{Title: "A Man Called Ove", Creator: "Fredrik Backman"},
	},
}

// moviePool backs movie-night mode when the media API is unavailable.
var moviePool = map[scoring.Category][]Item{
	quiz.GenreAdventure: {
		{Title: "Mad Max: Fury Road", Creator: "George Miller", Year: 2015},
		{Title: "The Martian", Creator: "Ridley Scott", Year: 2015},
		{Title: "Top Gun: Maverick", Creator: "Joseph Kosinski", Year: 2022},
		{Title: "Raiders of the Lost Ark", Creator: "Steven Spielberg", Year: 1981},
		{Title: "Spider-Man: Into the Spider-Verse", Creator: "Bob Persichetti", Year: 2018},
	},
	quiz.GenreDrama: {
		{Title: "The Shawshank Redemption", Creator: "Frank Darabont", Year: 1994},
		{Title: "Parasite", Creator: "Bong Joon-ho", Year: 2019},
		{Title: "Manchester by the Sea", Creator: "Kenneth Lonergan", Year: 2016},
		{Title: "Whiplash", Creator: "Damien Chazelle", Year: 2014},
		{Title: "Past Lives", Creator: "Celine Song", Year: 2023},
	},
	quiz.GenreSciFi: {
		{Title: "Arrival", Creator: "Denis Villeneuve", Year: 2016},
		{Title: "Blade Runner 2049", Creator: "Denis Villeneuve", Year: 2017},
		{Title: "Interstellar", Creator: "Christopher Nolan", Year: 2014},
		{Title: "Ex Machina", Creator: "Alex Garland", Year: 2014},
		{Title: "Everything Everywhere All at Once", Creator: "Daniels", Year: 2022},
	},
	quiz.GenreDocu: {
		{Title: "Free Solo", Creator: "Jimmy Chin", Year: 2018},
		{Title: "My Octopus Teacher", Creator: "Pippa Ehrlich", Year: 2020},
		{Title: "13th", Creator: "Ava DuVernay", Year: 2016},
		{Title: "Won't You Be My Neighbor?", Creator: "Morgan Neville", Year: 2018},
		{Title: "The Act of Killing", Creator: "Joshua Oppenheimer", Year: 2012},
	},
	quiz.GenreComedy: {
		{Title: "The Grand Budapest Hotel", Creator: "Wes Anderson", Year: 2014},
		{Title: "Paddington 2", Creator: "Paul King", Year: 2017},
		{Title: "Groundhog Day", Creator: "Harold Ramis", Year: 1993},
		{Title: "What We Do in the Shadows", Creator: "Taika Waititi", Year: 2014},
		{Title: "Game Night", Creator: "John Francis Daley", Year: 2018},
	},
}

// StaticSource serves the in-memory pool. It is the fallback of last
// resort and, by construction, cannot fail for a known mode.
type StaticSource struct {
	rng *rand.Rand
}

// NewStaticSource builds a static source with the injected random
// source (shuffling for variety; seedable in tests).
func NewStaticSource(rng *rand.Rand) *StaticSource {
	return &StaticSource{rng: rng}
}

func (s *StaticSource) Name() string { return "static" }

// Candidates draws from the pools of the focus genres proportionally to
// the mix weights, shuffled, with each item tagged by its pool genre.
func (s *StaticSource) Candidates(_ context.Context, p *Profile) ([]Item, error) {
	pool := poolForMode(p.Mode)

	var out []Item
	for i, g := range p.TopGenres {
		items := make([]Item, len(pool[g]))
		copy(items, pool[g])
		s.rng.Shuffle(len(items), func(a, b int) {
			items[a], items[b] = items[b], items[a]
		})
		share := p.MixA
		if i == 1 {
			share = p.MixB
		}
		want := (p.N()*share + 99) / 100 // ceil, so both genres surface
		if want > len(items) {
			want = len(items)
		}
		for j := range items {
			items[j].Category = g
		}
		out = append(out, items[:want]...)
	}

	if len(out) == 0 {
		return nil, ErrEmptyPool
	}
	return out, nil
}

func poolForMode(m *quiz.Mode) map[scoring.Category][]Item {
	if m.Name == "movies" {
		return moviePool
	}
	return bookPool
}

// FallbackItems returns up to n pool items for the mode's primary genre
// that are not already used, for topping up short selections.
func FallbackItems(m *quiz.Mode, primary scoring.Category, used map[string]bool, n int, rng *rand.Rand) []Item {
	pool := poolForMode(m)
	items := make([]Item, len(pool[primary]))
	copy(items, pool[primary])
	rng.Shuffle(len(items), func(a, b int) {
		items[a], items[b] = items[b], items[a]
	})

	var out []Item
	for _, it := range items {
		if len(out) == n {
			break
		}
		it.Category = primary
		if used[it.NaturalKey()] {
			continue
		}
		out = append(out, it)
	}
	return out
}
