package quiz

import "github.com/daye-lim/shelfmate/internal/scoring"

// Movie genres for movie-night mode.
const (
	GenreAdventure scoring.Category = "adventure"
	GenreDrama     scoring.Category = "drama"
	GenreSciFi     scoring.Category = "scifi"
	GenreDocu      scoring.Category = "documentary"
	GenreComedy    scoring.Category = "comedy"
)

// MovieGenres is the closed movie genre set in fixed priority order.
var MovieGenres = []scoring.Category{
	GenreAdventure, GenreDrama, GenreSciFi, GenreDocu, GenreComedy,
}

// Movies returns the five-question movie-night quiz. It reuses the book
// tag vocabulary: what the viewer needs tonight is the same signal.
func Movies() *Mode {
	return &Mode{
		Name:      "movies",
		Title:     "What should you watch tonight?",
		Questions: movieQuestions,
		Scheme:    movieScheme(),
		RecCount:  5,
	}
}

var movieQuestions = []Question{
	{
		ID:     1,
		Prompt: "The best movie nights end with me feeling...",
		Options: []string{
			"Pumped up and ready to take on anything",
			"Quietly moved, still thinking about the characters",
			"Amazed by an idea I'd never considered",
			"Like I finally understand something real",
			"Lighter, because I laughed the whole way through",
		},
	},
	{
		ID:     2,
		Prompt: "I'm most likely to pause a movie to...",
		Options: []string{
			"Cheer at a great action beat",
			"Sit with a line that hit close to home",
			"Look up whether the science checks out",
			"Fact-check whether it really happened",
			"Replay a joke for someone else",
		},
	},
	{
		ID:     3,
		Prompt: "My ideal protagonist is...",
		Options: []string{
			"An underdog who refuses to quit",
			"An ordinary person at a crossroads",
			"An explorer of strange new worlds",
			"A real figure history overlooked",
			"A lovable mess who keeps failing upward",
		},
	},
	{
		ID:     4,
		Prompt: "This week has mostly left me wanting...",
		Options: []string{
			"A push to get moving again",
			"Something that helps me process my feelings",
			"Something that sparks my curiosity",
			"Something that widens how I see the world",
			"Something easy that lets me switch off",
		},
	},
	{
		ID:     5,
		Prompt: "Tonight, the screen should be...",
		Options: []string{
			"A starting gun",
			"A mirror",
			"A telescope",
			"A window on the real world",
			"A hammock",
		},
	},
}

// movieScheme maps option letters to genres on every question; the last
// two questions carry the situational signal.
func movieScheme() *scoring.Scheme {
	genre := make(map[int]map[int][]scoring.Weighted, len(movieQuestions))
	for _, q := range movieQuestions {
		byOpt := make(map[int][]scoring.Weighted, len(MovieGenres))
		for i, g := range MovieGenres {
			byOpt[i] = []scoring.Weighted{{Category: g, Weight: 1}}
		}
		genre[q.ID] = byOpt
	}

	one := func(t scoring.Category) []scoring.Weighted {
		return []scoring.Weighted{{Category: t, Weight: 1}}
	}
	split := func(a, b scoring.Category) []scoring.Weighted {
		return []scoring.Weighted{{Category: a, Weight: 1}, {Category: b, Weight: 1}}
	}

	situation := map[int]map[int][]scoring.Weighted{
		4: {
			0: one(TagMotivation),
			1: one(TagComfort),
			2: one(TagCuriosity),
			3: one(TagCuriosity),
			4: split(TagRest, TagComfort),
		},
		5: {
			0: one(TagMotivation),
			1: one(TagComfort),
			2: one(TagCuriosity),
			3: one(TagCuriosity),
			4: split(TagRest, TagComfort),
		},
	}

	return &scoring.Scheme{
		Categories: MovieGenres,
		Tags:       BookTags,
		Genre:      genre,
		Situation:  situation,
	}
}
