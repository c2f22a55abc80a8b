package quiz

import "github.com/daye-lim/shelfmate/internal/scoring"

// Book genres. The set is closed; every option maps into it.
const (
	GenreGrowth     scoring.Category = "growth"
	GenrePhilosophy scoring.Category = "philosophy"
	GenreScience    scoring.Category = "science"
	GenreSociety    scoring.Category = "society"
	GenreFiction    scoring.Category = "fiction"
)

// Situational tags, scored over the last three questions only.
const (
	TagMotivation scoring.Category = "motivation"
	TagComfort    scoring.Category = "comfort"
	TagRest       scoring.Category = "rest"
	TagCuriosity  scoring.Category = "curiosity"
)

// BookGenres is the closed genre set in fixed priority order.
var BookGenres = []scoring.Category{
	GenreGrowth, GenrePhilosophy, GenreScience, GenreSociety, GenreFiction,
}

// BookTags is the situational-tag vocabulary in fixed priority order.
var BookTags = []scoring.Category{
	TagMotivation, TagComfort, TagRest, TagCuriosity,
}

// Books returns the seven-question reading-taste quiz.
func Books() *Mode {
	return &Mode{
		Name:      "books",
		Title:     "Which book fits you?",
		Questions: bookQuestions,
		Scheme:    bookScheme(),
		RecCount:  3,
	}
}

var bookQuestions = []Question{
	{
		ID:     1,
		Prompt: "When you pick up a new book, what draws you in most?",
		Options: []string{
			"Advice I can act on right away",
			"Deep questions and insight about life",
			"The fun of learning new knowledge and skills",
			"A lens for understanding society and the times",
			"A story I can get emotionally lost in",
		},
	},
	{
		ID:     2,
		Prompt: "When a friend asks for a book recommendation, I usually suggest...",
		Options: []string{
			"Something practical that will actually help",
			"Something that will stretch their thinking",
			"Something packed with fascinating facts",
			"Something that explains how the world works",
			"Something that is simply a joy to read",
		},
	},
	{
		ID:     3,
		Prompt: "The most satisfying moment while reading is when I feel...",
		Options: []string{
			"\"I can apply this to my life right now\"",
			"\"my view of the world just got wider\"",
			"\"I learned something completely new\"",
			"\"now I understand this part of society or history\"",
			"\"I was fully absorbed and genuinely moved\"",
		},
	},
	{
		ID:     4,
		Prompt: "The topics I gravitate toward most often are...",
		Options: []string{
			"Growth, goals, and self-management",
			"Relationships and the meaning of life",
			"Future tech, science, and data",
			"Social issues and historical events",
			"Emotions, stories, and imagined worlds",
		},
	},
	{
		ID:     5,
		Prompt: "What I need most these days is...",
		Options: []string{
			"Fresh motivation and a sense of direction",
			"Insight that helps me sort out my feelings",
			"New curiosity to wake up my mind",
			"Perspective to understand reality and widen my view",
			"A story that comforts me and lets my feelings rest",
		},
	},
	{
		ID:     6,
		Prompt: "Lately I find myself reaching for a book because...",
		Options: []string{
			"I need to prepare for what's next and improve myself",
			"I want to untangle complicated emotions",
			"I want to dig into a new field",
			"I'm curious where society is heading",
			"I'm worn out and just want to rest",
		},
	},
	{
		ID:     7,
		Prompt: "Right now, I want a book to be...",
		Options: []string{
			"A compass that points at what to do next",
			"A conversation partner that organizes my thoughts",
			"A window onto a new world",
			"A map that makes sense of reality",
			"A resting place that soothes my mind",
		},
	},
}

// bookScheme builds the scoring tables: option letter maps one-to-one to
// a genre on every question; questions 5-7 additionally feed the
// situational tags, with the E options splitting across two tags.
func bookScheme() *scoring.Scheme {
	genre := make(map[int]map[int][]scoring.Weighted, len(bookQuestions))
	for _, q := range bookQuestions {
		byOpt := make(map[int][]scoring.Weighted, len(BookGenres))
		for i, g := range BookGenres {
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
		5: {
			0: one(TagMotivation),
			1: one(TagComfort),
			2: one(TagCuriosity),
			3: one(TagCuriosity),
			4: split(TagComfort, TagRest),
		},
		6: {
			0: one(TagMotivation),
			1: one(TagComfort),
			2: one(TagCuriosity),
			3: one(TagCuriosity),
			4: split(TagRest, TagComfort),
		},
		7: {
			0: one(TagMotivation),
			1: one(TagComfort),
			2: one(TagCuriosity),
			3: one(TagCuriosity),
			4: split(TagRest, TagComfort),
		},
	}

	return &scoring.Scheme{
		Categories: BookGenres,
		Tags:       BookTags,
		Genre:      genre,
		Situation:  situation,
	}
}
