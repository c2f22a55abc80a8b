package explain

import (
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

type tables struct {
	templates     []string
	genreEvidence map[scoring.Category][]string
	tagEvidence   map[scoring.Category][]string
	personas      []string
	flavors       []string
}

func tablesFor(mode string) tables {
	if mode == "movies" {
		return movieTables
	}
	return bookTables
}

var bookTables = tables{
	templates: []string{
		"{title} stood out because {g_ev}, and it lands well when {need}.",
		"For {persona}, {title} is {flavor} — {g_ev}.",
		"Readers reach for {title} when {need}; {g_ev}.",
		"{title} earns its spot: {g_ev}. A natural fit when {need}.",
		"A {flavor} pick for {persona}: {title}, because {g_ev}.",
	},
	genreEvidence: map[scoring.Category][]string{
		quiz.GenreGrowth: {
			"it turns vague ambition into concrete next steps",
			"its advice survives contact with a real Monday morning",
			"it treats progress as a system, not a mood",
		},
		quiz.GenrePhilosophy: {
			"it asks the questions you have been circling",
			"it makes old ideas feel urgently personal",
			"it gives your quieter thoughts better vocabulary",
		},
		quiz.GenreScience: {
			"it makes the mechanics of the world feel like a story",
			"it rewards curiosity with real explanations",
			"it changes what you notice on an ordinary walk",
		},
		quiz.GenreSociety: {
			"it connects headlines to the forces underneath them",
			"it explains why the world is arranged the way it is",
			"it turns abstract systems into people and places",
		},
		quiz.GenreFiction: {
			"its characters stay with you after the last page",
			"it offers a whole other life to step into",
			"it says quietly what essays shout",
		},
	},
	tagEvidence: map[scoring.Category][]string{
		quiz.TagMotivation: {
			"you want a push to get moving",
			"you are ready to start something",
			"you need momentum more than comfort",
		},
		quiz.TagComfort: {
			"you want something warm to come home to",
			"the day has asked a lot of you",
			"you need kindness more than challenge",
		},
		quiz.TagRest: {
			"your mind wants to slow down",
			"you are reading to exhale, not to achieve",
			"an unhurried evening is the whole plan",
		},
		quiz.TagCuriosity: {
			"your brain is hungry for something new",
			"you want to be surprised by an idea",
			"a good rabbit hole sounds perfect",
		},
	},
	personas: []string{
		"a reader rebuilding a habit",
		"someone between big projects",
		"a late-night chapter-or-two reader",
		"a commuter with twenty good minutes",
	},
	flavors: []string{
		"a steady companion",
		"an easy door into a big subject",
		"the kind of book you lend and never get back",
		"a slow burn that pays off",
	},
}

var movieTables = tables{
	templates: []string{
		"{title} made the cut because {g_ev}, and it plays best when {need}.",
		"For {persona}, {title} is {flavor} — {g_ev}.",
		"{title} is the pick when {need}; {g_ev}.",
		"Queue {title}: {g_ev}. Exactly right when {need}.",
		"A {flavor} choice for {persona}: {title}, because {g_ev}.",
	},
	genreEvidence: map[scoring.Category][]string{
		quiz.GenreAdventure: {
			"it moves, and keeps moving",
			"the set pieces actually earn their runtime",
			"it remembers that spectacle should be fun",
		},
		quiz.GenreDrama: {
			"its people feel real enough to argue about",
			"every scene carries weight",
			"it trusts silence as much as dialogue",
		},
		quiz.GenreSciFi: {
			"its big idea sticks around after the credits",
			"it builds a world worth getting lost in",
			"it uses the future to talk about now",
		},
		quiz.GenreDocu: {
			"it shows you a world you did not know existed",
			"the real footage beats any script",
			"it leaves you with better questions",
		},
		quiz.GenreComedy: {
			"the jokes land without trying too hard",
			"it is funny on rewatch, which is the real test",
			"its warmth outlasts its punchlines",
		},
	},
	tagEvidence: map[scoring.Category][]string{
		quiz.TagMotivation: {
			"you want to leave the couch ready to do something",
			"you need a story that charges you up",
		},
		quiz.TagComfort: {
			"you want a film that feels like a blanket",
			"the evening calls for something gentle",
		},
		quiz.TagRest: {
			"you want to watch without working for it",
			"your brain is clocked out for the night",
		},
		quiz.TagCuriosity: {
			"you are in the mood to see something new",
			"you want a film people will ask you about",
		},
	},
	personas: []string{
		"a one-film-a-week viewer",
		"someone scrolling past everything",
		"a Friday-night double-feature type",
		"a viewer who reads the reviews after",
	},
	flavors: []string{
		"a safe bet",
		"a crowd-pleaser with a brain",
		"the kind of film that ends the scroll",
		"a quiet standout",
	},
}
