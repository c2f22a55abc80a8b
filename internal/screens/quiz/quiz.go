// Package quiz is the questionnaire screen: one question at a time,
// answered with a single-select picker, with a progress bar across the
// top. Completing the last question replaces this screen with the
// results screen so Esc from results returns home, not mid-quiz.
package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/rec"
	"github.com/daye-lim/shelfmate/internal/router"
	"github.com/daye-lim/shelfmate/internal/screen"
	"github.com/daye-lim/shelfmate/internal/screens/results"
	"github.com/daye-lim/shelfmate/internal/ui/components"
	"github.com/daye-lim/shelfmate/internal/ui/layout"
	"github.com/daye-lim/shelfmate/internal/ui/theme"
)

// QuizScreen walks the user through one mode's questions.
type QuizScreen struct {
	mode     *qz.Mode
	pipeline *rec.Pipeline
	answers  qz.AnswerSet
	current  int // index into mode.Questions
	picker   components.MultiChoice
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// NewBooks starts the book questionnaire.
func NewBooks(pipeline *rec.Pipeline) *QuizScreen {
	return newQuiz(qz.Books(), pipeline)
}

// NewMovies starts the movie questionnaire.
func NewMovies(pipeline *rec.Pipeline) *QuizScreen {
	return newQuiz(qz.Movies(), pipeline)
}

func newQuiz(mode *qz.Mode, pipeline *rec.Pipeline) *QuizScreen {
	s := &QuizScreen{
		mode:     mode,
		pipeline: pipeline,
		answers:  make(qz.AnswerSet, len(mode.Questions)),
	}
	s.picker = pickerFor(mode, 0)
	return s
}

func pickerFor(mode *qz.Mode, idx int) components.MultiChoice {
	q := mode.Questions[idx]
	return components.NewMultiChoice(q.Prompt, q.Options)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.mode.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
	if s.current > 0 {
		hints = append(hints, layout.KeyHint{Key: "Backspace", Description: "Previous"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "backspace" && s.current > 0 {
		s.current--
		s.picker = pickerFor(s.mode, s.current)
		return s, nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)

	if s.picker.Submitted {
		q := s.mode.Questions[s.current]
		s.answers[q.ID] = s.picker.ChosenIndex

		if s.current+1 < len(s.mode.Questions) {
			s.current++
			s.picker = pickerFor(s.mode, s.current)
			return s, cmd
		}

		// Last answer recorded; hand off to the results screen.
		resultScreen := results.New(s.mode, s.pipeline, s.answers)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: resultScreen}
		}
	}

	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	barWidth := width * 2 / 3
	if barWidth > 60 {
		barWidth = 60
	}
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.current+1, len(s.mode.Questions)),
		float64(s.current)/float64(len(s.mode.Questions)),
		false,
		barWidth,
	)

	card := theme.Card.Render(s.picker.View())

	content := progress.View() + "\n\n" + card

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
