// Package results runs the recommendation pipeline for a completed
// answer set and presents the picks. The pipeline runs asynchronously
// behind a spinner; a total failure renders an apology rather than an
// empty list.
package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/rec"
	"github.com/daye-lim/shelfmate/internal/screen"
	"github.com/daye-lim/shelfmate/internal/ui/components"
	"github.com/daye-lim/shelfmate/internal/ui/layout"
	"github.com/daye-lim/shelfmate/internal/ui/theme"
)

const runTimeout = 60 * time.Second

// resultMsg carries the pipeline outcome back into the update loop.
type resultMsg struct {
	result *rec.Result
	err    error
}

// retryMsg restarts the pipeline after a failed run.
type retryMsg struct{}

// ResultsScreen shows the recommendation set for one quiz run.
type ResultsScreen struct {
	mode     *quiz.Mode
	pipeline *rec.Pipeline
	answers  quiz.AnswerSet

	spinner spinner.Model
	loading bool
	result  *rec.Result
	err     error
	scroll  int
	retry   components.Button
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen that will run the pipeline on Init.
func New(mode *quiz.Mode, pipeline *rec.Pipeline, answers quiz.AnswerSet) *ResultsScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &ResultsScreen{
		mode:     mode,
		pipeline: pipeline,
		answers:  answers,
		spinner:  sp,
		loading:  true,
		retry: components.NewButton("Try again", true, func() tea.Cmd {
			return func() tea.Msg { return retryMsg{} }
		}),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.run())
}

func (s *ResultsScreen) run() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		res, err := s.pipeline.Run(ctx, s.answers)
		return resultMsg{result: res, err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return s.mode.Title + " — Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	if s.err != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		s.loading = false
		s.result = msg.result
		s.err = msg.err
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case retryMsg:
		s.loading = true
		s.err = nil
		s.result = nil
		return s, tea.Batch(s.spinner.Tick, s.run())

	case tea.KeyMsg:
		if !s.loading && s.err != nil {
			var cmd tea.Cmd
			s.retry, cmd = s.retry.Update(msg)
			return s, cmd
		}
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.loading {
		content := s.spinner.View() + " Curating your shelf..."
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	if s.err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.errorView())
	}
	return s.resultView(width, height)
}

func (s *ResultsScreen) errorView() string {
	var body string
	var incomplete *quiz.IncompleteError
	switch {
	case errors.As(s.err, &incomplete):
		body = incomplete.Error()
	case errors.Is(s.err, rec.ErrEmptyPool):
		body = "We couldn't put a shelf together right now.\nEvery source came up empty — please try again in a bit."
	default:
		body = "Something went wrong while gathering picks.\nPlease try again in a bit."
	}
	title := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("No recommendations")
	return title + "\n\n" + theme.Body.Render(body) + "\n\n" + s.retry.View()
}

func (s *ResultsScreen) resultView(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Your picks") + "\n")
	b.WriteString(theme.Subtitle.Render(s.profileLine()) + "\n\n")

	cardWidth := width - 8
	if cardWidth > 90 {
		cardWidth = 90
	}

	for i, r := range s.result.Items {
		b.WriteString(s.renderItem(i, r, cardWidth))
		b.WriteString("\n")
	}

	lines := strings.Split(b.String(), "\n")
	if s.scroll > len(lines)-1 {
		s.scroll = len(lines) - 1
	}
	visible := lines[s.scroll:]
	if len(visible) > height {
		visible = visible[:height]
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(visible, "\n"))
}

func (s *ResultsScreen) profileLine() string {
	genres := make([]string, len(s.result.TopGenres))
	for i, g := range s.result.TopGenres {
		genres[i] = string(g)
	}
	line := strings.Join(genres, " + ")
	if s.result.MixB > 0 {
		line += fmt.Sprintf(" (%d/%d)", s.result.MixA, s.result.MixB)
	}
	return line
}

func (s *ResultsScreen) renderItem(i int, r rec.Recommendation, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%d. %s", i+1, r.Title))

	var meta []string
	if r.Creator != "" {
		meta = append(meta, r.Creator)
	}
	if r.Year > 0 {
		meta = append(meta, fmt.Sprintf("%d", r.Year))
	}
	if r.Publisher != "" {
		meta = append(meta, r.Publisher)
	}
	metaLine := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(strings.Join(meta, " · "))

	why := theme.Body.Render(r.Why)

	var parts []string
	parts = append(parts, title)
	if metaLine != "" && len(meta) > 0 {
		parts = append(parts, metaLine)
	}
	parts = append(parts, "", why)

	if r.Synopsis != "" {
		parts = append(parts, "", theme.Hint.Render(r.Synopsis))
	}
	if r.Note != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("("+r.Note+")"))
	}

	return theme.Card.Width(width).Render(strings.Join(parts, "\n"))
}
