package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daye-lim/shelfmate/internal/rec"
	"github.com/daye-lim/shelfmate/internal/router"
	"github.com/daye-lim/shelfmate/internal/screen"
	"github.com/daye-lim/shelfmate/internal/screens/history"
	quizscreen "github.com/daye-lim/shelfmate/internal/screens/quiz"
	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/daye-lim/shelfmate/internal/ui/components"
	"github.com/daye-lim/shelfmate/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu         components.Menu
	sessionCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. pipelines maps mode name to its wired
// recommendation pipeline; events may be nil when the store is
// unavailable.
func New(pipelines map[string]*rec.Pipeline, events store.EventRepo) *HomeScreen {
	var sessionCount int
	if events != nil {
		if recent, err := events.RecentSessions(context.Background(), 100); err == nil {
			sessionCount = len(recent)
		}
	}

	items := []components.MenuItem{
		{Label: "BOOK QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.NewBooks(pipelines["books"])}
			}
		}},
		{Label: "MOVIE QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.NewMovies(pipelines["movies"])}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(events)}
			}
		}, Disabled: events == nil},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:         components.NewMenu(items),
		sessionCount: sessionCount,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Render("Shelfmate")
	subtitle := theme.Subtitle.Render("A short quiz. A shelf's worth of good picks.")
	sections = append(sections, title, subtitle, "")

	if h.sessionCount > 0 {
		stats := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d past sessions on record", h.sessionCount))
		sections = append(sections, stats, "")
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
