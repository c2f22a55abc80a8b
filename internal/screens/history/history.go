package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/goccy/go-json"

	"github.com/daye-lim/shelfmate/internal/router"
	"github.com/daye-lim/shelfmate/internal/screen"
	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/daye-lim/shelfmate/internal/ui/layout"
	"github.com/daye-lim/shelfmate/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// itemView is the slice of a stored recommendation shown in the
// expanded session row.
type itemView struct {
	Title   string `json:"Title"`
	Creator string `json:"Creator"`
	Why     string `json:"Why"`
}

// HistoryScreen displays past quiz sessions and their picks.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummary
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.eventRepo.RecentSessions(context.Background(), 50)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.CreatedAt.Format("Jan 02, 2006 15:04")

		genres := strings.ReplaceAll(sess.TopGenres, ",", " + ")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s quiz  %s  via %s",
			prefix, dateStr, sess.Mode, genres, sess.Source)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Expanded row lists the stored picks.
		if s.expanded[i] {
			for _, line := range itemLines(sess.ItemsJSON) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func itemLines(itemsJSON string) []string {
	var items []itemView
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil || len(items) == 0 {
		return []string{"    (picks unavailable)"}
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		line := "    · " + it.Title
		if it.Creator != "" {
			line += " — " + it.Creator
		}
		lines = append(lines, line)
	}
	return lines
}
