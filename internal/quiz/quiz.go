// Package quiz holds the static questionnaire model and the answer set
// collected from one user interaction.
package quiz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/daye-lim/shelfmate/internal/scoring"
)

// Question is one prompt with a fixed ordered list of options.
// Questions are immutable configuration, loaded at startup.
type Question struct {
	ID      int
	Prompt  string
	Options []string
}

// OptionLetter returns the display label for an option index: A, B, C...
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// Mode bundles a questionnaire with its scoring scheme and the number of
// recommendations it produces.
type Mode struct {
	Name      string
	Title     string
	Questions []Question
	Scheme    *scoring.Scheme

	// RecCount is the exact number of items a successful run returns.
	RecCount int
}

// Question returns the question with the given ID, or nil.
func (m *Mode) Question(id int) *Question {
	for i := range m.Questions {
		if m.Questions[i].ID == id {
			return &m.Questions[i]
		}
	}
	return nil
}

// AnswerSet maps question ID to the selected option index. Scoring
// requires a fully populated set; a partial set is a validation error,
// never a partial result.
type AnswerSet map[int]int

// OptionText returns the selected option's text for a question, or "".
func (a AnswerSet) OptionText(m *Mode, qid int) string {
	q := m.Question(qid)
	if q == nil {
		return ""
	}
	opt, ok := a[qid]
	if !ok || opt < 0 || opt >= len(q.Options) {
		return ""
	}
	return q.Options[opt]
}

// Letters renders the answer set as a compact letter string in question
// order, the inverse of ParseAnswers. Unanswered questions render "?".
func (a AnswerSet) Letters(m *Mode) string {
	var b strings.Builder
	for _, q := range m.Questions {
		opt, ok := a[q.ID]
		if !ok {
			b.WriteString("?")
			continue
		}
		b.WriteString(OptionLetter(opt))
	}
	return b.String()
}

// IncompleteError reports which questions are still unanswered.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	nums := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		nums[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("please answer every question (missing: %s)", strings.Join(nums, ", "))
}

// Validate checks that the answer set covers every question in the mode
// and that each selected index is in range. It returns an
// *IncompleteError listing every missing question, or nil.
func Validate(m *Mode, a AnswerSet) error {
	var missing []int
	for _, q := range m.Questions {
		opt, ok := a[q.ID]
		if !ok || opt < 0 || opt >= len(q.Options) {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// ParseAnswers converts a compact letter string ("ACEBDAB") into an
// AnswerSet for the mode. Used by the non-interactive recommend command.
func ParseAnswers(m *Mode, s string) (AnswerSet, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != len(m.Questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(m.Questions), len(s))
	}
	answers := make(AnswerSet, len(s))
	for i, r := range s {
		q := m.Questions[i]
		opt := int(r - 'A')
		if opt < 0 || opt >= len(q.Options) {
			return nil, fmt.Errorf("question %d: invalid answer %q", q.ID, string(r))
		}
		answers[q.ID] = opt
	}
	return answers, nil
}
