package quiz

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateComplete(t *testing.T) {
	m := Books()
	answers := AnswerSet{}
	for _, q := range m.Questions {
		answers[q.ID] = 0
	}
	if err := Validate(m, answers); err != nil {
		t.Errorf("complete answer set should validate, got %v", err)
	}
}

func TestValidateListsEveryMissingQuestion(t *testing.T) {
	m := Books()
	answers := AnswerSet{1: 0, 3: 2, 5: 4}

	err := Validate(m, answers)
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	want := []int{2, 4, 6, 7}
	if len(inc.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", inc.Missing, want)
	}
	for i, id := range want {
		if inc.Missing[i] != id {
			t.Errorf("missing[%d] = %d, want %d", i, inc.Missing[i], id)
		}
	}
	if !strings.Contains(err.Error(), "2, 4, 6, 7") {
		t.Errorf("error should list missing question numbers, got %q", err.Error())
	}
}

func TestValidateRejectsOutOfRangeOption(t *testing.T) {
	m := Books()
	answers := AnswerSet{}
	for _, q := range m.Questions {
		answers[q.ID] = 0
	}
	answers[2] = 9

	err := Validate(m, answers)
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if len(inc.Missing) != 1 || inc.Missing[0] != 2 {
		t.Errorf("missing = %v, want [2]", inc.Missing)
	}
}

func TestParseAnswers(t *testing.T) {
	m := Books()
	answers, err := ParseAnswers(m, "acebDAE") // lowercase accepted
	if err != nil {
		t.Fatalf("ParseAnswers: %v", err)
	}
	if answers[1] != 0 || answers[3] != 4 || answers[7] != 4 {
		t.Errorf("unexpected parse: %v", answers)
	}

	if _, err := ParseAnswers(m, "ABC"); err == nil {
		t.Error("short answer string should fail")
	}
	if _, err := ParseAnswers(m, "ABCDEFZ"); err == nil {
		t.Error("out-of-range letter should fail")
	}
}

func TestModesAreWellFormed(t *testing.T) {
	for _, m := range []*Mode{Books(), Movies()} {
		t.Run(m.Name, func(t *testing.T) {
			if len(m.Questions) == 0 {
				t.Fatal("no questions")
			}
			for _, q := range m.Questions {
				if len(q.Options) != 5 {
					t.Errorf("question %d has %d options, want 5", q.ID, len(q.Options))
				}
				// Every option must map to at least one category.
				for i := range q.Options {
					if len(m.Scheme.Genre[q.ID][i]) == 0 {
						t.Errorf("question %d option %d maps to no category", q.ID, i)
					}
				}
			}
			if m.RecCount < 3 {
				t.Errorf("RecCount = %d", m.RecCount)
			}
		})
	}
}
