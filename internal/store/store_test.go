package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	for i := range 3 {
		err := repo.AppendSession(ctx, SessionEventData{
			SessionID: "s1",
			Mode:      "books",
			Answers:   "ACEBDAE",
			TopGenres: "growth",
			TopTags:   "rest",
			Source:    "static",
			ItemsJSON: `["Deep Work"]`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (limit)", len(got))
	}
	// Newest first.
	if got[0].ID <= got[1].ID {
		t.Errorf("expected descending IDs, got %d then %d", got[0].ID, got[1].ID)
	}
	if got[0].Mode != "books" || got[0].Source != "static" {
		t.Errorf("unexpected summary: %+v", got[0])
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "book-recs", InputTokens: 100, OutputTokens: 50, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "book-recs", InputTokens: 120, OutputTokens: 60, Success: false, ErrorMessage: "timeout"},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "selection", InputTokens: 10, OutputTokens: 5, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("len = %d, want 2", len(usage))
	}
	if usage[0].Model != "gpt-4o-mini" || usage[0].Calls != 2 || usage[0].Failures != 1 {
		t.Errorf("unexpected first row: %+v", usage[0])
	}
	if usage[0].InputTokens != 220 || usage[0].OutputTokens != 110 {
		t.Errorf("token sums wrong: %+v", usage[0])
	}
}
