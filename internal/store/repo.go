package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionEventData records one completed quiz run.
type SessionEventData struct {
	SessionID string
	Mode      string // "books" or "movies"
	Answers   string // compact letter string, e.g. "ACEBDAE"
	TopGenres string // comma-joined
	TopTags   string
	Source    string // which candidate source produced the result
	ItemsJSON string // selected items as JSON
}

// LLMRequestEventData records one LLM API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SessionSummary is a session event as read back for history display.
type SessionSummary struct {
	ID        int
	CreatedAt time.Time
	Mode      string
	TopGenres string
	TopTags   string
	Source    string
	ItemsJSON string
}

// LLMModelUsage aggregates LLM telemetry per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and read access to the event log.
type EventRepo interface {
	AppendSession(ctx context.Context, data SessionEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// LLMUsageByModel aggregates call counts and token totals per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_events (session_id, mode, answers, top_genres, top_tags, source, items_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Mode, data.Answers, data.TopGenres, data.TopTags, data.Source, data.ItemsJSON,
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, mode, top_genres, top_tags, source, items_json
		FROM session_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var ts string
		if err := rows.Scan(&s.ID, &ts, &s.Mode, &s.TopGenres, &s.TopTags, &s.Source, &s.ItemsJSON); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", ts)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(1 - success), SUM(input_tokens), SUM(output_tokens)
		FROM llm_events GROUP BY model ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
