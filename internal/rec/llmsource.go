package rec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daye-lim/shelfmate/internal/llm"
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// LLMSource asks the configured model for candidates, demanding strict
// JSON against a closed genre set. Any failure — network, schema, too
// few distinct titles — is an error the pipeline converts into a
// fallback, never a visible crash.
type LLMSource struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLLMSource builds an LLM-backed candidate source.
func NewLLMSource(provider llm.Provider) *LLMSource {
	return &LLMSource{
		provider:    provider,
		maxTokens:   1024,
		temperature: 0.6,
	}
}

func (s *LLMSource) Name() string { return "llm" }

// recsOutput is the raw LLM response before validation.
type recsOutput struct {
	Recommendations []struct {
		Title   string `json:"title"`
		Creator string `json:"creator"`
		Genre   string `json:"genre"`
	} `json:"recommendations"`
}

func (s *LLMSource) Candidates(ctx context.Context, p *Profile) ([]Item, error) {
	ctx = llm.WithPurpose(ctx, p.Mode.Name+"-recs")

	req := llm.Request{
		System: systemPrompt(p.Mode),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(p)},
		},
		Schema:      recsSchema(p.Mode),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM candidates: %w", err)
	}

	var raw recsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse LLM candidates: %w", err)
	}

	items := cleanLLMItems(raw, p)
	if len(items) < p.N() {
		return nil, fmt.Errorf("LLM returned %d distinct candidates, need %d", len(items), p.N())
	}
	return items, nil
}

// cleanLLMItems validates genres against the closed set (substituting
// the primary focus genre for anything else) and deduplicates by title,
// case- and space-insensitive.
func cleanLLMItems(raw recsOutput, p *Profile) []Item {
	valid := make(map[scoring.Category]bool, len(p.Mode.Scheme.Categories))
	for _, c := range p.Mode.Scheme.Categories {
		valid[c] = true
	}
	fallbackGenre := p.TopGenres[0]

	var items []Item
	seen := make(map[string]bool)
	for _, r := range raw.Recommendations {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		key := squash(title)
		if seen[key] {
			continue
		}
		seen[key] = true

		genre := scoring.Category(strings.TrimSpace(r.Genre))
		if !valid[genre] {
			genre = fallbackGenre
		}

		items = append(items, Item{
			Title:    title,
			Creator:  strings.TrimSpace(r.Creator),
			Category: genre,
		})
	}
	return items
}

func systemPrompt(m *quiz.Mode) string {
	genres := make([]string, len(m.Scheme.Categories))
	for i, c := range m.Scheme.Categories {
		genres[i] = string(c)
	}
	kind, creator := "books", "author"
	if m.Name == "movies" {
		kind, creator = "movies", "director"
	}

	return fmt.Sprintf(`You are a thoughtful %s curator.
Recommend real, well-known %s that match the user's quiz answers (taste plus current need).

Rules:
- Every recommendation must actually exist. Never invent titles.
- "genre" must be exactly one of: %s.
- Reflect the focus genres first, but weigh the situational needs too.
- Prefer accessible picks over obscure ones.
- Give each pick a distinct title; no duplicates.
- The "creator" field is the %s (empty string if unknown).
- Output only the JSON object described by the schema.`,
		kind, kind, strings.Join(genres, ", "), creator)
}

func buildUserMessage(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommendations wanted: %d\n", p.N())
	fmt.Fprintf(&b, "Focus genres: %s", joinCategories(p.TopGenres))
	if p.MixB > 0 {
		fmt.Fprintf(&b, " (blend %d/%d)", p.MixA, p.MixB)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Current needs: %s\n", joinCategories(p.TopTags))

	b.WriteString("\nThe user's answers:\n")
	for _, q := range p.Mode.Questions {
		text := p.Answers.OptionText(p.Mode, q.ID)
		if text != "" {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func joinCategories(cs []scoring.Category) string {
	if len(cs) == 0 {
		return "none"
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}

// recsSchema is the strict-JSON schema for candidate generation.
func recsSchema(m *quiz.Mode) *llm.Schema {
	genres := make([]any, len(m.Scheme.Categories))
	for i, c := range m.Scheme.Categories {
		genres[i] = string(c)
	}

	return &llm.Schema{
		Name:        m.Name + "-recommendations",
		Description: "Ranked recommendations matching the user's quiz profile",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recommendations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"title": map[string]any{
								"type":        "string",
								"description": "Exact published title",
							},
							"creator": map[string]any{
								"type":        "string",
								"description": "Author or director; empty string if unknown",
							},
							"genre": map[string]any{
								"type": "string",
								"enum": genres,
							},
						},
						"required":             []any{"title", "creator", "genre"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"recommendations"},
			"additionalProperties": false,
		},
	}
}
