package rec

import (
	"context"
	"fmt"
	"strconv"

	"github.com/daye-lim/shelfmate/internal/movies"
	"github.com/daye-lim/shelfmate/internal/scoring"
)

// MediaSource discovers movie candidates via the metadata API. It runs
// one discovery per focus genre so the pool mirrors the profile's mix,
// fills empty overviews from the fallback language, and resolves poster
// paths against the lazily-fetched image configuration.
type MediaSource struct {
	client       *movies.Client
	language     string
	fallbackLang string
	minVotes     int

	images movies.ImageConfig
}

func NewMediaSource(client *movies.Client, language, fallbackLang string) *MediaSource {
	return &MediaSource{
		client:       client,
		language:     language,
		fallbackLang: fallbackLang,
		minVotes:     200,
	}
}

func (s *MediaSource) Name() string { return "media" }

func (s *MediaSource) Candidates(ctx context.Context, p *Profile) ([]Item, error) {
	// Image configuration is optional: without it posters are simply
	// absent, which the presentation layer already tolerates.
	if s.images.BaseURL == "" {
		if cfg, err := s.client.Configuration(ctx); err == nil {
			s.images = cfg
		}
	}

	var (
		items   []Item
		lastErr error
		failed  int
	)
	seen := make(map[int]bool)
	for _, genre := range p.TopGenres {
		ids := movies.GenreIDsFor[string(genre)]
		if len(ids) == 0 {
			continue
		}
		found, err := s.client.Discover(ctx, movies.DiscoverQuery{
			GenreIDs:     ids,
			Language:     s.language,
			MinVoteCount: s.minVotes,
		})
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		for _, m := range found {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			items = append(items, s.movieItem(ctx, m, genre))
		}
	}

	if failed > 0 && len(items) == 0 && lastErr != nil {
		return nil, fmt.Errorf("movie discovery failed: %w", lastErr)
	}
	if len(items) == 0 {
		return nil, ErrEmptyPool
	}
	return items, nil
}

func (s *MediaSource) movieItem(ctx context.Context, m movies.Movie, genre scoring.Category) Item {
	overview := m.Overview
	if overview == "" && s.fallbackLang != "" {
		if alt, err := s.client.Overview(ctx, m.ID, s.fallbackLang); err == nil {
			overview = alt
		}
	}
	return Item{
		Title:    m.Title,
		Creator:  "",
		Category: genre,
		ID:       "movie:" + strconv.Itoa(m.ID),
		ImageURL: s.images.PosterURL(m.PosterPath),
		Synopsis: overview,
		Year:     m.Year,
	}
}
