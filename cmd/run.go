package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/daye-lim/shelfmate/internal/app"
	"github.com/daye-lim/shelfmate/internal/books"
	"github.com/daye-lim/shelfmate/internal/config"
	"github.com/daye-lim/shelfmate/internal/enrich"
	"github.com/daye-lim/shelfmate/internal/llm"
	"github.com/daye-lim/shelfmate/internal/movies"
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/rec"
	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, wires both pipelines, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	events := st.Events()
	return app.Run(app.Options{
		Pipelines: buildPipelines(ctx, cfg, events),
		Events:    events,
	})
}

// buildPipelines wires the candidate sources for both modes. LLM and
// catalog sources are optional; the static pool is always present and
// always last, so the pipeline has a floor.
func buildPipelines(ctx context.Context, cfg config.Config, events store.EventRepo) map[string]*rec.Pipeline {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to catalog and built-in picks.")
		provider = nil
	}

	// Book sources: LLM first, then the catalog, then the built-ins.
	var bookSources []rec.Source
	if provider != nil {
		bookSources = append(bookSources, rec.NewLLMSource(provider))
	}
	bookClient := books.NewClient(cfg.Books, cfg.Timeout, cfg.Retry)
	bookSources = append(bookSources,
		rec.NewCatalogSource(bookClient, rng),
		rec.NewStaticSource(rng),
	)

	bookOpts := []rec.PipelineOption{
		rec.WithEnricher(enrich.New(bookClient,
			enrich.WithWorkers(cfg.Workers),
			enrich.WithSynopsisLimit(cfg.SynopsisBudget),
			enrich.WithLazySynopsis(cfg.LazySynopsis),
		)),
	}
	if events != nil {
		bookOpts = append(bookOpts, rec.WithEvents(events))
	}
	if provider != nil {
		bookOpts = append(bookOpts, rec.WithLLMPicker(rec.NewLLMSelector(provider)))
	}

	// Movie sources: the metadata API carries its own synopses and
	// posters, so no enrichment stage.
	var movieSources []rec.Source
	if provider != nil {
		movieSources = append(movieSources, rec.NewLLMSource(provider))
	}
	if cfg.Movies.APIKey != "" {
		movieClient := movies.NewClient(cfg.Movies, cfg.Timeout, cfg.Retry)
		movieSources = append(movieSources,
			rec.NewMediaSource(movieClient, cfg.Language, cfg.FallbackLanguage))
	}
	movieSources = append(movieSources, rec.NewStaticSource(rng))

	var movieOpts []rec.PipelineOption
	if events != nil {
		movieOpts = append(movieOpts, rec.WithEvents(events))
	}

	return map[string]*rec.Pipeline{
		"books":  rec.NewPipeline(quiz.Books(), bookSources, rng, bookOpts...),
		"movies": rec.NewPipeline(quiz.Movies(), movieSources, rng, movieOpts...),
	}
}
