package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/daye-lim/shelfmate/internal/config"
	"github.com/daye-lim/shelfmate/internal/quiz"
	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get recommendations without the TUI",
	Long: `Run the full recommendation pipeline from a compact answer string.

The answer string has one letter per question, in order. For example,
with the seven-question book quiz:

  shelfmate recommend --mode books --answers ACEBDAE`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("mode", "books", "Quiz mode: books or movies")
	recommendCmd.Flags().String("answers", "", "Compact answer string, one letter per question (required)")
	_ = recommendCmd.MarkFlagRequired("answers")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	modeVal, _ := cmd.Flags().GetString("mode")
	answersVal, _ := cmd.Flags().GetString("answers")

	var mode *quiz.Mode
	switch modeVal {
	case "books":
		mode = quiz.Books()
	case "movies":
		mode = quiz.Movies()
	default:
		return fmt.Errorf("invalid mode %q: must be books or movies", modeVal)
	}

	answers, err := quiz.ParseAnswers(mode, answersVal)
	if err != nil {
		return err
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The store is optional here; without it the run simply is not
	// recorded.
	var events store.EventRepo
	if dbPath, err := resolveDBPath(cmd); err == nil {
		if st, err := store.Open(dbPath); err == nil {
			defer st.Close()
			events = st.Events()
		}
	}

	ctx := context.Background()
	pipeline := buildPipelines(ctx, cfg, events)[mode.Name]

	res, err := pipeline.Run(ctx, answers)
	if err != nil {
		return err
	}

	genres := make([]string, len(res.TopGenres))
	for i, g := range res.TopGenres {
		genres[i] = string(g)
	}
	profile := strings.Join(genres, " + ")
	if res.MixB > 0 {
		profile += fmt.Sprintf(" (%d/%d)", res.MixA, res.MixB)
	}
	fmt.Printf("Profile: %s    source: %s\n\n", profile, res.Source)

	for i, r := range res.Items {
		fmt.Printf("%d. %s", i+1, r.Title)
		if r.Creator != "" {
			fmt.Printf(" — %s", r.Creator)
		}
		if r.Year > 0 {
			fmt.Printf(" (%d)", r.Year)
		}
		fmt.Println()
		fmt.Printf("   %s\n", r.Why)
		if r.Publisher != "" {
			fmt.Printf("   Publisher: %s\n", r.Publisher)
		}
		if r.Synopsis != "" {
			fmt.Printf("   %s\n", r.Synopsis)
		}
		if r.Note != "" {
			fmt.Printf("   (%s)\n", r.Note)
		}
		fmt.Println()
	}
	return nil
}
