package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daye-lim/shelfmate/internal/llm"
	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider and its usage",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which provider and model would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				fmt.Println("No LLM provider configured.")
				fmt.Println("Set SHELFMATE_LLM_PROVIDER and the matching API key, or")
				fmt.Println("export one of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY.")
				return nil
			}
			cfg = discovered
			fmt.Println("Provider discovered from ambient API keys:")
		}
		model := modelFor(cfg)
		fmt.Printf("Provider:  %s\n", cfg.Provider)
		fmt.Printf("Model:     %s\n", model)
		if cost := llm.LookupCost(model); cost != nil {
			fmt.Printf("Pricing:   $%.2f in / $%.2f out per 1M tokens\n",
				cost.InputPerMTok, cost.OutputPerMTok)
		}
		return nil
	},
}

func modelFor(cfg llm.Config) string {
	switch cfg.Provider {
	case "anthropic":
		return cfg.Anthropic.Model
	case "openai":
		return cfg.OpenAI.Model
	case "gemini":
		return cfg.Gemini.Model
	case "openrouter":
		return cfg.OpenRouter.Model
	default:
		return ""
	}
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a small request to verify the provider works",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// No event repo: a connectivity check should not pollute usage
		// stats.
		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		started := time.Now()
		resp, err := provider.Generate(llm.WithPurpose(ctx, "connectivity-test"), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		fmt.Printf("Model:    %s\n", resp.Model)
		fmt.Printf("Latency:  %s\n", time.Since(started).Round(time.Millisecond))
		fmt.Printf("Tokens:   %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Printf("Response: %s\n", strings.TrimSpace(string(resp.Content)))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		modelUsage, err := s.Events().LLMUsageByModel(context.Background())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(modelUsage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage and Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-32s  %6s  %6s  %10s  %10s  %9s\n",
			"Model", "Calls", "Fails", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 80))

		var totalCost float64
		var unknownModels []string
		for _, mu := range modelUsage {
			cost := llm.LookupCost(mu.Model)
			if cost == nil {
				unknownModels = append(unknownModels, mu.Model)
				fmt.Printf("%-32s  %6d  %6d  %10d  %10d  %9s\n",
					truncate(mu.Model, 32), mu.Calls, mu.Failures, mu.InputTokens, mu.OutputTokens, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			fmt.Printf("%-32s  %6d  %6d  %10d  %10d  %9s\n",
				truncate(mu.Model, 32), mu.Calls, mu.Failures, mu.InputTokens, mu.OutputTokens, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 80))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %6s  %10s  %10s  %9s\n",
			label, "", "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmTestCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
