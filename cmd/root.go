package cmd

import (
	"os"

	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shelfmate",
	Short: "Taste-quiz recommendations for books and movies",
	Long:  "Shelfmate — answer a short quiz in your terminal and get a curated set of book or movie picks, each with a reason.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SHELFMATE_DB env var)")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SHELFMATE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := os.Getenv("SHELFMATE_DB"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
