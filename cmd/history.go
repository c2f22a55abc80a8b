package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/daye-lim/shelfmate/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		sessions, err := st.Events().RecentSessions(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-7s  %-24s  %-20s  %s\n",
			"ID", "Date", "Mode", "Genres", "Needs", "Source")
		fmt.Println(strings.Repeat("─", 92))
		for _, s := range sessions {
			fmt.Printf("%-5d  %-16s  %-7s  %-24s  %-20s  %s\n",
				s.ID,
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				s.Mode,
				truncate(s.TopGenres, 24),
				truncate(s.TopTags, 20),
				s.Source,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
