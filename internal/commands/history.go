package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okhv/focal/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent focus sessions",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := engine.History(limit)
		if err != nil {
			fmt.Printf("Error fetching history: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions yet. Use 'focal start <project>' to begin one.")
			return
		}

		fmt.Printf("%-4s %-20s %-16s %-9s %-6s %-7s %-7s %s\n",
			"ID", "PROJECT", "STARTED", "DURATION", "DRIFT", "DISTR", "SCORE", "STATUS")
		fmt.Println(strings.Repeat("-", 84))

		for _, session := range sessions {
			project := session.Project.Name
			if len(project) > 18 {
				project = project[:15] + "..."
			}

			duration := "-"
			score := "-"
			if session.Terminal() {
				duration = fmt.Sprintf("%dm", session.ActualDurationMinutes)
			}
			if session.Status == models.StatusCompleted {
				score = fmt.Sprintf("%d", session.FocusScore)
			}

			fmt.Printf("%-4d %-20s %-16s %-9s %-6d %-7d %-7s %s\n",
				session.ID,
				project,
				session.StartedAt.Format("Jan 02 15:04"),
				duration,
				session.DriftCount,
				session.DistractionCount,
				score,
				session.Status)
		}
	}),
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show")
}
