package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [session-id]",
	Short: "Show the full report for a session",
	Long: `Show a session's focus score, drift details and full event
timeline. A session that is still running is ended first, so the summary is
always computed against a finalized session. Without an argument the most
recent session is summarized.`,
	Args: cobra.MaximumNArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		sessionID, ok := resolveSummaryTarget(args)
		if !ok {
			return
		}

		summary, err := engine.Summary(sessionID)
		if err != nil {
			if focus.IsNotFound(err) {
				fmt.Printf("Session #%d not found. Use 'focal history' to list recent sessions.\n", sessionID)
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}

		printSummary(summary)
	}),
}

func resolveSummaryTarget(args []string) (uint, bool) {
	if len(args) == 1 {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid session ID '%s'\n", args[0])
			return 0, false
		}
		return uint(id), true
	}

	sessions, err := engine.History(1)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 0, false
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Use 'focal start <project>' to begin one.")
		return 0, false
	}
	return sessions[0].ID, true
}

func printSummary(summary *focus.SessionSummary) {
	session := summary.Session

	fmt.Printf("Session #%d · %s · %s\n", session.ID, session.Project.Name, session.Status)
	fmt.Printf("Started %s", session.StartedAt.Format("Jan 02 15:04:05"))
	if session.EndedAt != nil {
		fmt.Printf(" · ended %s", session.EndedAt.Format("15:04:05"))
	}
	fmt.Printf(" · goal %dm · actual %dm\n", session.GoalMinutes, session.ActualDurationMinutes)
	fmt.Println(strings.Repeat("-", 64))

	if session.Status == models.StatusCompleted {
		fmt.Printf("Focus score:  %d/100\n", summary.FocusScore)
	}
	fmt.Printf("Drifts:       %d\n", summary.TotalDrifts)
	fmt.Printf("Distractions: %d\n", summary.TotalDistractions)

	if len(summary.DriftDetails) > 0 {
		fmt.Println("\nDrifts:")
		for _, drift := range summary.DriftDetails {
			line := fmt.Sprintf("  %s  %-20s %-22s %dm",
				drift.StartedAt.Format("15:04:05"), drift.Type, drift.Context, drift.DurationMinutes)
			if drift.Note != "" {
				line += "  — " + drift.Note
			}
			fmt.Println(line)
		}
	}

	fmt.Println("\nTimeline:")
	fmt.Printf("  %-8s %-12s %s\n", "TIME", "EVENT", "DETAILS")
	for _, event := range summary.Timeline {
		fmt.Printf("  %-8s %-12s %s\n",
			event.At.Format("15:04:05"), event.Type, formatMetadata(event.Metadata))
	}
}

func formatMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+metadata[key])
	}
	return strings.Join(parts, " ")
}
