package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okhv/focal/internal/db"
	"github.com/okhv/focal/internal/models"
	"github.com/okhv/focal/internal/parser"
	"github.com/okhv/focal/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <project>",
	Short: "Start a focus session on a project",
	Long: `Start a timed focus session. Opens the interactive session view by
default, use --no-ui to just record the start.

Examples:
  focal start website            # 25 minute session with live view
  focal start website --goal 1h  # custom goal (25, 25m, 1h, 1h30m)
  focal start 3 --no-ui          # by project ID, no UI`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		goalFlag, _ := cmd.Flags().GetString("goal")
		goalMinutes, err := parser.ParseMinutes(goalFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		project, err := db.ResolveProject(gdb, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := engine.Start(project.ID, goalMinutes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Focus session #%d started on %s\n", session.ID, project.Name)
			fmt.Printf("Goal: %s, ends at %s\n", parser.FormatMinutes(goalMinutes), session.TargetEndAt.Format("15:04:05"))
			return
		}

		if err := tui.RunSessionTUI(engine, logger, session, cfgPath); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current focus session",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session, err := engine.Active()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active focus session")
			return
		}

		fmt.Printf("⏱️  Session #%d on %s (%s)\n", session.ID, session.Project.Name, session.Status)
		fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))
		fmt.Printf("Ends at:    %s\n", session.TargetEndAt.Format("15:04:05"))
		fmt.Printf("Drifts: %d · Distractions: %d\n", session.DriftCount, session.DistractionCount)

		if open, err := engine.OpenDrift(session.ID); err == nil && open != nil {
			away := time.Since(open.StartedAt).Truncate(time.Second)
			fmt.Printf("⚠️  Drifting to %q for %s — 'focal return' when you're back\n", open.Context, away)
		}
	}),
}

func init() {
	startCmd.Flags().String("goal", "25", "Session goal (25, 25m, 1h, 1h30m)")
	startCmd.Flags().Bool("no-ui", false, "Start the session without the interactive view")
}

// requireActive returns the running session or prints a hint and nil.
func requireActive() *models.Session {
	session, err := engine.Active()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	if session == nil {
		fmt.Println("No active focus session. Use 'focal start <project>' to begin one.")
		return nil
	}
	return session
}
