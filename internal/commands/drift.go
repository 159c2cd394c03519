package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var driftCmd = &cobra.Command{
	Use:   "drift <context>",
	Short: "Record a context switch away from the tracked project",
	Long: `Record that you drifted to something else. The context can be
another project's name, a known pull like "email" or "slack", or any label.
Switching within the tracked project is not a drift and is ignored, as is a
drift signalled while an earlier one is still unresolved.

Examples:
  focal drift email
  focal drift side-project -m "new idea for the parser"`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}

		note, _ := cmd.Flags().GetString("message")
		entry, err := engine.DetectDrift(session.ID, args[0], note)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if entry == nil {
			fmt.Println("Not recorded as drift (same context, unresolved drift, or session not active).")
			return
		}
		fmt.Printf("⚠️  Drift to %q recorded (%s). Use 'focal return' when you're back.\n", entry.Context, entry.Type)
	}),
}

var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Resolve the open drift and get back on track",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}

		note, _ := cmd.Flags().GetString("message")
		entry, err := engine.ResolveDrift(session.ID, note)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Back on track after %dm away from %s\n", entry.DurationMinutes, session.Project.Name)
	}),
}

func init() {
	driftCmd.Flags().StringP("message", "m", "", "Optional note about the drift")
	returnCmd.Flags().StringP("message", "m", "", "Optional note about the drift")
}
