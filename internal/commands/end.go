package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var endCmd = &cobra.Command{
	Use:     "end",
	Aliases: []string{"stop"},
	Short:   "End the running session and compute its focus score",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}
		session, err := engine.End(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Session #%d on %s completed\n", session.ID, session.Project.Name)
		fmt.Printf("📊 Duration: %dm · drifts: %d · distractions: %d · focus score: %d/100\n",
			session.ActualDurationMinutes, session.DriftCount,
			session.DistractionCount, session.FocusScore)
		fmt.Printf("   Run 'focal summary %d' for the full timeline.\n", session.ID)
	}),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Abandon the running session without a score",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}
		session, err := engine.Cancel(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✖ Session #%d cancelled\n", session.ID)
	}),
}
