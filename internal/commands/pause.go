package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session, freezing the countdown",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}
		session, err := engine.Pause(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("▌▌ Session #%d paused. Resume with 'focal resume'.\n", session.ID)
	}),
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}
		session, err := engine.Resume(session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("▶ Session #%d resumed, ends at %s\n", session.ID, session.TargetEndAt.Format("15:04:05"))
	}),
}
