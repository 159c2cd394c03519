package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var distractCmd = &cobra.Command{
	Use:   "distract <type>",
	Short: "Log a distraction against the running session",
	Long: `Log a self-reported distraction. Unlike drift, a distraction does
not open a period to resolve; it is a single counted fact.

Types: phone, social_media, conversation, snack, other

Examples:
  focal distract phone
  focal distract conversation -m "coworker question"`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		session := requireActive()
		if session == nil {
			return
		}

		note, _ := cmd.Flags().GetString("message")
		distraction, err := engine.LogDistraction(session.ID, args[0], note)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📵 Distraction (%s) logged on session #%d\n", distraction.Type, session.ID)
	}),
}

func init() {
	distractCmd.Flags().StringP("message", "m", "", "Optional note")
}
