package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okhv/focal/internal/parser"
)

var extendCmd = &cobra.Command{
	Use:   "extend <minutes>",
	Short: "Push the session's target end time forward",
	Long: `Extend the running session by 5 to 60 minutes. Paused sessions
cannot be extended; resume first.

Examples:
  focal extend 15
  focal extend 30m`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		minutes, err := parser.ParseMinutes(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session := requireActive()
		if session == nil {
			return
		}

		session, err = engine.Extend(session.ID, minutes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏩ Session #%d extended by %s, now ends at %s\n",
			session.ID, parser.FormatMinutes(minutes), session.TargetEndAt.Format("15:04:05"))
	}),
}
