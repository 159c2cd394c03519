package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for focal",
	Long:  `Display detailed help for all focal commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███████╗ ██████╗  ██████╗ █████╗ ██╗
██╔════╝██╔═══██╗██╔════╝██╔══██╗██║
█████╗  ██║   ██║██║     ███████║██║
██╔══╝  ██║   ██║██║     ██╔══██║██║
██║     ╚██████╔╝╚██████╗██║  ██║███████╗
╚═╝      ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝

focal - terminal focus session tracker

COMMANDS:

  project add <name>      Register a project to focus on
    -d, --description     Short project description
  project ls              List projects
    --all                 Include archived projects
  project archive <ref>   Archive a project (by ID or name)

  start <project>         Start a focus session
    --goal                Session goal: 25, 25m, 1h, 1h30m (default 25)
    --no-ui               Record the start without the live view

    Live view keys:
      p             Pause / resume
      d             Record a drift (what pulled you away)
      r             Return from the open drift
      x             Log a distraction (pick 1-5)
      +             Extend by 5 minutes
      e/s           End the session
      esc/q         Detach, session keeps running

  status                  Show the current session (and any open drift)
  pause / resume          Freeze / unfreeze the countdown
  extend <minutes>        Push the target end forward (5-60m, active only)
  end                     Finish the session and compute its focus score
  cancel                  Abandon the session without a score

  drift <context>         Record a context switch away from the project
    -m, --message         Optional note
  return                  Resolve the open drift
  distract <type>         Log a distraction: phone, social_media,
                          conversation, snack, other

  summary [id]            Score, drifts and full timeline (latest by default)
  history                 Recent sessions
    -n, --limit           Number of sessions to show (default 10)

  help                    Show this help

Use --config to point at an alternative config file (default ~/.focal/config.yaml).

`)
}
