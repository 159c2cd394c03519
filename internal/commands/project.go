package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okhv/focal/internal/db"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage focus projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new project",
	Args:  cobra.MinimumNArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")
		project, err := db.CreateProject(gdb, strings.Join(args, " "), description)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Project %q registered - ID: %d\n", project.Name, project.ID)
	}),
}

var projectListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List projects",
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		includeArchived, _ := cmd.Flags().GetBool("all")
		projects, err := db.GetProjects(gdb, includeArchived)
		if err != nil {
			fmt.Printf("Error fetching projects: %v\n", err)
			return
		}

		if len(projects) == 0 {
			fmt.Println("No projects found. Use 'focal project add <name>' to create your first project.")
			return
		}

		fmt.Printf("%-4s %-25s %-10s %s\n", "ID", "NAME", "STATUS", "DESCRIPTION")
		fmt.Println(strings.Repeat("-", 70))
		for _, project := range projects {
			status := "active"
			if project.Archived {
				status = "archived"
			}
			name := project.Name
			if len(name) > 23 {
				name = name[:20] + "..."
			}
			fmt.Printf("%-4d %-25s %-10s %s\n", project.ID, name, status, project.Description)
		}
	}),
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <project>",
	Short: "Archive a project so new sessions cannot target it",
	Args:  cobra.ExactArgs(1),
	Run: withEngine(func(cmd *cobra.Command, args []string) {
		project, err := db.ArchiveProject(gdb, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("▪ Project %q archived\n", project.Name)
	}),
}

func init() {
	projectAddCmd.Flags().StringP("description", "d", "", "Short project description")
	projectListCmd.Flags().Bool("all", false, "Include archived projects")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectArchiveCmd)
}
