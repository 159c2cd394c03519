package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/db"
	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *zap.Logger
	gdb     *gorm.DB
	engine  *focus.Engine
)

var rootCmd = &cobra.Command{
	Use:   "focal",
	Short: "A terminal focus session tracker",
	Long: `focal tracks timed focus sessions against your projects.
Start a session, record drifts and distractions as they happen, take the
breaks it enforces, and get a focus score and full timeline at the end.`,
}

// initEngine loads config, logging and the database and panics on failure
func initEngine() {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err = logging.New(cfg.Logging)
	if err != nil {
		panic(err)
	}
	gdb, err = db.Open(cfg.Database.Path)
	if err != nil {
		panic(err)
	}
	engine = focus.New(gdb, cfg, logger)
}

// withEngine wraps a command function to bootstrap the engine first
func withEngine(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initEngine()
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("focal %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default ~/.focal/config.yaml)")

	// Add subcommands here
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(driftCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(distractCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(helpCmd)
}
