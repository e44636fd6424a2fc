package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drillq/drillq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "drillq",
	Short: "Situational defense drills for baseball and softball",
	Long: "drillq presents game situations to fielders and schedules them again\n" +
		"with spaced repetition, so the plays you miss come back sooner.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDrill(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRILLQ_DB)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a scenario catalog JSON file (default: built-in)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
