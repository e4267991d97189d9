package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "its",
	Short: "Intelligent tutoring system for linear equations",
	Long: `ITS is a practice tutor for solving linear equations in one variable.

Run "its serve" to start the practice server, then "its" to open the
terminal client against it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ITS_DB env var)")

	rootCmd.Flags().String("server", envOr("ITS_SERVER_URL", "http://localhost:5000"), "Practice server URL")
	rootCmd.Flags().StringP("user", "u", envOr("ITS_USER", ""), "Sign in as this user without prompting")
	rootCmd.Flags().String("log-file", "", "Write client logs to this file")
	rootCmd.Flags().Duration("stats-interval", 0, "Background stats refresh period (default 30s)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ITS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
