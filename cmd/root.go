package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "flashquiz",
	Short:        "Flashcard drills in the terminal",
	Long:         "Flashquiz quizzes you on question sets until you know them, with no-fail, learn, random, and timed modes.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./flashquiz.yaml or $XDG_CONFIG_HOME/flashquiz/flashquiz.yaml)")
	rootCmd.PersistentFlags().String("sets-dir", "", "Directory holding question set files (overrides sets_dir)")
	rootCmd.PersistentFlags().Bool("archive", false, "Read and write sets in the SQLite archive instead of the sets directory")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite archive (overrides FLASHQUIZ_DB env var and archive_path)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the archive path using --db flag (highest priority),
// then the archive_path setting, then FLASHQUIZ_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
