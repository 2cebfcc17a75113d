package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/console"
	"github.com/abhisek/flashquiz/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play <set>",
	Short: "Quiz a set on the plain console, one answer per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ce, err := newCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer ce.Close()

		engine := ce.engine()
		if err := engine.Load(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		cfg := playConfig(cmd, ce.cfg.Session.SessionConfig())
		out := cmd.OutOrStdout()
		sum, err := console.Run(cmd.Context(), engine, cfg, cmd.InOrStdin(), out)
		if err != nil && !errors.Is(err, console.ErrQuit) {
			return err
		}
		console.PrintSummary(out, sum)
		return nil
	},
}

// playConfig starts from the configured defaults; flags set on the command
// line win.
func playConfig(cmd *cobra.Command, cfg session.Config) session.Config {
	flags := cmd.Flags()
	if flags.Changed("no-fail") {
		cfg.NoFail, _ = flags.GetBool("no-fail")
	}
	if flags.Changed("learn") {
		cfg.LearnMode, _ = flags.GetBool("learn")
	}
	if flags.Changed("random") {
		cfg.Randomize, _ = flags.GetBool("random")
	}
	if flags.Changed("timed") {
		cfg.Timed, _ = flags.GetBool("timed")
	}
	return cfg
}

func init() {
	playCmd.Flags().Bool("no-fail", false, "Restart the whole set after any miss")
	playCmd.Flags().Bool("learn", false, "Repeat missed questions until all are answered correctly")
	playCmd.Flags().Bool("random", false, "Shuffle the questions every pass")
	playCmd.Flags().Bool("timed", false, "Time the session")
}
