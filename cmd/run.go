package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/app"
)

// runApp resolves the source, builds the engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ce, err := newCLIEnv(cmd)
	if err != nil {
		return err
	}
	defer ce.Close()

	return app.Run(app.Options{
		Engine:   ce.engine(),
		Source:   ce.src,
		Location: ce.location,
		Defaults: ce.cfg.Session.SessionConfig(),
		Logger:   ce.log,
	})
}
