package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/deck"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Copy sets between the sets directory and the SQLite archive",
}

var archiveImportCmd = &cobra.Command{
	Use:   "import <set>...",
	Short: "Copy sets from the sets directory into the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ce *cliEnv, archive deck.Source) error {
			return copySets(cmd, ce, ce.dir, archive, args)
		})
	},
}

var archiveExportCmd = &cobra.Command{
	Use:   "export <set>...",
	Short: "Copy sets from the archive into the sets directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ce *cliEnv, archive deck.Source) error {
			return copySets(cmd, ce, archive, ce.dir, args)
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sets stored in the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ce *cliEnv, archive deck.Source) error {
			sets, err := archive.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list archive: %w", err)
			}
			printSets(cmd, ce.location, sets)
			return nil
		})
	},
}

var archiveRemoveCmd = &cobra.Command{
	Use:   "remove <set>",
	Short: "Delete a set from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ce *cliEnv, _ deck.Source) error {
			if err := ce.store.Sets().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("remove %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		})
	},
}

// withArchive runs fn with the archive open, whether or not --archive was given.
func withArchive(cmd *cobra.Command, fn func(ce *cliEnv, archive deck.Source) error) error {
	ce, err := newCLIEnv(cmd)
	if err != nil {
		return err
	}
	defer ce.Close()

	if ce.store == nil {
		st, dbPath, err := openArchive(cmd, ce.cfg)
		if err != nil {
			return err
		}
		ce.store = st
		ce.location = dbPath
	}
	return fn(ce, ce.store.Sets())
}

// copySets copies each named set from one source to another, replacing any
// set of the same name at the destination.
func copySets(cmd *cobra.Command, ce *cliEnv, from, to deck.Source, names []string) error {
	ctx := cmd.Context()
	for _, name := range names {
		entries, err := from.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if err := to.Save(ctx, name, entries); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		ce.log.Info("set copied", zap.String("set", name), zap.Int("entries", len(entries)))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions\n", name, len(entries))
	}
	return nil
}

func init() {
	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRemoveCmd)
}
