package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/deck"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List and edit question sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available sets with their question counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ce, err := newCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer ce.Close()

		sets, err := ce.src.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}
		printSets(cmd, ce.location, sets)
		return nil
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "show <set>",
	Short: "Print every question in a set with its index",
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
		out := cmd.OutOrStdout()
		for i, e := range engine.Entries() {
			fmt.Fprintf(out, "%4d  %s\n", i+1, e.String())
		}
		return nil
	},
}

var setsAddCmd = &cobra.Command{
	Use:   "add <set> <prompt> <answer>",
	Short: "Append a question, creating the set if needed",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ce, err := newCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer ce.Close()

		name := args[0]
		engine := ce.engine()
		if err := engine.Load(cmd.Context(), name); err != nil && !errors.Is(err, deck.ErrNotFound) {
			return fmt.Errorf("load %s: %w", name, err)
		}
		engine.AddQuestion(deck.Entry{Prompt: args[1], Answer: args[2]})
		if err := engine.Save(cmd.Context(), name); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d questions\n", name, engine.Len())
		return nil
	},
}

var setsDeleteCmd = &cobra.Command{
	Use:   "delete <set> <index>",
	Short: "Remove the question at a 1-based index, as shown by sets show",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}

		ce, err := newCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer ce.Close()

		engine := ce.engine()
		if err := engine.Load(cmd.Context(), name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		removed := ""
		if index >= 1 && index <= engine.Len() {
			removed = engine.Entries()[index-1].String()
		}
		if err := engine.DeleteQuestion(index - 1); err != nil {
			return err
		}
		if err := engine.Save(cmd.Context(), name); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", removed)
		return nil
	},
}

// printSets writes one line per set, flagging sets that could not be read.
func printSets(cmd *cobra.Command, location string, sets []deck.SetInfo) {
	out := cmd.OutOrStdout()
	if len(sets) == 0 {
		fmt.Fprintf(out, "No sets in %s\n", location)
		return
	}
	for _, s := range sets {
		if s.Entries < 0 {
			fmt.Fprintf(out, "%-32s unreadable\n", s.Name)
			continue
		}
		fmt.Fprintf(out, "%-32s %d\n", s.Name, s.Entries)
	}
}

func init() {
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
	setsCmd.AddCommand(setsAddCmd)
	setsCmd.AddCommand(setsDeleteCmd)
}
