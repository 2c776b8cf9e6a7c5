package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squares/internal/core"
	"github.com/vovakirdan/squares/internal/levels"
	"github.com/vovakirdan/squares/internal/solver"
)

var (
	flagSolveAll bool
	flagIDsOnly  bool
)

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List the puzzles in a level pack",
	Long: `Shows every puzzle file found under a directory, recursively.
Files that fail to parse are skipped.

With --solve each puzzle is solved and the length of its shortest
solution is shown ("-" when there is none).

With --ids only the level IDs are printed, one per line, ready to be
passed back with --pack <dir>.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagSolveAll, "solve", false, "Solve every puzzle and show move counts")
	listCmd.Flags().BoolVar(&flagIDsOnly, "ids", false, "Print level IDs only")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	loader := levels.NewLoader(args[0])
	out := cmd.OutOrStdout()

	if flagIDsOnly {
		ids, err := loader.ListIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	lvls, err := loader.LoadAll()
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Fprintln(out, "No puzzles found.")
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	if flagSolveAll {
		fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, "ID", "Moves", "Title")
		fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, "--", "-----", "-----")
	} else {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	}

	// Print levels
	for _, l := range lvls {
		if !flagSolveAll {
			fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, l.ID, l.Title())
			continue
		}
		fmt.Fprintf(out, "  %-*s  %-7s  %s\n", maxIDLen, l.ID, a.moves(l), l.Title())
	}
	return nil
}

// moves solves a level for the listing and describes the outcome.
func (a *app) moves(l levels.Level) string {
	if err := core.Validate(l.Puzzle); err != nil {
		a.logger.Warn("skipping invalid puzzle", "id", l.ID, "err", err)
		return "invalid"
	}

	res, err := a.solve(l.Puzzle)
	switch {
	case errors.Is(err, solver.ErrAborted):
		return "aborted"
	case err != nil:
		return "error"
	case !res.Found:
		return "-"
	default:
		return strconv.Itoa(res.Moves())
	}
}
