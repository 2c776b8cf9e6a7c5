package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squares/internal/core"
)

var showCmd = &cobra.Command{
	Use:   "show <puzzle>",
	Short: "Render a puzzle's initial board",
	Long: `Draws the puzzle as it starts. With --pack the argument is a level ID
inside that directory instead of a file path.

Incomplete puzzles (no squares or no goals) are shown as a notice
instead of a board.

Legend:
  ○        empty goal
  ◓◒◐◑     square on a goal, flat side facing its heading
  △▽◁▷     empty turn tile
  ▲▼◀▶     square on a turn tile
  ⬒⬓◧◨     square`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Incomplete puzzles are still worth showing, so skip full validation
	p, err := openPuzzle(args[0])
	if err != nil {
		return err
	}
	if err := core.ValidateRange(p); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, p.Name)
	fmt.Fprintln(out, a.styler.Legend(p.Facts.Colors))
	fmt.Fprintln(out)
	fmt.Fprintln(out, a.styler.Board(p, p.Initial))
	return nil
}
