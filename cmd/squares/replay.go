package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/squares/internal/platform/tui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <puzzle>",
	Short: "Solve a puzzle and step through the solution",
	Long: `Solves the puzzle, then opens a viewer that shows the board after
each move of the solution.

Controls:
  Right/L    - Next move
  Left/H     - Previous move
  Space/P    - Play/pause
  Home/End   - First/last board
  Q/Esc      - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}

	res, err := a.solve(p)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "no solution")
		return nil
	}

	// Get terminal size early for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.Run(p, res.Actions, tui.Options{
		Styler:    a.styler,
		StepDelay: a.cfg.Render.StepDelay,
		Width:     width,
		Height:    height,
	})
}
