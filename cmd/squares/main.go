// squares solves "Game About Squares" puzzles from the terminal.
//
// Usage:
//
//	squares <puzzle>            - Print a shortest solution
//	squares show <puzzle>       - Render the initial board
//	squares replay <puzzle>     - Solve, then step through the solution
//	squares list <dir>          - List the puzzles of a level pack
//	squares convert <puzzle>    - Rewrite a puzzle as YAML
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.squares/config.yaml)
//	--log-level <level> - debug, info, warn or error
//	--max-states <n>    - Explored state budget (0 = unlimited)
//	--timeout <dur>     - Search time budget (0s = unlimited)
//	--margin <n>        - Bounding-box pruning margin (-1 = off)
//	--color <mode>      - auto, always or never
//	--pack <dir>        - Treat <puzzle> as a level ID inside this directory
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squares/internal/solver"
)

// Exit statuses.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitAborted = 3
)

var (
	// Global flags
	flagConfig    string
	flagLogLevel  string
	flagMaxStates int
	flagTimeout   time.Duration
	flagMargin    int
	flagColor     string
	flagPack      string

	// Root flags
	flagSteps bool
)

// errUsage reports a command line that cannot be run.
var errUsage = errors.New("missing puzzle file")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, solver.ErrAborted):
		return exitAborted
	default:
		return exitFailure
	}
}

var rootCmd = &cobra.Command{
	Use:   "squares <puzzle>",
	Short: "Solve Game About Squares puzzles",
	Long: `squares finds the shortest sequence of moves that puts every colored
square on the goal of its color.

The solution is printed as the colors to move, in order. A puzzle that
cannot be solved prints "no solution".

Puzzle files use the text format (.sq, .squares, .txt) or YAML (.yaml, .yml):

  name First steps
  square red (0,0) >
  goal red (3,0)
  turn v (4,0)

Examples:
  squares levels/lvl01.sq
  squares levels/lvl01.sq --steps
  squares show levels/lvl02.sq
  squares replay levels/lvl02.sq
  squares list levels --solve
  squares --pack levels pack/push`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runSolve,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.IntVar(&flagMaxStates, "max-states", 0, "Explored state budget (0 = unlimited)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "Search time budget (0s = unlimited)")
	pf.IntVar(&flagMargin, "margin", -1, "Bounding-box pruning margin (-1 = off)")
	pf.StringVar(&flagColor, "color", "", "Color output: auto, always, never")
	pf.StringVar(&flagPack, "pack", "", "Level pack directory; <puzzle> is then a level ID")

	rootCmd.Flags().BoolVar(&flagSteps, "steps", false, "Print the board after every move")

	// Add subcommands
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(convertCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errUsage
	}

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

	out := cmd.OutOrStdout()
	if !res.Found {
		fmt.Fprintln(out, "no solution")
		return nil
	}
	fmt.Fprintln(out, strings.Join(res.Names, " "))

	if flagSteps {
		states := p.Facts.Replay(p.Initial, res.Actions)
		for i, s := range states {
			fmt.Fprintln(out)
			if i == 0 {
				fmt.Fprintln(out, "start")
			} else {
				fmt.Fprintf(out, "%d. %s\n", i, a.styler.Name(p.Facts.Colors, res.Actions[i-1]))
			}
			fmt.Fprintln(out, a.styler.Board(p, s))
		}
	}
	return nil
}
