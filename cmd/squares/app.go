package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/squares/internal/config"
	"github.com/vovakirdan/squares/internal/core"
	"github.com/vovakirdan/squares/internal/levels"
	"github.com/vovakirdan/squares/internal/render"
	"github.com/vovakirdan/squares/internal/solver"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    config.Config
	logger *log.Logger
	styler *render.Styler
}

// newApp loads the configuration, applies flag overrides and builds the
// logger and styler.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "squares",
		ReportTimestamp: cfg.Log.Timestamps,
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.SetLevel(level)

	renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
	switch {
	case !useColor(cfg.Render.Color, cmd.OutOrStdout()):
		renderer.SetColorProfile(termenv.Ascii)
	case renderer.ColorProfile() == termenv.Ascii:
		// Forced color on a pipe
		renderer.SetColorProfile(termenv.ANSI256)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		styler: render.NewStyler(renderer, render.ParsePalette(cfg.Render.Palette)),
	}, nil
}

// applyFlags overrides config values with flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("max-states") {
		cfg.Solver.MaxStates = flagMaxStates
	}
	if flags.Changed("timeout") {
		cfg.Solver.Timeout = flagTimeout
	}
	if flags.Changed("margin") {
		cfg.Solver.Margin = flagMargin
	}
	if flags.Changed("color") {
		mode, err := config.ParseColorMode(flagColor)
		if err != nil {
			return err
		}
		cfg.Render.Color = mode
	}
	return cfg.Validate()
}

// useColor decides whether styled output is written to w.
// In auto mode only terminals get colors.
func useColor(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := w.(*os.File)
	return ok && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd()))
}

// solverOptions converts the solver section of the config.
func (a *app) solverOptions() solver.Options {
	return solver.Options{
		MaxStates: a.cfg.Solver.MaxStates,
		Timeout:   a.cfg.Solver.Timeout,
		Margin:    a.cfg.Solver.Margin,
		Logger:    a.logger,
	}
}

// solve runs the solver and logs aborted searches.
func (a *app) solve(p *core.Puzzle) (solver.Result, error) {
	a.logger.Debug("solving", "puzzle", p.Name, "squares", len(p.Initial.Squares), "goals", len(p.Facts.Goals))

	res, err := solver.New(a.solverOptions()).Solve(p)
	if err != nil {
		a.logger.Warn("search aborted", "explored", res.Explored, "elapsed", res.Elapsed)
		return res, err
	}
	if !res.Found {
		a.logger.Info("no solution", "explored", res.Explored, "elapsed", res.Elapsed)
	}
	return res, nil
}

// openPuzzle parses the puzzle named on the command line: a file path, or a
// level ID inside the --pack directory.
func openPuzzle(arg string) (*core.Puzzle, error) {
	if flagPack == "" {
		return levels.LoadFile(arg)
	}
	lvl, err := levels.NewLoader(flagPack).LoadByID(arg)
	if err != nil {
		return nil, err
	}
	return lvl.Puzzle, nil
}

// loadPuzzle opens a puzzle and rejects puzzles that cannot be solved as given.
func loadPuzzle(arg string) (*core.Puzzle, error) {
	p, err := openPuzzle(arg)
	if err != nil {
		return nil, err
	}
	if err := core.Validate(p); err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return p, nil
}
