// Package solver finds shortest action sequences for squares puzzles.
//
// The search is a plain breadth-first walk over board states. Every state
// reached is remembered in a parent table by discovery order, so a winning
// path is rebuilt by following parent indices back to the root instead of
// carrying a full path in every queue entry.
//
// The board is an unbounded plane. States holding a square that has passed
// every turn tile on its way and is heading away from its goal are dropped,
// which makes most unsolvable puzzles run out of states instead of running
// forever.
package solver

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squares/internal/core"
)

// ErrAborted is returned when a search budget runs out before the search
// either finds a solution or proves there is none.
var ErrAborted = errors.New("solver: search aborted")

// timeCheckEvery is how many dequeues happen between clock reads.
const timeCheckEvery = 1024

// Options tune a search. The zero value searches without limits.
type Options struct {
	// MaxStates stops the search after this many dequeued states (0 = no limit).
	MaxStates int

	// Timeout stops the search after this much wall time (0 = no limit).
	Timeout time.Duration

	// Margin enables bounding-box pruning when >= 0: states with a square
	// further than Margin cells outside the box around goals, turns and the
	// initial squares are dropped. This can hide solutions that need to
	// wander far, so it is off unless asked for.
	Margin int

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns options with pruning disabled and no budgets.
func DefaultOptions() Options {
	return Options{Margin: -1}
}

// Result is the outcome of a completed search.
type Result struct {
	Found     bool          // Whether a solution exists
	Actions   []core.Color  // Winning actions, first to last
	Names     []string      // Actions translated to color labels
	Explored  int           // States taken off the queue
	Generated int           // States put on the queue
	Elapsed   time.Duration // Wall time spent searching
}

// Moves returns the number of actions in the solution.
func (r Result) Moves() int {
	return len(r.Actions)
}

// parentRecord links a discovered state to the state it came from.
// parent is the 1-based discovery index of that state, 0 for the root.
type parentRecord struct {
	parent int
	action core.Color
}

// Solver runs breadth-first searches with fixed options.
type Solver struct {
	opts   Options
	logger *log.Logger
}

// New creates a solver.
func New(opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{opts: opts, logger: logger}
}

// Solve searches for a shortest action sequence that wins p.
//
// A puzzle without a solution yields a Result with Found == false and a nil
// error. ErrAborted (wrapped) is returned only when a budget from Options
// ran out. p must be complete: with no goals every state counts as won.
func (s *Solver) Solve(p *core.Puzzle) (Result, error) {
	start := time.Now()
	facts := &p.Facts
	actors := p.Initial.Colors()

	if missing, ok := uncoverableGoal(p); ok {
		s.logger.Debug("goal color has no square", "color", facts.Colors.Name(missing))
		return Result{Elapsed: time.Since(start)}, nil
	}

	var area core.Bounds
	pruning := s.opts.Margin >= 0
	if pruning {
		area = facts.Bounds(p.Initial).Grow(s.opts.Margin)
	}
	goals := goalsByColor(facts)
	keep := func(st core.State) bool {
		if pruning && !inside(st, area) {
			return false
		}
		return !stranded(facts, goals, st)
	}

	var (
		parents []parentRecord
		queue   []core.State
		head    int
		visited = make(map[string]struct{})
	)

	for _, action := range actors {
		next := facts.Action(p.Initial, action)
		if facts.Won(next) {
			return s.finish(p, []core.Color{action}, 0, 1, start), nil
		}
		if !keep(next) {
			continue
		}
		parents = append(parents, parentRecord{parent: 0, action: action})
		queue = append(queue, next)
	}

	index := 0
	for head < len(queue) {
		parent := queue[head]
		queue[head] = core.State{}
		head++
		index++

		if err := s.checkBudget(index, start); err != nil {
			return Result{Explored: index, Generated: len(parents), Elapsed: time.Since(start)}, err
		}

		key := parent.Key()
		if _, seen := visited[key]; seen {
			continue
		}

		for _, action := range actors {
			next := facts.Action(parent, action)
			if facts.Won(next) {
				path := reconstruct(parents, index, action)
				return s.finish(p, path, index, len(parents)+1, start), nil
			}
			if !keep(next) {
				continue
			}
			if _, seen := visited[next.Key()]; seen {
				continue
			}
			parents = append(parents, parentRecord{parent: index, action: action})
			queue = append(queue, next)
		}

		visited[key] = struct{}{}
	}

	s.logger.Debug("search exhausted", "explored", index, "generated", len(parents))
	return Result{Explored: index, Generated: len(parents), Elapsed: time.Since(start)}, nil
}

// finish builds a successful result and reports search statistics.
func (s *Solver) finish(p *core.Puzzle, path []core.Color, explored, generated int, start time.Time) Result {
	r := Result{
		Found:     true,
		Actions:   path,
		Names:     p.Facts.Colors.Names(path),
		Explored:  explored,
		Generated: generated,
		Elapsed:   time.Since(start),
	}
	s.logger.Info("solved", "moves", len(path), "explored", explored, "elapsed", r.Elapsed)
	return r
}

// checkBudget returns ErrAborted once a configured limit is exceeded.
func (s *Solver) checkBudget(explored int, start time.Time) error {
	if s.opts.MaxStates > 0 && explored > s.opts.MaxStates {
		return fmt.Errorf("%w: state budget of %d exhausted", ErrAborted, s.opts.MaxStates)
	}
	if s.opts.Timeout > 0 && explored%timeCheckEvery == 0 && time.Since(start) > s.opts.Timeout {
		return fmt.Errorf("%w: timeout %s after %d states", ErrAborted, s.opts.Timeout, explored)
	}
	return nil
}

// reconstruct walks the parent table from the winning step back to the root.
// index is the discovery index of the state the last action was applied to.
func reconstruct(parents []parentRecord, index int, last core.Color) []core.Color {
	path := []core.Color{last}
	for index != 0 {
		rec := parents[index-1]
		path = append(path, rec.action)
		index = rec.parent
	}
	slices.Reverse(path)
	return path
}

// uncoverableGoal finds a goal whose color has no square.
// Colors are never created, so such a goal can never be covered.
func uncoverableGoal(p *core.Puzzle) (core.Color, bool) {
	for _, g := range p.Facts.Goals {
		if p.Initial.Find(g.Color) < 0 {
			return g.Color, true
		}
	}
	return 0, false
}

// goalsByColor groups goal positions by the color that must cover them.
func goalsByColor(f *core.Facts) map[core.Color][]core.Pos {
	goals := make(map[core.Color][]core.Pos, len(f.Goals))
	for _, g := range f.Goals {
		goals[g.Color] = append(goals[g.Color], g.Pos)
	}
	return goals
}

// stranded reports whether some square of s can never cover one of its goals.
//
// A square only ever moves along its own heading, whether it acts or gets
// pushed, and only a turn tile changes that heading. With no turn tile ahead
// of it, a square can reach nothing but the cells on its ray, so a goal that
// is neither under it nor on that ray is out of reach for good.
func stranded(f *core.Facts, goals map[core.Color][]core.Pos, s core.State) bool {
	for _, sq := range s.Squares {
		targets := goals[sq.Color]
		if len(targets) == 0 {
			continue
		}
		if slices.ContainsFunc(f.Turns, func(t core.Turn) bool { return ahead(sq, t.Pos) }) {
			continue
		}
		for _, g := range targets {
			if g != sq.Pos && !ahead(sq, g) {
				return true
			}
		}
	}
	return false
}

// ahead reports whether q lies strictly in front of sq along its heading.
func ahead(sq core.Square, q core.Pos) bool {
	dx, dy := sq.Dir.Delta()
	if dx != 0 {
		return q.Y == sq.Pos.Y && (q.X-sq.Pos.X)*dx > 0
	}
	return q.X == sq.Pos.X && (q.Y-sq.Pos.Y)*dy > 0
}

// inside reports whether every square of s lies in area.
func inside(s core.State, area core.Bounds) bool {
	for _, sq := range s.Squares {
		if !area.Contains(sq.Pos) {
			return false
		}
	}
	return true
}
