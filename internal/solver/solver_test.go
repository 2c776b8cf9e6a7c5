package solver

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squares/internal/core"
)

// puzzle builds a puzzle from squares, goals and turns, registering colors in order.
func puzzle(names []string, squares []core.Square, goals []core.Goal, turns []core.Turn) *core.Puzzle {
	r := core.NewRegistry()
	for _, n := range names {
		r.Intern(n)
	}
	r.Freeze()
	return &core.Puzzle{
		Facts:   core.Facts{Goals: goals, Turns: turns, Colors: r},
		Initial: core.NewState(squares...),
	}
}

// straightLine: one square sliding right to a goal three cells away.
func straightLine() *core.Puzzle {
	return puzzle([]string{"red"},
		[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
		[]core.Goal{{Pos: core.P(3, 0), Color: 0}},
		nil)
}

// pushWin: moving red onto blue shoves blue onto its goal in a single action.
func pushWin() *core.Puzzle {
	return puzzle([]string{"red", "blue"},
		[]core.Square{
			{Pos: core.P(0, 1), Color: 0, Dir: core.DirUp},
			{Pos: core.P(0, 0), Color: 1, Dir: core.DirRight},
		},
		[]core.Goal{{Pos: core.P(0, 0), Color: 0}, {Pos: core.P(1, 0), Color: 1}},
		nil)
}

// facingPair: two squares heading at each other that must swap places.
func facingPair() *core.Puzzle {
	return puzzle([]string{"red", "blue"},
		[]core.Square{
			{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight},
			{Pos: core.P(3, 0), Color: 1, Dir: core.DirLeft},
		},
		[]core.Goal{{Pos: core.P(2, 0), Color: 0}, {Pos: core.P(1, 0), Color: 1}},
		nil)
}

// cornerTurn: a square that must use a turn tile to reach its goal.
func cornerTurn() *core.Puzzle {
	return puzzle([]string{"green"},
		[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
		[]core.Goal{{Pos: core.P(2, 2), Color: 0}},
		[]core.Turn{{Pos: core.P(2, 0), Dir: core.DirDown}})
}

// combined: facingPair on row 0 plus cornerTurn on row 5, three actors.
func combined() *core.Puzzle {
	return puzzle([]string{"red", "blue", "green"},
		[]core.Square{
			{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight},
			{Pos: core.P(3, 0), Color: 1, Dir: core.DirLeft},
			{Pos: core.P(0, 5), Color: 2, Dir: core.DirRight},
		},
		[]core.Goal{
			{Pos: core.P(2, 0), Color: 0},
			{Pos: core.P(1, 0), Color: 1},
			{Pos: core.P(2, 7), Color: 2},
		},
		[]core.Turn{{Pos: core.P(2, 5), Dir: core.DirDown}})
}

// shortestByDeepening finds the minimum number of actions by iterative
// deepening over the whole action tree, without any deduplication.
func shortestByDeepening(p *core.Puzzle, maxDepth int) int {
	actors := p.Initial.Colors()
	var reachable func(s core.State, depth int) bool
	reachable = func(s core.State, depth int) bool {
		if p.Facts.Won(s) {
			return true
		}
		if depth == 0 {
			return false
		}
		for _, a := range actors {
			if reachable(p.Facts.Action(s, a), depth-1) {
				return true
			}
		}
		return false
	}

	for d := 1; d <= maxDepth; d++ {
		for _, a := range actors {
			if reachable(p.Facts.Action(p.Initial, a), d-1) {
				return d
			}
		}
	}
	return -1
}

func TestSolveStraightLine(t *testing.T) {
	res, err := New(DefaultOptions()).Solve(straightLine())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected a solution")
	}

	want := []string{"red", "red", "red"}
	if !slices.Equal(res.Names, want) {
		t.Errorf("Names = %v, expected %v", res.Names, want)
	}
}

func TestSolveSingleAction(t *testing.T) {
	p := straightLine()
	p.Facts.Goals[0].Pos = core.P(1, 0)

	res, err := New(DefaultOptions()).Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !res.Found || !slices.Equal(res.Names, []string{"red"}) {
		t.Errorf("expected [red], got found=%v names=%v", res.Found, res.Names)
	}
}

func TestSolveWinByPush(t *testing.T) {
	res, err := New(DefaultOptions()).Solve(pushWin())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !slices.Equal(res.Names, []string{"red"}) {
		t.Errorf("expected [red], got %v", res.Names)
	}
}

func TestSolveFacingPair(t *testing.T) {
	res, err := New(DefaultOptions()).Solve(facingPair())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Moves() != 3 {
		t.Errorf("expected 3 moves, got %d (%v)", res.Moves(), res.Names)
	}
}

func TestSolveMinimal(t *testing.T) {
	fixtures := map[string]*core.Puzzle{
		"straight line": straightLine(),
		"push win":      pushWin(),
		"facing pair":   facingPair(),
		"corner turn":   cornerTurn(),
		"combined":      combined(),
	}

	for name, p := range fixtures {
		t.Run(name, func(t *testing.T) {
			want := shortestByDeepening(p, 8)
			if want < 0 {
				t.Fatal("fixture has no solution within 8 actions")
			}

			res, err := New(DefaultOptions()).Solve(p)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if !res.Found {
				t.Fatal("expected a solution")
			}
			if res.Moves() != want {
				t.Errorf("solution has %d moves, shortest is %d", res.Moves(), want)
			}
		})
	}
}

func TestSolvePathReplaysToWin(t *testing.T) {
	for _, p := range []*core.Puzzle{facingPair(), cornerTurn(), combined()} {
		res, err := New(DefaultOptions()).Solve(p)
		if err != nil || !res.Found {
			t.Fatalf("Solve() = %v, %v", res.Found, err)
		}

		states := p.Facts.Replay(p.Initial, res.Actions)
		if !p.Facts.Won(states[len(states)-1]) {
			t.Errorf("replaying %v does not win", res.Names)
		}
		for _, s := range states[:len(states)-1] {
			if p.Facts.Won(s) {
				t.Errorf("path %v passes a winning state before its end", res.Names)
			}
		}
	}
}

func TestSolveIdempotent(t *testing.T) {
	p := combined()
	s := New(DefaultOptions())

	first, err := s.Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	second, err := s.Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	if !slices.Equal(first.Actions, second.Actions) {
		t.Errorf("re-solving gave %v, first run gave %v", second.Names, first.Names)
	}
	if first.Explored != second.Explored {
		t.Errorf("explored %d then %d states", first.Explored, second.Explored)
	}
}

func TestSolveGoalWithoutSquare(t *testing.T) {
	p := puzzle([]string{"red", "blue"},
		[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
		[]core.Goal{{Pos: core.P(1, 0), Color: 0}, {Pos: core.P(5, 5), Color: 1}},
		nil)

	res, err := New(DefaultOptions()).Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Found {
		t.Errorf("expected no solution, got %v", res.Names)
	}
}

func TestSolveStrandedSquareExhausts(t *testing.T) {
	tests := []struct {
		name string
		p    *core.Puzzle
	}{
		{
			// The goal is behind the square, which can only move away from it.
			name: "goal behind",
			p: puzzle([]string{"red"},
				[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
				[]core.Goal{{Pos: core.P(-2, 0), Color: 0}},
				nil),
		},
		{
			// The turn sends the square down, away from a goal beside its row.
			name: "past the last turn",
			p: puzzle([]string{"red"},
				[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
				[]core.Goal{{Pos: core.P(-2, 0), Color: 0}},
				[]core.Turn{{Pos: core.P(3, 0), Dir: core.DirDown}}),
		},
		{
			// Pushing blue only ever moves it further from its goal.
			name: "pushed away",
			p: puzzle([]string{"red", "blue"},
				[]core.Square{
					{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight},
					{Pos: core.P(1, 0), Color: 1, Dir: core.DirRight},
				},
				[]core.Goal{{Pos: core.P(2, 0), Color: 0}, {Pos: core.P(1, 0), Color: 1}},
				nil),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No budgets: the search has to end on its own
			res, err := New(DefaultOptions()).Solve(tc.p)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if res.Found {
				t.Errorf("expected no solution, got %v", res.Names)
			}
		})
	}
}

func TestStranded(t *testing.T) {
	facts := &core.Facts{
		Goals: []core.Goal{{Pos: core.P(5, 0), Color: 0}},
		Turns: []core.Turn{{Pos: core.P(0, 3), Dir: core.DirRight}},
	}
	goals := goalsByColor(facts)

	tests := []struct {
		name string
		sq   core.Square
		want bool
	}{
		{"goal ahead", core.Square{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}, false},
		{"on the goal", core.Square{Pos: core.P(5, 0), Color: 0, Dir: core.DirUp}, false},
		{"goal behind", core.Square{Pos: core.P(6, 0), Color: 0, Dir: core.DirRight}, true},
		{"goal beside", core.Square{Pos: core.P(5, 1), Color: 0, Dir: core.DirDown}, true},
		{"turn ahead", core.Square{Pos: core.P(0, 1), Color: 0, Dir: core.DirDown}, false},
		{"turn behind", core.Square{Pos: core.P(0, 4), Color: 0, Dir: core.DirDown}, true},
		{"no goal", core.Square{Pos: core.P(9, 9), Color: 1, Dir: core.DirLeft}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stranded(facts, goals, core.NewState(tc.sq)); got != tc.want {
				t.Errorf("stranded() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSolveMarginPrunesToExhaustion(t *testing.T) {
	// Red and blue share a goal cell, so the puzzle has no solution. Green
	// has no goal and could wander right forever without the margin.
	p := puzzle([]string{"red", "blue", "green"},
		[]core.Square{
			{Pos: core.P(2, 0), Color: 0, Dir: core.DirRight},
			{Pos: core.P(0, 0), Color: 1, Dir: core.DirRight},
			{Pos: core.P(0, 5), Color: 2, Dir: core.DirRight},
		},
		[]core.Goal{{Pos: core.P(2, 0), Color: 0}, {Pos: core.P(2, 0), Color: 1}},
		nil)

	opts := DefaultOptions()
	opts.Margin = 0
	res, err := New(opts).Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Found {
		t.Errorf("expected no solution, got %v", res.Names)
	}
}

func TestSolveMarginKeepsNearbySolutions(t *testing.T) {
	opts := DefaultOptions()
	opts.Margin = 0

	res, err := New(opts).Solve(cornerTurn())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !res.Found || res.Moves() != 4 {
		t.Errorf("expected 4-move solution inside the box, got found=%v moves=%d", res.Found, res.Moves())
	}
}

// farAhead is solvable, but only after n moves.
func farAhead(n int) *core.Puzzle {
	return puzzle([]string{"red"},
		[]core.Square{{Pos: core.P(0, 0), Color: 0, Dir: core.DirRight}},
		[]core.Goal{{Pos: core.P(n, 0), Color: 0}},
		nil)
}

func TestSolveStateBudget(t *testing.T) {
	p := farAhead(1000)

	opts := DefaultOptions()
	opts.MaxStates = 50
	res, err := New(opts).Solve(p)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if res.Found {
		t.Error("aborted search should not report a solution")
	}
	if res.Explored != 51 {
		t.Errorf("expected abort on state 51, got %d", res.Explored)
	}
}

func TestSolveTimeout(t *testing.T) {
	p := farAhead(100_000)

	opts := DefaultOptions()
	opts.Timeout = time.Nanosecond
	_, err := New(opts).Solve(p)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSolveLogsStatistics(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.New(&buf)

	if _, err := New(opts).Solve(facingPair()); err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "solved") || !strings.Contains(out, "explored") {
		t.Errorf("expected solved/explored in log output, got %q", out)
	}
}

func TestReconstruct(t *testing.T) {
	// Discovery order:
	//   1: root --0--> A
	//   2: root --1--> B
	//   3: A    --1--> C
	//   4: C    --0--> D
	parents := []parentRecord{
		{parent: 0, action: 0},
		{parent: 0, action: 1},
		{parent: 1, action: 1},
		{parent: 3, action: 0},
	}

	got := reconstruct(parents, 4, 1)
	want := []core.Color{0, 1, 0, 1}
	if !slices.Equal(got, want) {
		t.Errorf("reconstruct() = %v, expected %v", got, want)
	}

	if got := reconstruct(parents, 2, 0); !slices.Equal(got, []core.Color{1, 0}) {
		t.Errorf("reconstruct() from B = %v", got)
	}
}
