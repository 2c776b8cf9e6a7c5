package core

import "fmt"

// maxChain bounds the number of single-cell moves one action may trigger.
// Well-formed puzzles settle after a handful of pushes; only contrived turn
// tile loops can keep a chain alive, and those are treated as broken input.
const maxChain = 1 << 16

// Action applies one nudge of color c to s and returns the resulting state.
//
// Movement rules:
//  1. The square of color c moves one cell along its heading
//  2. If it lands on a turn tile it adopts the tile's direction
//  3. If a square of another color already sits on that cell, that square
//     moves next, one cell along its own heading, and the rules repeat
//  4. The chain stops as soon as a mover lands on a cell no other square holds
//
// s is not modified. Panics if no square of color c exists.
func (f *Facts) Action(s State, c Color) State {
	next := NewState(s.Squares...)
	i := next.Find(c)
	if i < 0 {
		panic(fmt.Sprintf("core: action for color %d with no square", int(c)))
	}

	for steps := 0; i >= 0; steps++ {
		if steps == maxChain {
			panic(fmt.Sprintf("core: push chain for color %d did not settle", int(c)))
		}

		mover := &next.Squares[i]
		mover.Pos = mover.Pos.Step(mover.Dir)
		if t, ok := f.TurnAt(mover.Pos); ok {
			mover.Dir = t.Dir
		}

		i = next.blocker(mover.Pos, mover.Color)
	}

	return next
}

// blocker returns the index of a square at p whose color differs from c, or -1.
func (s State) blocker(p Pos, c Color) int {
	for i, sq := range s.Squares {
		if sq.Pos == p && sq.Color != c {
			return i
		}
	}
	return -1
}

// Won reports whether every goal is covered by a square of the goal's color.
// Squares that are not on goals do not matter. With no goals this is
// trivially true, so callers must hand in complete puzzles.
func (f *Facts) Won(s State) bool {
	occupied := make(map[Pos]Color, len(s.Squares))
	for _, sq := range s.Squares {
		occupied[sq.Pos] = sq.Color
	}
	for _, g := range f.Goals {
		c, ok := occupied[g.Pos]
		if !ok || c != g.Color {
			return false
		}
	}
	return true
}

// Replay applies actions one after another starting from s.
// The returned slice holds s followed by the state after each action.
func (f *Facts) Replay(s State, actions []Color) []State {
	states := make([]State, 0, len(actions)+1)
	states = append(states, s)
	for _, c := range actions {
		s = f.Action(s, c)
		states = append(states, s)
	}
	return states
}
