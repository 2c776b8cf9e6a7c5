package core

import (
	"encoding/binary"
	"slices"
)

// Goal is a tile that must end up covered by the square of its color.
type Goal struct {
	Pos   Pos
	Color Color
}

// Turn is a tile that re-heads any square arriving on it.
type Turn struct {
	Pos Pos
	Dir Dir
}

// Square is a movable, directed piece. Exactly one square exists per color.
type Square struct {
	Pos   Pos
	Color Color
	Dir   Dir
}

// State is one configuration of the board: where every square sits and where
// it is heading. Squares are kept sorted by color so that two states holding
// the same squares are identical regardless of the order they were built in.
//
// A State passed to the simulation or the solver is never modified; every
// operation that changes squares returns a new State.
type State struct {
	Squares []Square
}

// NewState builds a state from squares in any order.
func NewState(squares ...Square) State {
	sq := slices.Clone(squares)
	slices.SortFunc(sq, byColor)
	return State{Squares: sq}
}

// Find returns the index of the square with color c, or -1.
// States built with NewState are searched by bisection; any other order
// falls back to a scan.
func (s State) Find(c Color) int {
	if !s.canonical() {
		return slices.IndexFunc(s.Squares, func(sq Square) bool { return sq.Color == c })
	}
	i, ok := slices.BinarySearchFunc(s.Squares, c, func(sq Square, c Color) int {
		return int(sq.Color) - int(c)
	})
	if !ok {
		return -1
	}
	return i
}

// canonical reports whether the squares are in ascending color order.
func (s State) canonical() bool {
	return slices.IsSortedFunc(s.Squares, byColor)
}

func byColor(a, b Square) int {
	return int(a.Color) - int(b.Color)
}

// Colors returns the colors of all squares in ascending order.
func (s State) Colors() []Color {
	out := make([]Color, len(s.Squares))
	for i, sq := range s.Squares {
		out[i] = sq.Color
	}
	return out
}

// Key returns a compact canonical encoding of the state, suitable as a map key.
// Two states have the same key iff they hold the same set of squares,
// whatever order the squares slice is in.
func (s State) Key() string {
	squares := s.Squares
	if !s.canonical() {
		squares = NewState(squares...).Squares
	}

	buf := make([]byte, 0, len(squares)*5)
	for _, sq := range squares {
		buf = binary.AppendUvarint(buf, uint64(sq.Color))
		buf = binary.AppendVarint(buf, int64(sq.Pos.X))
		buf = binary.AppendVarint(buf, int64(sq.Pos.Y))
		buf = append(buf, byte(sq.Dir))
	}
	return string(buf)
}

// Equal reports whether two states hold the same squares.
func (s State) Equal(other State) bool {
	return s.Key() == other.Key()
}

// Facts are the parts of a puzzle that never change while solving it.
type Facts struct {
	Goals  []Goal
	Turns  []Turn
	Colors *Registry
}

// TurnAt returns the turn tile at p, if any.
func (f *Facts) TurnAt(p Pos) (Turn, bool) {
	for _, t := range f.Turns {
		if t.Pos == p {
			return t, true
		}
	}
	return Turn{}, false
}

// GoalAt returns the goal tile at p, if any.
func (f *Facts) GoalAt(p Pos) (Goal, bool) {
	for _, g := range f.Goals {
		if g.Pos == p {
			return g, true
		}
	}
	return Goal{}, false
}

// Bounds returns the bounding box of all goals, turns and the squares of s.
func (f *Facts) Bounds(s State) Bounds {
	var b Bounds
	for _, sq := range s.Squares {
		b.Extend(sq.Pos)
	}
	for _, g := range f.Goals {
		b.Extend(g.Pos)
	}
	for _, t := range f.Turns {
		b.Extend(t.Pos)
	}
	return b
}

// Puzzle is a complete puzzle: static facts plus the initial configuration.
type Puzzle struct {
	Name    string
	Facts   Facts
	Initial State
}

// Incomplete reports whether the puzzle lacks squares or goals.
func (p *Puzzle) Incomplete() bool {
	return len(p.Initial.Squares) == 0 || len(p.Facts.Goals) == 0
}
