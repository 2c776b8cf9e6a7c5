package render

import (
	"github.com/vovakirdan/squares/internal/core"
)

// Glyphs for the different cell kinds, indexed by core.Dir.
var (
	goalEmpty    = '○'
	goalSquare   = [4]rune{'◓', '◒', '◐', '◑'}
	turnSquare   = [4]rune{'▲', '▼', '◀', '▶'}
	turnEmpty    = [4]rune{'△', '▽', '◁', '▷'}
	squareOnly   = [4]rune{'⬒', '⬓', '◧', '◨'}
	incompleteTx = "Incomplete puzzle"
)

// Draw renders s over the static facts f into a canvas covering the
// bounding box of all squares, goals and turns.
//
// Cell precedence:
//   - goal: hollow circle in the goal color, or a half circle facing the
//     square's heading, square color on goal color
//   - turn: filled arrow of the turn direction in the square color, or a
//     hollow arrow when empty
//   - square: half-filled box facing its heading
func Draw(f *core.Facts, s core.State) *Canvas {
	b := f.Bounds(s)
	c := NewCanvas(b.Width(), b.Height())
	if b.Empty() {
		return c
	}

	squares := make(map[core.Pos]core.Square, len(s.Squares))
	for _, sq := range s.Squares {
		squares[sq.Pos] = sq
	}

	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			p := core.P(x, y)
			c.Set(x-b.Min.X, y-b.Min.Y, cellAt(f, squares, p))
		}
	}
	return c
}

// cellAt picks the glyph and colors for one board position.
func cellAt(f *core.Facts, squares map[core.Pos]core.Square, p core.Pos) Cell {
	sq, hasSquare := squares[p]

	if g, ok := f.GoalAt(p); ok {
		if !hasSquare {
			return Cell{Rune: goalEmpty, FG: int(g.Color), BG: NoColor}
		}
		return Cell{Rune: goalSquare[sq.Dir], FG: int(sq.Color), BG: int(g.Color)}
	}

	if t, ok := f.TurnAt(p); ok {
		if !hasSquare {
			return Cell{Rune: turnEmpty[t.Dir], FG: NoColor, BG: NoColor}
		}
		return Cell{Rune: turnSquare[t.Dir], FG: int(sq.Color), BG: NoColor}
	}

	if hasSquare {
		return Cell{Rune: squareOnly[sq.Dir], FG: int(sq.Color), BG: NoColor}
	}
	return blank
}

// Plain renders a state as uncolored text.
// Incomplete puzzles render as a notice instead of a board.
func Plain(p *core.Puzzle, s core.State) string {
	if p.Incomplete() {
		return incompleteTx
	}
	return Draw(&p.Facts, s).String()
}
