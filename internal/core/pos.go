// Package core provides the puzzle model and simulation for the squares solver.
// It is UI-agnostic and deterministic: nothing in here reads files or draws.
package core

import (
	"fmt"
	"strings"
)

// Dir is the heading of a square or the direction of a turn tile.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Glyph returns the single-character arrow used in puzzle files.
func (d Dir) Glyph() rune {
	switch d {
	case DirUp:
		return '^'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	case DirRight:
		return '>'
	default:
		return '?'
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParseDir converts an arrow glyph or a direction word to a Dir.
// Returns DirUp and false if the string is not recognized.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "^", "up", "u":
		return DirUp, true
	case "v", "down", "d":
		return DirDown, true
	case "<", "left", "l":
		return DirLeft, true
	case ">", "right", "r":
		return DirRight, true
	default:
		return DirUp, false
	}
}

// Pos is a cell on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the position one cell away in the given direction.
func (p Pos) Step(d Dir) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Less orders positions row by row, then column by column.
func (p Pos) Less(other Pos) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// Bounds is an inclusive bounding box of positions.
type Bounds struct {
	Min Pos // Top-left corner
	Max Pos // Bottom-right corner
	set bool
}

// Extend grows the box so it contains p.
func (b *Bounds) Extend(p Pos) {
	if !b.set {
		b.Min, b.Max, b.set = p, p, true
		return
	}
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
}

// Empty reports whether no position was added to the box.
func (b Bounds) Empty() bool {
	return !b.set
}

// Grow returns the box expanded by n cells on every side.
func (b Bounds) Grow(n int) Bounds {
	if !b.set {
		return b
	}
	return Bounds{
		Min: Pos{X: b.Min.X - n, Y: b.Min.Y - n},
		Max: Pos{X: b.Max.X + n, Y: b.Max.Y + n},
		set: true,
	}
}

// Contains reports whether p lies inside the box.
func (b Bounds) Contains(p Pos) bool {
	return b.set && p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width returns the number of columns covered by the box.
func (b Bounds) Width() int {
	if !b.set {
		return 0
	}
	return b.Max.X - b.Min.X + 1
}

// Height returns the number of rows covered by the box.
func (b Bounds) Height() int {
	if !b.set {
		return 0
	}
	return b.Max.Y - b.Min.Y + 1
}
