package core

import "fmt"

// ValidationError contains details about why a puzzle cannot be solved as given.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MaxCoord bounds the absolute value of every coordinate a puzzle may place
// a square, goal or turn tile at.
const MaxCoord = 1 << 10

// ValidateRange checks that every element of the puzzle lies within
// MaxCoord of the origin. It does not require the puzzle to be complete.
func ValidateRange(p *Puzzle) error {
	check := func(kind string, pos Pos) error {
		if pos.X < -MaxCoord || pos.X > MaxCoord || pos.Y < -MaxCoord || pos.Y > MaxCoord {
			return ValidationError{
				Code:    "OUT_OF_RANGE",
				Message: fmt.Sprintf("%s at %s is further than %d cells from the origin", kind, pos, MaxCoord),
			}
		}
		return nil
	}

	for _, sq := range p.Initial.Squares {
		if err := check("square", sq.Pos); err != nil {
			return err
		}
	}
	for _, g := range p.Facts.Goals {
		if err := check("goal", g.Pos); err != nil {
			return err
		}
	}
	for _, t := range p.Facts.Turns {
		if err := check("turn", t.Pos); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that a puzzle is complete and well-formed:
//   - at least one square and one goal
//   - every coordinate within MaxCoord
//   - one square per color
//   - no two squares on the same cell
//   - every color used is known to the registry
func Validate(p *Puzzle) error {
	if len(p.Initial.Squares) == 0 {
		return ValidationError{Code: "NO_SQUARES", Message: "puzzle has no squares"}
	}
	if len(p.Facts.Goals) == 0 {
		return ValidationError{Code: "NO_GOALS", Message: "puzzle has no goals"}
	}
	if err := ValidateRange(p); err != nil {
		return err
	}

	colors := make(map[Color]bool)
	cells := make(map[Pos]Color)
	for _, sq := range p.Initial.Squares {
		name := p.Facts.Colors.Name(sq.Color)
		if int(sq.Color) >= p.Facts.Colors.Len() {
			return ValidationError{
				Code:    "UNKNOWN_COLOR",
				Message: fmt.Sprintf("square at %s has unregistered color %d", sq.Pos, int(sq.Color)),
			}
		}
		if colors[sq.Color] {
			return ValidationError{
				Code:    "DUPLICATE_COLOR",
				Message: fmt.Sprintf("more than one square has color %s", name),
			}
		}
		colors[sq.Color] = true

		if other, ok := cells[sq.Pos]; ok {
			return ValidationError{
				Code: "OVERLAP",
				Message: fmt.Sprintf("squares %s and %s share cell %s",
					p.Facts.Colors.Name(other), name, sq.Pos),
			}
		}
		cells[sq.Pos] = sq.Color
	}

	for _, g := range p.Facts.Goals {
		if int(g.Color) >= p.Facts.Colors.Len() {
			return ValidationError{
				Code:    "UNKNOWN_COLOR",
				Message: fmt.Sprintf("goal at %s has unregistered color %d", g.Pos, int(g.Color)),
			}
		}
	}

	return nil
}
