package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/squares/internal/core"
)

func init() {
	for _, ext := range []string{".sq", ".squares", ".txt"} {
		Register(ext, ParseText)
	}
}

// SyntaxError reports a malformed line in a text puzzle.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseText parses the line-oriented puzzle format:
//
//	# comment
//	name   First steps
//	square red 0,0 >
//	goal   red (3,0)
//	turn   v 4,0
//
// Directions are ^ v < > or up/down/left/right. Coordinates are x,y with
// optional parentheses. Colors are registered in the order they first appear.
func ParseText(data []byte) (*core.Puzzle, error) {
	colors := core.NewRegistry()
	p := &core.Puzzle{Facts: core.Facts{Colors: colors}}
	var squares []core.Square

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		fail := func(format string, args ...any) error {
			return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
		}

		switch keyword := strings.ToLower(fields[0]); keyword {
		case "name":
			p.Name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), fields[0]))

		case "square":
			if len(fields) != 4 {
				return nil, fail("square needs <color> <x,y> <dir>, got %d fields", len(fields)-1)
			}
			pos, err := parseCoord(fields[2])
			if err != nil {
				return nil, fail("%v", err)
			}
			dir, ok := core.ParseDir(fields[3])
			if !ok {
				return nil, fail("unknown direction %q", fields[3])
			}
			squares = append(squares, core.Square{Pos: pos, Color: colors.Intern(fields[1]), Dir: dir})

		case "goal":
			if len(fields) != 3 {
				return nil, fail("goal needs <color> <x,y>, got %d fields", len(fields)-1)
			}
			pos, err := parseCoord(fields[2])
			if err != nil {
				return nil, fail("%v", err)
			}
			p.Facts.Goals = append(p.Facts.Goals, core.Goal{Pos: pos, Color: colors.Intern(fields[1])})

		case "turn":
			if len(fields) != 3 {
				return nil, fail("turn needs <dir> <x,y>, got %d fields", len(fields)-1)
			}
			dir, ok := core.ParseDir(fields[1])
			if !ok {
				return nil, fail("unknown direction %q", fields[1])
			}
			pos, err := parseCoord(fields[2])
			if err != nil {
				return nil, fail("%v", err)
			}
			p.Facts.Turns = append(p.Facts.Turns, core.Turn{Pos: pos, Dir: dir})

		default:
			return nil, fail("unknown element %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading puzzle: %w", err)
	}

	colors.Freeze()
	p.Initial = core.NewState(squares...)
	return p, nil
}

// parseCoord parses "x,y" or "(x,y)".
func parseCoord(s string) (core.Pos, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	xs, ys, ok := strings.Cut(inner, ",")
	if !ok {
		return core.Pos{}, fmt.Errorf("bad coordinate %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Pos{}, fmt.Errorf("bad x in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Pos{}, fmt.Errorf("bad y in %q", s)
	}
	return core.P(x, y), nil
}
