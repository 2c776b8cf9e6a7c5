package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/squares/internal/core"
)

func init() {
	Register(".yaml", ParseYAML)
	Register(".yml", ParseYAML)
}

// YAMLPuzzle represents the YAML structure for a puzzle file.
type YAMLPuzzle struct {
	Name    string       `yaml:"name"`
	Colors  []string     `yaml:"colors,omitempty"` // Optional id order, see ParseYAML
	Squares []YAMLSquare `yaml:"squares"`
	Goals   []YAMLGoal   `yaml:"goals"`
	Turns   []YAMLTurn   `yaml:"turns,omitempty"`
}

// YAMLSquare represents a single square in YAML format.
type YAMLSquare struct {
	Color string `yaml:"color"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Dir   string `yaml:"dir"`
}

// YAMLGoal represents a single goal tile in YAML format.
type YAMLGoal struct {
	Color string `yaml:"color"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// YAMLTurn represents a single turn tile in YAML format.
type YAMLTurn struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// ParseYAML parses a YAML puzzle file.
// Colors listed under "colors" get the first ids in that order. Any other
// color is registered as it is met: squares first, then goals.
func ParseYAML(data []byte) (*core.Puzzle, error) {
	var yp YAMLPuzzle
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	colors := core.NewRegistry()
	p := &core.Puzzle{Name: yp.Name, Facts: core.Facts{Colors: colors}}

	for i, name := range yp.Colors {
		if name == "" {
			return nil, fmt.Errorf("colors[%d]: empty color", i)
		}
		if _, dup := colors.Lookup(name); dup {
			return nil, fmt.Errorf("colors[%d]: duplicate color %q", i, name)
		}
		colors.Intern(name)
	}

	squares := make([]core.Square, 0, len(yp.Squares))
	for i, s := range yp.Squares {
		if s.Color == "" {
			return nil, fmt.Errorf("squares[%d]: missing color", i)
		}
		dir, ok := core.ParseDir(s.Dir)
		if !ok {
			return nil, fmt.Errorf("squares[%d]: unknown direction %q", i, s.Dir)
		}
		squares = append(squares, core.Square{Pos: core.P(s.X, s.Y), Color: colors.Intern(s.Color), Dir: dir})
	}

	for i, g := range yp.Goals {
		if g.Color == "" {
			return nil, fmt.Errorf("goals[%d]: missing color", i)
		}
		p.Facts.Goals = append(p.Facts.Goals, core.Goal{Pos: core.P(g.X, g.Y), Color: colors.Intern(g.Color)})
	}

	for i, t := range yp.Turns {
		dir, ok := core.ParseDir(t.Dir)
		if !ok {
			return nil, fmt.Errorf("turns[%d]: unknown direction %q", i, t.Dir)
		}
		p.Facts.Turns = append(p.Facts.Turns, core.Turn{Pos: core.P(t.X, t.Y), Dir: dir})
	}

	colors.Freeze()
	p.Initial = core.NewState(squares...)
	return p, nil
}

// MarshalYAML converts a puzzle back to the YAML file format.
// The color list is written out so ids, and with them palette colors,
// survive the round trip.
func MarshalYAML(p *core.Puzzle) ([]byte, error) {
	yp := YAMLPuzzle{Name: p.Name}
	for c := range p.Facts.Colors.Len() {
		yp.Colors = append(yp.Colors, p.Facts.Colors.Name(core.Color(c)))
	}
	for _, s := range p.Initial.Squares {
		yp.Squares = append(yp.Squares, YAMLSquare{
			Color: p.Facts.Colors.Name(s.Color),
			X:     s.Pos.X,
			Y:     s.Pos.Y,
			Dir:   s.Dir.String(),
		})
	}
	for _, g := range p.Facts.Goals {
		yp.Goals = append(yp.Goals, YAMLGoal{Color: p.Facts.Colors.Name(g.Color), X: g.Pos.X, Y: g.Pos.Y})
	}
	for _, t := range p.Facts.Turns {
		yp.Turns = append(yp.Turns, YAMLTurn{X: t.Pos.X, Y: t.Pos.Y, Dir: t.Dir.String()})
	}
	return yaml.Marshal(yp)
}
