package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/squares/internal/core"
)

// Palette maps color ids to terminal colors. Ids beyond its length wrap around.
type Palette []lipgloss.Color

// DefaultPalette returns ANSI colors in the order puzzles usually introduce
// them: red, green, blue, yellow, magenta, cyan, orange, gray.
func DefaultPalette() Palette {
	return ParsePalette([]string{"1", "2", "4", "3", "5", "6", "208", "245"})
}

// ParsePalette builds a palette from color strings (ANSI numbers or hex).
func ParsePalette(colors []string) Palette {
	p := make(Palette, len(colors))
	for i, c := range colors {
		p[i] = lipgloss.Color(c)
	}
	return p
}

// At returns the terminal color for a palette index.
func (p Palette) At(i int) lipgloss.Color {
	if len(p) == 0 || i < 0 {
		return lipgloss.Color("")
	}
	return p[i%len(p)]
}

// Styler renders canvases with lipgloss.
type Styler struct {
	renderer *lipgloss.Renderer
	palette  Palette
}

// NewStyler creates a styler. A nil renderer uses lipgloss' default one.
func NewStyler(r *lipgloss.Renderer, palette Palette) *Styler {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	return &Styler{renderer: r, palette: palette}
}

// NewStyle returns an empty style on the styler's renderer, so chrome drawn
// around boards follows the same color profile.
func (st *Styler) NewStyle() lipgloss.Style {
	return st.renderer.NewStyle()
}

// style returns the lipgloss style for a foreground/background pair.
func (st *Styler) style(fg, bg int) lipgloss.Style {
	s := st.NewStyle()
	if fg != NoColor {
		s = s.Foreground(st.palette.At(fg))
	}
	if bg != NoColor {
		s = s.Background(st.palette.At(bg))
	}
	return s
}

// Render converts a canvas to styled text.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (st *Styler) Render(c *Canvas) string {
	var sb strings.Builder

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			start := c.Get(x, y)

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.FG == NoColor && start.BG == NoColor {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(st.style(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}

// Board renders a puzzle state with colors.
// Incomplete puzzles render as a notice instead of a board.
func (st *Styler) Board(p *core.Puzzle, s core.State) string {
	if p.Incomplete() {
		return st.NewStyle().Bold(true).Render(incompleteTx)
	}
	return st.Render(Draw(&p.Facts, s))
}

// Name renders a color label in its own color.
func (st *Styler) Name(colors *core.Registry, c core.Color) string {
	return st.style(int(c), NoColor).Render(colors.Name(c))
}

// Legend lists every registered color in its own color.
func (st *Styler) Legend(colors *core.Registry) string {
	parts := make([]string, colors.Len())
	for i := range parts {
		parts[i] = st.Name(colors, core.Color(i))
	}
	return strings.Join(parts, " ")
}
