package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/squares/internal/core"
	"github.com/vovakirdan/squares/internal/render"
)

// defaultStepDelay is the autoplay interval when none is configured.
const defaultStepDelay = 400 * time.Millisecond

// Options configure the replay viewer.
type Options struct {
	Styler    *render.Styler // Nil uses the default renderer and palette
	StepDelay time.Duration  // Autoplay interval
	Width     int            // Initial terminal size, updated on resize
	Height    int
}

// Model is the Bubble Tea model for replaying a solution.
type Model struct {
	puzzle  *core.Puzzle
	actions []core.Color
	states  []core.State // states[i] is the board after i actions
	step    int

	playing bool
	gen     int
	delay   time.Duration

	styler   *render.Styler
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a replay model for the given solution.
func NewModel(p *core.Puzzle, actions []core.Color, opts Options) Model {
	if opts.Styler == nil {
		opts.Styler = render.NewStyler(nil, nil)
	}
	if opts.StepDelay <= 0 {
		opts.StepDelay = defaultStepDelay
	}

	h := help.New()
	h.Width = opts.Width
	h.Styles = helpStyles(opts.Styler)

	return Model{
		puzzle:  p,
		actions: actions,
		states:  p.Facts.Replay(p.Initial, actions),
		delay:   opts.StepDelay,
		styler:  opts.Styler,
		keys:    DefaultKeyMap(),
		help:    h,
		width:   opts.Width,
		height:  opts.Height,
	}
}

// helpStyles builds the help footer styles on the styler's renderer.
func helpStyles(st *render.Styler) help.Styles {
	keyStyle := st.NewStyle().Foreground(lipgloss.Color("250"))
	descStyle := st.NewStyle().Foreground(lipgloss.Color("241"))
	sepStyle := st.NewStyle().Foreground(lipgloss.Color("238"))
	return help.Styles{
		Ellipsis:       sepStyle,
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: sepStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  sepStyle,
	}
}

// Step returns the number of actions applied to the board on screen.
func (m Model) Step() int {
	return m.step
}

// Playing reports whether autoplay is running.
func (m Model) Playing() bool {
	return m.playing
}

// last is the index of the final state.
func (m Model) last() int {
	return len(m.states) - 1
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.playing = false
		if m.step < m.last() {
			m.step++
		}

	case key.Matches(msg, m.keys.Prev):
		m.playing = false
		if m.step > 0 {
			m.step--
		}

	case key.Matches(msg, m.keys.First):
		m.playing = false
		m.step = 0

	case key.Matches(msg, m.keys.Last):
		m.playing = false
		m.step = m.last()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Play):
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.last() == 0 {
			return m, nil
		}
		// Restart from the beginning once the end was reached
		if m.step == m.last() {
			m.step = 0
		}
		m.playing = true
		m.gen++
		return m, tickCmd(m.delay, m.gen)
	}

	return m, nil
}

// handleTick advances autoplay.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.playing || msg.gen != m.gen {
		return m, nil
	}

	if m.step < m.last() {
		m.step++
	}
	if m.step == m.last() {
		m.playing = false
		return m, nil
	}
	return m, tickCmd(m.delay, m.gen)
}

// View renders the viewer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := m.styler.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := m.puzzle.Name
	if title == "" {
		title = "squares"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	boardStyle := m.styler.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boardStyle.Render(m.styler.Board(m.puzzle, m.states[m.step])))
	b.WriteString("\n\n")

	helpStyle := m.styler.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statusLine shows the step counter, the action that produced the board and
// whether the board is won.
func (m Model) statusLine() string {
	parts := []string{fmt.Sprintf("step %d/%d", m.step, m.last())}

	if m.step > 0 {
		action := m.actions[m.step-1]
		parts = append(parts, "moved "+m.styler.Name(m.puzzle.Facts.Colors, action))
	} else {
		parts = append(parts, "start")
	}

	if m.puzzle.Facts.Won(m.states[m.step]) {
		parts = append(parts, m.styler.NewStyle().Bold(true).Render("solved"))
	} else if m.playing {
		parts = append(parts, "playing")
	}

	return strings.Join(parts, "  ")
}

// Run starts the replay viewer and blocks until it exits.
func Run(p *core.Puzzle, actions []core.Color, opts Options) error {
	model := NewModel(p, actions, opts)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := prog.Run()
	return err
}
