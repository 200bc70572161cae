package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulums/internal/metrics"
	"github.com/san-kum/pendulums/internal/sim"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	panelWidth    = 44
)

type TickMsg time.Time

// Model is the bubbletea program that drives a Simulation from terminal
// frames and draws it onto a braille canvas.
type Model struct {
	sim     *sim.Simulation
	tracker *metrics.Tracker
	canvas  *Canvas
	reach   float64
	fps     int

	last     time.Time
	stats    sim.FrameStats
	paused   bool
	showHelp bool
	width    int
	height   int
}

// NewModel wires a simulation into a terminal view. tracker may be nil.
func NewModel(s *sim.Simulation, tracker *metrics.Tracker, reach float64, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		sim:     s,
		tracker: tracker,
		canvas:  NewCanvas(defaultWidth-panelWidth, defaultHeight-2),
		reach:   reach,
		fps:     fps,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "?":
			m.showHelp = !m.showHelp
		default:
			if cmd, ok := sim.KeyCommands[key]; ok {
				m.sim.Submit(cmd)
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = NewCanvas(max(msg.Width-panelWidth-2, 10), max(msg.Height-2, 5))
	case TickMsg:
		now := time.Time(msg)
		elapsed := time.Duration(0)
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		if m.paused {
			elapsed = 0
		}
		m.stats = m.sim.Frame(elapsed)
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	m.sim.Render(NewCanvasRenderer(m.canvas, m.reach))
	canvasView := canvasStyle.Render(m.canvas.Render())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.panel())
}

func (m Model) panel() string {
	var s strings.Builder
	tg := m.sim.Toggles()

	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(headerStyle.Render("DOUBLE PENDULUMS") + "\n")
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Pendulums", fmt.Sprintf("%d", m.sim.Registry().Len()))
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Energy", fmt.Sprintf("%.2f", m.sim.Energy()))
	row("Steps", fmt.Sprintf("%d/frame", m.stats.Steps))
	if m.stats.Degenerate > 0 {
		row("Skipped", fmt.Sprintf("%d", m.stats.Degenerate))
	}
	s.WriteString("\n")
	row("Trails", onOff(tg.DrawTrails))
	row("Pendulums", onOff(tg.DrawPendulums))
	row("Damping", onOff(tg.Damping))

	if m.tracker != nil {
		if hist := m.tracker.History(); len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("─────────────────────\nS:Spawn  W:Spawn many  R:Reset\nA:Trails P:Pendulums  D:Damping\nSP:Pause ?:Help       Q:Quit"))
	} else {
		s.WriteString(helpStyle.Render("?:Help Q:Quit"))
	}
	return panelStyle.Render(s.String())
}

// Run starts the terminal view and blocks until the user quits.
func Run(s *sim.Simulation, tracker *metrics.Tracker, reach float64, fps int) error {
	p := tea.NewProgram(NewModel(s, tracker, reach, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
