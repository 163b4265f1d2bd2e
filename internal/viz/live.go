package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/aura/internal/engine"
	"github.com/san-kum/aura/internal/feed"
	"github.com/san-kum/aura/internal/phase"
)

const (
	canvasW = 72
	canvasH = 22

	// The engine simulates a larger virtual surface than the character
	// grid so the spatial tuning matches the GUI.
	surfaceW = 360.0
	surfaceH = 220.0

	tickRate        = time.Second / 30
	historyCapacity = 600
)

type TickMsg time.Time

type Model struct {
	eng     *engine.Engine
	cell    *feed.Cell
	running bool

	pulseHistory  []float64
	spreadHistory []float64
}

func NewModel(eng *engine.Engine, cell *feed.Cell) Model {
	eng.Resize(surfaceW, surfaceH)
	return Model{
		eng:           eng,
		cell:          cell,
		running:       true,
		pulseHistory:  make([]float64, 0, historyCapacity),
		spreadHistory: make([]float64, 0, historyCapacity),
	}
}

// RunPreview blocks until the preview terminates.
func RunPreview(eng *engine.Engine, cell *feed.Cell) error {
	p := tea.NewProgram(NewModel(eng, cell), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "1":
			m.cell.Set("idle", false)
		case "2":
			m.cell.Set("thinking", true)
		case "3":
			m.cell.Set("memory", false)
		case "4":
			m.cell.Set("decision", false)
		case "5":
			m.cell.Set("profile", false)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	name, _ := m.cell.Phase()
	m.eng.Step(phase.PresetFor(name), tickRate.Seconds())

	m.pulseHistory = push(m.pulseHistory, m.eng.Params().Pulse)
	m.spreadHistory = push(m.spreadHistory, m.eng.Spread())
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("AURA PREVIEW") + "\n")

	name, thinking := m.cell.Phase()
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	activity := ""
	if thinking {
		activity = " …"
	}
	s.WriteString(fmt.Sprintf("%s  %s%s\n",
		labelStyle.Render(status), phaseStyle.Render(name), activity))

	s.WriteString(canvasStyle.Render(m.renderCanvas()) + "\n")

	p := m.eng.Params()
	s.WriteString(labelStyle.Render(fmt.Sprintf(
		"speed %.3f  cohesion %.4f  separation %.3f  chaos %.3f  pulse %.3f  radius %.3f  swirl %.4f",
		p.Speed, p.Cohesion, p.Separation, p.Chaos, p.Pulse, p.RadiusScale, p.Swirl)) + "\n")

	if len(m.spreadHistory) > 2 {
		g := asciigraph.Plot(tail(m.spreadHistory, canvasW),
			asciigraph.Height(6), asciigraph.Width(canvasW),
			asciigraph.Caption("spread"))
		s.WriteString(graphStyle.Render(g) + "\n")
	}
	if len(m.pulseHistory) > 2 && p.Pulse > 1e-4 {
		g := asciigraph.Plot(tail(m.pulseHistory, canvasW),
			asciigraph.Height(4), asciigraph.Width(canvasW),
			asciigraph.Caption("pulse magnitude"))
		s.WriteString(graphStyle.Render(g) + "\n")
	}

	s.WriteString(helpStyle.Render("[1-5] phase  [space] pause  [q] quit"))
	return s.String()
}

func tail(hist []float64, n int) []float64 {
	if len(hist) <= n {
		return hist
	}
	return hist[len(hist)-n:]
}

func (m Model) renderCanvas() string {
	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for i, p := range m.eng.Particles() {
		x := int(p.X / surfaceW * canvasW)
		y := int(p.Y / surfaceH * canvasH)
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			continue
		}
		r := m.eng.Radius(i)
		ch := '·'
		if r > 11 {
			ch = 'o'
		}
		if r > 15 {
			ch = 'O'
		}
		grid[y][x] = ch
	}

	rows := make([]string, canvasH)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return strings.Join(rows, "\n")
}
