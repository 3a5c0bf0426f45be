package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/freefall/internal/dynamo"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	historyCap   = 900
	dragStep     = 0.005
)

type TickMsg time.Time

type point struct{ x, y float64 }

type terminalSpeeder interface {
	TerminalSpeed() float64
}

// Model animates a body in flight. The falling mass drops along a fixed
// column; the projectile traces its arc.
type Model struct {
	sys          dynamo.System
	integrator   dynamo.Integrator
	forcing      dynamo.Forcing
	state        dynamo.State
	initialState dynamo.State
	t, dt        float64
	canvas       *Canvas
	trail        []point
	speedHist    []float64
	running      bool
	landed       bool
	showHelp     bool
	systemName   string
	altIndex     int
}

func NewModel(sys dynamo.System, integ dynamo.Integrator, f dynamo.Forcing, initState []float64, dt float64, systemName string) Model {
	altIndex := 0
	if systemName == "projectile" {
		altIndex = 1
	}

	return Model{
		sys:          sys,
		integrator:   integ,
		forcing:      f,
		state:        dynamo.State(initState).Clone(),
		initialState: dynamo.State(initState).Clone(),
		dt:           dt,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		trail:        make([]point, 0, historyCap),
		speedHist:    make([]float64, 0, historyCap),
		running:      true,
		systemName:   systemName,
		altIndex:     altIndex,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.adjustDrag(dragStep)
		case "-":
			m.adjustDrag(-dragStep)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if m.running && !m.landed {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) step() {
	var u dynamo.Vector
	if m.forcing != nil {
		u = m.forcing.Force(m.state, m.t)
	}

	m.recordSample()

	m.state = m.integrator.Step(m.sys, m.state, u, m.t, m.dt)
	m.t += m.dt

	if !m.state.IsValid() {
		m.landed = true
		return
	}
	if m.altitude() <= 0 && m.verticalVelocity() < 0 {
		m.landed = true
	}
}

func (m *Model) recordSample() {
	var p point
	if m.altIndex == 0 {
		p = point{x: 0, y: m.state[0]}
	} else {
		p = point{x: m.state[0], y: m.state[1]}
	}

	if len(m.trail) >= historyCap {
		m.trail = m.trail[1:]
	}
	m.trail = append(m.trail, p)

	if len(m.speedHist) >= historyCap {
		m.speedHist = m.speedHist[1:]
	}
	m.speedHist = append(m.speedHist, m.speed())
}

func (m *Model) reset() {
	m.state = m.initialState.Clone()
	m.t = 0
	m.landed = false
	m.running = true
	m.trail = m.trail[:0]
	m.speedHist = m.speedHist[:0]
}

func (m *Model) adjustDrag(delta float64) {
	cfg, ok := m.sys.(dynamo.Configurable)
	if !ok {
		return
	}
	drag := cfg.GetParams()["drag"] + delta
	if drag < 0 {
		drag = 0
	}
	_ = cfg.SetParam("drag", drag)
}

func (m *Model) altitude() float64 {
	return m.state[m.altIndex]
}

func (m *Model) verticalVelocity() float64 {
	half := len(m.state) / 2
	return m.state[half+m.altIndex]
}

func (m *Model) speed() float64 {
	half := len(m.state) / 2
	sum := 0.0
	for i := half; i < len(m.state); i++ {
		sum += m.state[i] * m.state[i]
	}
	return math.Sqrt(sum)
}

func (m Model) View() string {
	m.drawScene()

	canvas := canvasStyle.Render(m.canvas.String())
	stats := statsStyle.Render(m.statsPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats)

	help := "space pause · r reset · +/- drag · q quit"
	if m.showHelp {
		help += "\nfalling mass drops along the column; projectile traces its arc left to right"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("freefall live · %s", m.systemName)),
		body,
		helpStyle.Render(help),
	)
}

func (m *Model) drawScene() {
	m.canvas.Clear()

	pw := canvasWidth * 2
	ph := canvasHeight * 4

	// Ground line.
	m.canvas.DrawLine(0, ph-1, pw-1, ph-1)

	xMin, xMax, yMax := m.bounds()

	toPixel := func(p point) (int, int) {
		px := pw / 2
		if xMax > xMin {
			px = int(float64(pw-1) * (p.x - xMin) / (xMax - xMin))
		}
		py := ph - 2
		if yMax > 0 {
			py = int(float64(ph-2) * (1 - p.y/yMax))
		}
		return px, py
	}

	for _, p := range m.trail {
		px, py := toPixel(p)
		m.canvas.Set(px, py)
	}

	// The body itself, drawn as a small cross.
	var cur point
	if m.altIndex == 0 {
		cur = point{x: 0, y: m.state[0]}
	} else {
		cur = point{x: m.state[0], y: m.state[1]}
	}
	px, py := toPixel(cur)
	m.canvas.Set(px, py)
	m.canvas.Set(px-1, py)
	m.canvas.Set(px+1, py)
	m.canvas.Set(px, py-1)
	m.canvas.Set(px, py+1)
}

func (m *Model) bounds() (xMin, xMax, yMax float64) {
	yMax = m.initialState[m.altIndex]
	for _, p := range m.trail {
		if p.y > yMax {
			yMax = p.y
		}
		if p.x < xMin {
			xMin = p.x
		}
		if p.x > xMax {
			xMax = p.x
		}
	}
	if cur := m.altitude(); cur > yMax {
		yMax = cur
	}
	if yMax <= 0 {
		yMax = 1
	}
	return xMin, xMax, yMax
}

func (m *Model) statsPanel() string {
	status := statusRunning.Render("running")
	if m.landed {
		status = statusLanded.Render("landed")
	} else if !m.running {
		status = statusPaused.Render("paused")
	}

	params := map[string]float64{}
	if cfg, ok := m.sys.(dynamo.Configurable); ok {
		params = cfg.GetParams()
	}

	rows := []string{
		headerStyle.Render("state") + "  " + status,
		row("time", fmt.Sprintf("%.2f s", m.t)),
		row("altitude", fmt.Sprintf("%.2f m", m.altitude())),
		row("speed", fmt.Sprintf("%.2f m/s", m.speed())),
		row("drag k", fmt.Sprintf("%.4f", params["drag"])),
		row("mass", fmt.Sprintf("%.3f kg", params["mass"])),
	}

	if ts, ok := m.sys.(terminalSpeeder); ok && !math.IsInf(ts.TerminalSpeed(), 1) {
		rows = append(rows, row("terminal v", fmt.Sprintf("%.2f m/s", ts.TerminalSpeed())))
	}

	if len(m.speedHist) > 2 {
		spark := asciigraph.Plot(m.speedHist,
			asciigraph.Height(5),
			asciigraph.Width(28),
			asciigraph.Caption("speed"),
		)
		rows = append(rows, graphStyle.Render(spark))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
