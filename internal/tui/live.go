package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/impulse/internal/metrics"
	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

const (
	canvasWidth     = 70
	canvasHeight    = 22
	frameRate       = 60
	historyCapacity = 600
	trailCapacity   = 200
	maxStepsPerTick = 256
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type point struct{ x, y int }

// Model steps a world in real time and renders it on a braille canvas.
type Model struct {
	world     *simulation.World
	sceneName string
	initial   rigid.State

	t     float64
	steps int

	stepsPerTick int
	running      bool
	failure      error

	canvas *Canvas
	scale  float64
	trail  []point

	energy     *metrics.Energy
	energyHist []float64

	snapshot string
}

// NewModel prepares a live view of w. The world is stepped so a second
// of wall-clock time covers a second of simulated time where the frame
// budget allows it.
func NewModel(w *simulation.World, sceneName string) Model {
	perTick := int(math.Round(1.0 / (frameRate * w.TimeStep())))
	if perTick < 1 {
		perTick = 1
	}
	return Model{
		world:        w,
		sceneName:    sceneName,
		initial:      w.State(),
		stepsPerTick: perTick,
		running:      true,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		scale:        fitScale(w),
		trail:        make([]point, 0, trailCapacity),
		energy:       metrics.NewEnergy(w),
		energyHist:   make([]float64, 0, historyCapacity),
	}
}

// fitScale picks pixels per world unit so every body starts on screen
// with some margin around it.
func fitScale(w *simulation.World) float64 {
	extent := 1.5
	for _, b := range w.Bodies() {
		if b.Kind == rigid.BodyStatic {
			continue
		}
		if e := math.Abs(b.Position.X()) + b.Radius; e > extent {
			extent = e
		}
		if e := math.Abs(b.Position.Y()) + b.Radius; e > extent {
			extent = e
		}
	}
	return float64(canvasHeight*4) / (2.0 * (extent + 0.5))
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.failure == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			if m.stepsPerTick*2 <= maxStepsPerTick {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "s":
			m.saveSnapshot()
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance steps the world for one frame. A failed resolution freezes the
// view with the pre-resolution state still on screen.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		if err := m.world.Step(); err != nil {
			m.failure = err
			m.running = false
			break
		}
		m.t += m.world.TimeStep()
		m.steps++
	}
	m.record()
}

func (m *Model) record() {
	m.energy.Reset()
	m.energy.Observe(m.world.State(), nil, m.t)
	m.energyHist = append(m.energyHist, m.energy.Value())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}

	for _, b := range m.world.Bodies() {
		if b.Kind != rigid.BodyDynamic {
			continue
		}
		x, y := m.project(b.Position)
		m.trail = append(m.trail, point{x, y})
		break
	}
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
}

func (m *Model) reset() {
	if err := m.world.SetState(m.initial); err != nil {
		return
	}
	for _, b := range m.world.Bodies() {
		b.ClearForces()
		b.ClearImpulses()
	}
	m.world.DetectContacts()
	m.t = 0
	m.steps = 0
	m.failure = nil
	m.running = true
	m.trail = m.trail[:0]
	m.energyHist = m.energyHist[:0]
	m.energy.Reset()
}

// saveSnapshot writes the current frame as an SVG in the working
// directory. Write failures leave the previous snapshot name in place.
func (m *Model) saveSnapshot() {
	m.draw()
	name := fmt.Sprintf("impulse_%d.svg", time.Now().Unix())
	if err := os.WriteFile(name, []byte(m.canvas.SVG(4)), 0644); err != nil {
		return
	}
	m.snapshot = name
}

// project maps a world position to canvas pixels, world origin at the
// screen center and y pointing up.
func (m *Model) project(p mgl64.Vec2) (int, int) {
	x := canvasWidth + int(math.Round(p.X()*m.scale))
	y := canvasHeight*2 - int(math.Round(p.Y()*m.scale))
	return x, y
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
	for _, b := range m.world.Bodies() {
		switch b.Shape {
		case rigid.ShapeGround:
			_, gy := m.project(b.Position)
			m.canvas.DrawLine(0, gy, canvasWidth*2-1, gy)
		case rigid.ShapeCircle:
			cx, cy := m.project(b.Position)
			r := int(math.Round(b.Radius * m.scale))
			m.canvas.DrawCircle(cx, cy, r)
			ex := cx + int(math.Round(float64(r)*math.Cos(b.Angle)))
			ey := cy - int(math.Round(float64(r)*math.Sin(b.Angle)))
			m.canvas.DrawLine(cx, cy, ex, ey)
		}
	}
}

// View renders the canvas next to a stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	status := "RUNNING"
	if m.failure != nil {
		status = failStyle.Render("FAILED: " + m.failure.Error())
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHist) > 0 {
		energy = m.energyHist[len(m.energyHist)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", len(m.world.Contacts()))) + "\n")
	s.WriteString(labelStyle.Render("Impulse") + valueStyle.Render(fmt.Sprintf("%.4f", m.impulseMagnitude())) + "\n")
	s.WriteString(labelStyle.Render("Steps/frame") + valueStyle.Render(fmt.Sprintf("%d", m.stepsPerTick)) + "\n")
	if m.snapshot != "" {
		s.WriteString(labelStyle.Render("Snapshot") + valueStyle.Render(m.snapshot) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset S:Snapshot Q:Quit +/-:Speed"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) impulseMagnitude() float64 {
	sum := 0.0
	for _, v := range m.world.Solver().LastImpulses() {
		sum += math.Abs(v)
	}
	return sum
}
