package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/whirl/internal/input"
	"github.com/olivier-w/whirl/internal/motion"
	"github.com/olivier-w/whirl/internal/player"
	"github.com/olivier-w/whirl/internal/render"
	"github.com/olivier-w/whirl/internal/track"
	"github.com/olivier-w/whirl/internal/util"
)

// Rows reserved under the carousel viewport for status and help.
const chromeRows = 2

// A wheel tick from the terminal has no magnitude, so it is treated as
// one conventional scroll-line delta.
const wheelDelta = 120.0

type Model struct {
	slots []track.Slot
	geom  track.Geometry
	state motion.State
	ctrl  *input.Controller
	comp  *render.Compositor

	width, height int
	frame         string
	centered      int // slot index nearest the viewport center

	preview     *player.Preview
	previewSlot int
	volume      float64

	statusMsg  string
	statusTime time.Time

	quitting bool
}

// New builds the carousel model for an already-constructed track.
func New(slots []track.Slot) *Model {
	m := &Model{
		slots:       slots,
		geom:        track.NewGeometry(len(slots), 0),
		comp:        render.NewCompositor(slots, FrameRate),
		volume:      0.8,
		previewSlot: -1,
	}
	m.ctrl = input.New(&m.state)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), tea.SetWindowTitle("whirl"))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m *Model) handleMsg(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.geom.Resize(float64(msg.Width) * render.PointsPerCell)
		rows := msg.Height - chromeRows
		if rows < 1 {
			rows = 1
		}
		m.comp.Resize(msg.Width, rows)
		return m, nil

	case frameMsg:
		m.stepFrame()
		return m, frameCmd()

	case previewOpenedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Can't play: %v", msg.err))
			return m, nil
		}
		if m.preview != nil {
			m.preview.Close()
		}
		m.preview = msg.preview
		m.previewSlot = msg.slot
		return m, watchPreview(msg.preview)

	case previewEndedMsg:
		if msg.preview == m.preview {
			m.preview = nil
			m.previewSlot = -1
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		m.stopPreview()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	switch msg.String() {
	case " ":
		if m.preview != nil {
			m.preview.TogglePause()
		}
	case "+", "=":
		m.adjustVolume(0.05)
	case "-":
		m.adjustVolume(-0.05)
	case "h", "left":
		m.nudge(-1)
	case "l", "right":
		m.nudge(1)
	case "enter":
		return m.togglePlayback()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X) * render.PointsPerCell
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.Wheel(-wheelDelta)
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.Wheel(wheelDelta)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.ctrl.MousePress(x, time.Now())
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.MouseMove(x)
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.MouseRelease(x, time.Now())
	}
}

// stepFrame advances the physics one tick and redraws the viewport.
// Input handlers only mutate motion state, so their effects land here,
// on the next frame, never mid-computation.
func (m *Model) stepFrame() {
	m.state.Step()

	best := -1
	bestDist := 0.0
	for i := range m.slots {
		tr := motion.Compute(m.geom.Params(i, m.state.SmoothPosition))
		m.comp.SetTransform(i, tr)

		center := tr.CenterX(m.geom.ItemWidth)
		if m.slots[i].Card.Art != nil {
			px, py := motion.ParallaxTarget(center, m.geom.CenterX, m.geom.ViewportWidth)
			m.comp.AnimateParallax(i, px, py)
		}

		d := center - m.geom.CenterX
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	m.centered = best
	m.frame = m.comp.Frame(m.geom)

	if m.statusMsg != "" && time.Since(m.statusTime) > 4*time.Second {
		m.statusMsg = ""
	}
}

// nudge gives the carousel exactly one item width of travel: the
// friction series sums to v/(1-friction).
func (m *Model) nudge(dir float64) {
	m.state.Velocity += dir * m.geom.ItemWidth * (1 - motion.Friction)
}

func (m *Model) adjustVolume(delta float64) {
	m.volume += delta
	if m.volume < 0 {
		m.volume = 0
	}
	if m.volume > 1 {
		m.volume = 1
	}
	if m.preview != nil {
		m.preview.AdjustVolume(delta)
	}
}

func (m *Model) togglePlayback() (*Model, tea.Cmd) {
	if m.preview != nil {
		m.stopPreview()
		return m, nil
	}
	if m.centered < 0 || m.centered >= len(m.slots) {
		return m, nil
	}
	card := m.slots[m.centered].Card
	if !card.Playable() {
		m.setStatus("Not playable")
		return m, nil
	}
	slot := m.centered
	path := card.Path
	vol := m.volume
	return m, func() tea.Msg {
		p, err := player.Open(path, vol)
		return previewOpenedMsg{preview: p, slot: slot, err: err}
	}
}

func (m *Model) stopPreview() {
	if m.preview != nil {
		m.preview.Close()
		m.preview = nil
		m.previewSlot = -1
	}
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

func (m *Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}
	return m.frame + "\n" + m.statusLine() + "\n" + helpStyle.Render(helpText(m.preview != nil))
}

func (m *Model) statusLine() string {
	s := headerStyle.Render("whirl")
	if m.centered >= 0 && m.centered < len(m.slots) {
		card := m.slots[m.centered].Card
		s += "  " + titleStyle.Render(util.Ellipsis(card.Title, 40))
		if card.Subtitle != "" {
			s += " " + artistStyle.Render("— "+util.Ellipsis(card.Subtitle, 30))
		}
	}
	if m.preview != nil {
		state := "playing"
		if m.preview.Paused() {
			state = "paused"
		}
		pos := m.preview.Position()
		dur := m.preview.Duration()
		s += "  " + statusStyle.Render(fmt.Sprintf("%s %s %s / %s",
			state,
			renderProgressBar(pos.Seconds(), dur.Seconds(), 12),
			util.FormatDuration(pos),
			util.FormatDuration(dur)))
	}
	s += "  " + statusStyle.Render(renderVolumePercent(m.volume))
	if m.statusMsg != "" {
		s += "  " + statusStyle.Render(m.statusMsg)
	}
	return s
}
