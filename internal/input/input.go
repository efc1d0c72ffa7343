// Package input converts wheel, mouse-drag and touch-drag gestures into
// carousel motion. The three capabilities are wired independently and only
// meet through the shared motion state.
package input

import (
	"time"

	"github.com/olivier-w/whirl/internal/motion"
)

// Controller owns the ephemeral gesture state for one carousel. All
// methods must be called from the same goroutine that runs the frame
// loop; the host event loop delivers events serially.
type Controller struct {
	state *motion.State

	// Mouse drag session. Valid only while state.Dragging.
	dragStartX float64
	dragLastX  float64
	dragStart  time.Time

	// Touch tracking. Touch drives position directly and never injects
	// velocity, so it does not suppress coasting.
	touchActive bool
	touchLastX  float64
}

// New returns a Controller feeding the given motion state.
func New(s *motion.State) *Controller {
	return &Controller{state: s}
}

// Wheel adds a velocity impulse proportional to the wheel delta. The
// accumulated velocity stays within the same bound as a drag fling.
func (c *Controller) Wheel(deltaY float64) {
	v := c.state.Velocity + deltaY*motion.WheelMultiplier
	c.state.Velocity = clampFling(v)
}

// MousePress starts a drag session at x. Velocity is zeroed so decaying
// momentum does not fight the drag.
func (c *Controller) MousePress(x float64, at time.Time) {
	c.state.Dragging = true
	c.state.Velocity = 0
	c.dragStartX = x
	c.dragLastX = x
	c.dragStart = at
}

// MouseMove shifts the position by the scaled delta from the previous
// move event. No-op unless a drag is active.
func (c *Controller) MouseMove(x float64) {
	if !c.state.Dragging {
		return
	}
	dx := x - c.dragLastX
	c.state.Position -= dx * motion.DragScale
	c.dragLastX = x
}

// MouseRelease ends the drag session and converts the whole gesture into
// a coast velocity: total displacement over elapsed time, scaled and
// clamped. A zero or negative elapsed time leaves velocity untouched but
// still exits the drag.
func (c *Controller) MouseRelease(x float64, at time.Time) {
	if !c.state.Dragging {
		return
	}
	c.state.Dragging = false
	elapsed := at.Sub(c.dragStart).Seconds()
	if elapsed <= 0 {
		return
	}
	totalDx := x - c.dragStartX
	c.state.Velocity = clampFling(-(totalDx / elapsed) * motion.FlingScale)
}

// TouchStart begins direct positional tracking at x.
func (c *Controller) TouchStart(x float64) {
	c.touchActive = true
	c.touchLastX = x
}

// TouchMove applies the delta from the last tracked X straight to the
// position. Ignored without a preceding TouchStart.
func (c *Controller) TouchMove(x float64) {
	if !c.touchActive {
		return
	}
	c.state.Position -= x - c.touchLastX
	c.touchLastX = x
}

// TouchEnd clears tracking; a new TouchStart is required before touch
// movement resumes.
func (c *Controller) TouchEnd() {
	c.touchActive = false
}

func clampFling(v float64) float64 {
	if v > motion.MaxFling {
		return motion.MaxFling
	}
	if v < -motion.MaxFling {
		return -motion.MaxFling
	}
	return v
}
