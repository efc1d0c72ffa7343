package motion

import "math"

// Tunables for the carousel physics. Drag and fling use independent scale
// factors; they are separate knobs, not derived from a common formula.
const (
	// Friction multiplies velocity once per frame while coasting.
	Friction = 0.91
	// LerpSpeed is the fraction of the position gap the smoothed position
	// closes per frame.
	LerpSpeed = 0.1
	// WheelMultiplier converts a wheel delta into a velocity impulse.
	WheelMultiplier = 0.1
	// DragScale converts an active drag delta into a position shift.
	DragScale = 0.8
	// FlingScale converts release speed (points/sec) into coast velocity.
	FlingScale = 0.03
	// MaxFling bounds the velocity assigned on drag release.
	MaxFling = 30.0
	// NormFloor is the minimum viewport width used when normalizing a
	// card's distance from center, so narrow terminals don't exaggerate
	// the transform falloff.
	NormFloor = 900.0
)

// State is the shared motion state for one carousel. It is only mutated
// from Bubbletea's single-threaded Update loop: input handlers write it,
// the frame tick reads and integrates it.
type State struct {
	// Position is the raw accumulated scroll offset in points. It is
	// unbounded; wrapping happens at render time only.
	Position float64
	// Velocity is added to Position each frame while coasting and decays
	// geometrically. It is never forcibly zeroed; friction shrinks it
	// below visibility.
	Velocity float64
	// SmoothPosition trails Position through a single-pole low-pass
	// filter and is what the renderer actually uses.
	SmoothPosition float64
	// Dragging suppresses velocity integration while a pointer drag is
	// driving Position directly.
	Dragging bool
}

// Step advances the state by one frame. While a drag is active the drag
// handlers own Position, so integration and friction are skipped; the
// smoothing filter always runs.
func (s *State) Step() {
	if !s.Dragging {
		s.Position += s.Velocity
		s.Velocity *= Friction
	}
	s.SmoothPosition += (s.Position - s.SmoothPosition) * LerpSpeed
}

// Wrap maps x into [0, m) for m > 0, handling negative x.
func Wrap(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// EaseScale shapes a normalized distance t in [0,1]: quadratic ease-in
// below the midpoint, quadratic ease-out above. EaseScale(0)=0,
// EaseScale(0.5)=0.5, EaseScale(1)=1, monotone throughout.
func EaseScale(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
