package motion

import "math"

// Visual channel ranges. Each channel is a linear map of the eased
// distance ratio: 0 at viewport center, 1 at (or beyond) one normalized
// viewport width away.
const (
	ScaleMin      = 0.65
	RotateYMax    = 20.0 // degrees, signed toward center
	RotateXMax    = 6.0  // degrees, signed away from center
	DepthNear     = 120.0
	DepthFar      = -60.0
	TranslateYMax = 40.0
	BlurMax       = 6.0
	BrightnessMin = 0.6
	ParallaxXMax  = 40.0
	ParallaxYMax  = 10.0
)

// Params locates one card slot on the looped track for a given frame.
type Params struct {
	Index          int
	ItemWidth      float64
	TotalWidth     float64
	ViewportWidth  float64
	CenterX        float64
	SmoothPosition float64
}

// Transform is the full per-card visual state for one frame. It is
// recomputed from scratch every frame and never persisted.
type Transform struct {
	// X is the card's left edge in points after wrapping and recentering.
	X float64
	// Y is the vertical offset channel, 0 at center.
	Y float64
	// ScaleX and ScaleY shrink the card toward the edges.
	ScaleX, ScaleY float64
	// RotateY tilts the card around its vertical axis so both sides of
	// the track appear to face the center. RotateX counter-tilts around
	// the horizontal axis. Degrees.
	RotateY, RotateX float64
	// Depth orders cards front-to-back; larger is nearer.
	Depth float64
	// Blur is a softening radius in pixels.
	Blur float64
	// Brightness dims cards toward the edges, 1 at center.
	Brightness float64
}

// CenterX returns the horizontal center of the transformed card.
func (t Transform) CenterX(itemWidth float64) float64 {
	return t.X + itemWidth/2
}

// Compute derives the visual transform for one card slot. The wrapped
// coordinate range is recentered around the viewport center so the track
// repeats seamlessly in both directions.
func Compute(p Params) Transform {
	baseX := Wrap(float64(p.Index)*p.ItemWidth-p.SmoothPosition, p.TotalWidth)
	finalX := baseX - p.TotalWidth/2 + p.CenterX
	cardCenterX := finalX + p.ItemWidth/2

	dist := cardCenterX - p.CenterX
	norm := p.ViewportWidth
	if norm < NormFloor {
		norm = NormFloor
	}
	t := clamp(math.Abs(dist)/norm, 0, 1)
	e := EaseScale(t)

	// Left of center tilts one way, right of center the other.
	side := 1.0
	if dist > 0 {
		side = -1.0
	}

	scale := lerp(1, ScaleMin, e)
	return Transform{
		X:          finalX,
		Y:          lerp(0, TranslateYMax, e),
		ScaleX:     scale,
		ScaleY:     scale,
		RotateY:    side * RotateYMax * e,
		RotateX:    -side * RotateXMax * e,
		Depth:      lerp(DepthNear, DepthFar, e),
		Blur:       BlurMax * e,
		Brightness: lerp(1, BrightnessMin, e),
	}
}

// ParallaxTarget maps a card's signed distance from the viewport center
// onto the inner-art offset: a card at the left edge shifts its art right
// and slightly up, a card at the right edge the inverse. The result is a
// target only; the renderer animates toward it over time.
func ParallaxTarget(cardCenterX, centerX, viewportWidth float64) (px, py float64) {
	if viewportWidth <= 0 {
		return 0, 0
	}
	d := clamp((cardCenterX-centerX)/viewportWidth, -0.5, 0.5)
	return -2 * ParallaxXMax * d, 2 * ParallaxYMax * d
}
