package render

import "github.com/charmbracelet/harmonica"

// Parallax spring tuning: critically damped, ~0.45 s to settle at 60 fps.
const (
	parallaxFreq    = 10.0
	parallaxDamping = 1.0
)

// animator eases per-slot parallax offsets toward their latest targets
// with a harmonica spring. Retargeting mid-flight is safe: the spring
// continues from its current position and velocity, so a newer request
// supersedes the old one smoothly.
type animator struct {
	spring harmonica.Spring
	posX   []float64
	velX   []float64
	posY   []float64
	velY   []float64
	tgtX   []float64
	tgtY   []float64
}

func newAnimator(fps int) animator {
	return animator{spring: harmonica.NewSpring(harmonica.FPS(fps), parallaxFreq, parallaxDamping)}
}

func (a *animator) resize(n int) {
	if len(a.posX) == n {
		return
	}
	a.posX = make([]float64, n)
	a.velX = make([]float64, n)
	a.posY = make([]float64, n)
	a.velY = make([]float64, n)
	a.tgtX = make([]float64, n)
	a.tgtY = make([]float64, n)
}

// retarget records the newest parallax target for slot i. Last write wins
// within a frame.
func (a *animator) retarget(i int, px, py float64) {
	if i < 0 || i >= len(a.tgtX) {
		return
	}
	a.tgtX[i] = px
	a.tgtY[i] = py
}

// step advances every spring one frame.
func (a *animator) step() {
	for i := range a.posX {
		a.posX[i], a.velX[i] = a.spring.Update(a.posX[i], a.velX[i], a.tgtX[i])
		a.posY[i], a.velY[i] = a.spring.Update(a.posY[i], a.velY[i], a.tgtY[i])
	}
}

// at returns the current animated offset for slot i.
func (a *animator) at(i int) (px, py float64) {
	if i < 0 || i >= len(a.posX) {
		return 0, 0
	}
	return a.posX[i], a.posY[i]
}
