// Package render draws the carousel. The physics core hands it immediate
// per-card transforms plus eased parallax requests; it composes an RGB
// framebuffer each frame and converts it to half-block ANSI output in the
// terminal's best color mode.
package render

import (
	"math"
	"strings"

	"github.com/olivier-w/whirl/internal/deck"
	"github.com/olivier-w/whirl/internal/motion"
	"github.com/olivier-w/whirl/internal/track"
)

// PointsPerCell converts terminal cell X coordinates into carousel
// points. A cell maps to one framebuffer pixel horizontally and half a
// cell row vertically, so with ~8×16 px glyphs both framebuffer axes come
// out at 8 points per pixel.
const PointsPerCell = 8

const pointsPerPixel = 8

const (
	// Card box width as a share of the item width; the rest is margin.
	cardFraction = 0.85
	// Art border left unsampled so parallax can pan without clamping.
	artMargin = 16
	// Converts a parallax offset in points into art pixels.
	parallaxArtScale = 0.35
	// Fraction of card height lost at the far edge under full Y tilt.
	tiltShrink = 0.45
)

// Background and artless-card fill.
var (
	bgColor   = [3]uint8{14, 14, 18}
	flatColor = [3]uint8{70, 74, 86}
)

// Surface is the rendering contract the frame loop draws through.
// SetTransform applies immediately with no easing of its own; the
// position feeding it is already smoothed. AnimateParallax is the one
// eased channel: the offset glides to the requested target over roughly
// half a second, and repeated requests supersede each other.
type Surface interface {
	SetTransform(slot int, tr motion.Transform)
	AnimateParallax(slot int, px, py float64)
}

// Compositor implements Surface for a terminal viewport.
type Compositor struct {
	mode  colorMode
	slots []track.Slot
	trs   []motion.Transform
	anim  animator

	wCells, hCells int
	fbW, fbH       int
	fb             []byte
	order          []int
	sb             strings.Builder
}

// NewCompositor creates a compositor for the given track slots, sized
// later by Resize.
func NewCompositor(slots []track.Slot, fps int) *Compositor {
	c := &Compositor{
		mode:  detectColorMode(),
		slots: slots,
		trs:   make([]motion.Transform, len(slots)),
		anim:  newAnimator(fps),
		order: make([]int, len(slots)),
	}
	c.anim.resize(len(slots))
	return c
}

// Resize adopts new viewport cell dimensions.
func (c *Compositor) Resize(wCells, hCells int) {
	if wCells < 1 {
		wCells = 1
	}
	if hCells < 1 {
		hCells = 1
	}
	c.wCells = wCells
	c.hCells = hCells
	c.fbW = wCells
	c.fbH = hCells * 2
	c.fb = make([]byte, c.fbW*c.fbH*3)
}

// SetTransform stores the instantaneous transform for one slot.
func (c *Compositor) SetTransform(slot int, tr motion.Transform) {
	if slot < 0 || slot >= len(c.trs) {
		return
	}
	c.trs[slot] = tr
}

// AnimateParallax requests an eased glide of the slot's art toward the
// given offset. Slots without art ignore the request.
func (c *Compositor) AnimateParallax(slot int, px, py float64) {
	if slot < 0 || slot >= len(c.slots) || c.slots[slot].Card.Art == nil {
		return
	}
	c.anim.retarget(slot, px, py)
}

// Frame advances the parallax springs, composes all cards back-to-front
// and returns the ANSI string for the viewport.
func (c *Compositor) Frame(g track.Geometry) string {
	if c.fbW == 0 || c.fbH == 0 {
		return ""
	}
	c.anim.step()
	c.clear()

	// Painter's algorithm: farthest cards first.
	for i := range c.order {
		c.order[i] = i
	}
	trs := c.trs
	order := c.order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && trs[order[j]].Depth < trs[order[j-1]].Depth; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	for _, i := range order {
		c.drawCard(i, g)
	}
	return c.encode()
}

func (c *Compositor) clear() {
	for i := 0; i < len(c.fb); i += 3 {
		c.fb[i] = bgColor[0]
		c.fb[i+1] = bgColor[1]
		c.fb[i+2] = bgColor[2]
	}
}

// drawCard rasterizes one slot with its current transform: scale sizes
// the box, Y rotation forshortens the far edge into a trapezoid, X
// rotation shears the columns vertically, blur box-averages the art
// samples, and brightness dims the result.
func (c *Compositor) drawCard(i int, g track.Geometry) {
	tr := c.trs[i]
	if tr.X > g.ViewportWidth || tr.X+g.ItemWidth < 0 {
		return
	}
	art := c.slots[i].Card.Art

	cardPts := g.ItemWidth * cardFraction
	w := cardPts * tr.ScaleX / pointsPerPixel
	h := cardPts * tr.ScaleY / pointsPerPixel
	if w < 1 || h < 1 {
		return
	}
	centerX := (tr.X + g.ItemWidth/2) / pointsPerPixel
	centerY := float64(c.fbH)/2 + tr.Y/pointsPerPixel
	left := centerX - w/2

	shear := math.Tan(tr.RotateX*math.Pi/180) * w
	tilt := tr.RotateY / motion.RotateYMax // [-1, 1]

	px, py := c.anim.at(i)
	blur := int(tr.Blur/2 + 0.5)

	x0 := int(math.Floor(left))
	x1 := int(math.Ceil(left + w))
	for dx := x0; dx <= x1; dx++ {
		if dx < 0 || dx >= c.fbW {
			continue
		}
		u := (float64(dx) + 0.5 - left) / w
		if u < 0 || u > 1 {
			continue
		}

		// The far edge of a tilted card loses height: a card left of
		// center (positive RotateY) recedes on its left edge.
		hf := 1.0
		if tilt > 0 {
			hf = 1 - tiltShrink*tilt*(1-u)
		} else if tilt < 0 {
			hf = 1 + tiltShrink*tilt*u
		}
		colH := h * hf
		colTop := centerY + shear*(u-0.5) - colH/2

		y0 := int(math.Floor(colTop))
		y1 := int(math.Ceil(colTop + colH))
		for dy := y0; dy <= y1; dy++ {
			if dy < 0 || dy >= c.fbH {
				continue
			}
			v := (float64(dy) + 0.5 - colTop) / colH
			if v < 0 || v > 1 {
				continue
			}
			var r, gg, b uint8
			if art != nil {
				ax := artMargin + u*float64(deck.ArtSize-2*artMargin) + px*parallaxArtScale
				ay := artMargin + v*float64(deck.ArtSize-2*artMargin) + py*parallaxArtScale
				r, gg, b = sampleArt(art, int(ax), int(ay), blur)
			} else {
				r, gg, b = flatColor[0], flatColor[1], flatColor[2]
			}
			o := (dy*c.fbW + dx) * 3
			c.fb[o] = dim(r, tr.Brightness)
			c.fb[o+1] = dim(gg, tr.Brightness)
			c.fb[o+2] = dim(b, tr.Brightness)
		}
	}
}

// sampleArt reads one art pixel, box-averaging a (2r+1)² neighborhood
// when a blur radius is active.
func sampleArt(a *deck.Art, x, y, radius int) (uint8, uint8, uint8) {
	if radius <= 0 {
		return a.At(x, y)
	}
	var sr, sg, sb, n int
	for oy := -radius; oy <= radius; oy++ {
		for ox := -radius; ox <= radius; ox++ {
			r, g, b := a.At(x+ox, y+oy)
			sr += int(r)
			sg += int(g)
			sb += int(b)
			n++
		}
	}
	return uint8(sr / n), uint8(sg / n), uint8(sb / n)
}

func dim(v uint8, brightness float64) uint8 {
	return uint8(float64(v) * brightness)
}

// encode converts the framebuffer to terminal output: half-block cells
// with fg = top pixel and bg = bottom pixel, eliding repeated color
// escapes, or an ASCII luminance ramp when colors are off.
func (c *Compositor) encode() string {
	c.sb.Reset()
	c.sb.Grow(c.wCells * c.hCells * 24)

	if c.mode == colorOff {
		c.encodeASCII()
	} else {
		c.encodeHalfBlock()
	}
	return c.sb.String()
}

func (c *Compositor) encodeHalfBlock() {
	var lastFg, lastBg string
	for row := 0; row < c.hCells; row++ {
		for col := 0; col < c.wCells; col++ {
			tr, tg, tb := c.pixel(col, row*2)
			br, bg, bb := c.pixel(col, row*2+1)

			fg := fgColorSeq(c.mode, tr, tg, tb)
			bgc := bgColorSeq(c.mode, br, bg, bb)
			if fg != lastFg {
				c.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc != lastBg {
				c.sb.WriteString(bgc)
				lastBg = bgc
			}
			c.sb.WriteString("▀")
		}
		c.sb.WriteString(ansiReset)
		lastFg = ""
		lastBg = ""
		if row < c.hCells-1 {
			c.sb.WriteByte('\n')
		}
	}
}

func (c *Compositor) encodeASCII() {
	for row := 0; row < c.hCells; row++ {
		for col := 0; col < c.wCells; col++ {
			r, g, b := c.pixel(col, row*2)
			c.sb.WriteByte(brightnessChar(luminance(r, g, b)))
		}
		if row < c.hCells-1 {
			c.sb.WriteByte('\n')
		}
	}
}

func (c *Compositor) pixel(x, y int) (uint8, uint8, uint8) {
	o := (y*c.fbW + x) * 3
	return c.fb[o], c.fb[o+1], c.fb[o+2]
}
