package render

import (
	"math"
	"strings"
	"testing"

	"github.com/olivier-w/whirl/internal/deck"
	"github.com/olivier-w/whirl/internal/motion"
	"github.com/olivier-w/whirl/internal/track"
)

func uniformArt(r, g, b uint8) *deck.Art {
	a := &deck.Art{W: deck.ArtSize, H: deck.ArtSize, Pix: make([]byte, deck.ArtSize*deck.ArtSize*3)}
	for i := 0; i < len(a.Pix); i += 3 {
		a.Pix[i] = r
		a.Pix[i+1] = g
		a.Pix[i+2] = b
	}
	return a
}

func restTransform(x float64) motion.Transform {
	return motion.Transform{X: x, ScaleX: 1, ScaleY: 1, Brightness: 1, Depth: motion.DepthNear}
}

func testGeometry(slots int, viewport float64) track.Geometry {
	return track.NewGeometry(slots, viewport)
}

func TestAnimatorConvergesToTarget(t *testing.T) {
	a := newAnimator(60)
	a.resize(1)
	a.retarget(0, 40, -10)
	for i := 0; i < 120; i++ {
		a.step()
	}
	px, py := a.at(0)
	if math.Abs(px-40) > 0.5 || math.Abs(py+10) > 0.5 {
		t.Fatalf("spring did not converge: %v,%v", px, py)
	}
}

func TestAnimatorLastWriteWins(t *testing.T) {
	a := newAnimator(60)
	a.resize(1)
	a.retarget(0, 100, 0)
	a.retarget(0, -20, 5)
	for i := 0; i < 120; i++ {
		a.step()
	}
	px, py := a.at(0)
	if math.Abs(px+20) > 0.5 || math.Abs(py-5) > 0.5 {
		t.Fatalf("expected newest target to win, got %v,%v", px, py)
	}
}

func TestAnimatorIgnoresOutOfRangeSlot(t *testing.T) {
	a := newAnimator(60)
	a.resize(2)
	a.retarget(5, 40, 40)
	a.retarget(-1, 40, 40)
	a.step()
	if px, py := a.at(5); px != 0 || py != 0 {
		t.Fatalf("out-of-range slot should stay zero, got %v,%v", px, py)
	}
}

func TestFrameDrawsCenteredCard(t *testing.T) {
	slots := []track.Slot{{Card: deck.Card{Title: "x", Art: uniformArt(250, 10, 10)}}}
	c := NewCompositor(slots, 60)
	c.mode = colorTrue
	c.Resize(60, 16)

	g := testGeometry(1, 60*PointsPerCell)
	tr := restTransform(g.CenterX - g.ItemWidth/2)
	c.SetTransform(0, tr)
	out := c.Frame(g)

	if lines := strings.Count(out, "\n") + 1; lines != 16 {
		t.Fatalf("frame has %d rows, want 16", lines)
	}
	r, _, _ := c.pixel(c.fbW/2, c.fbH/2)
	if r != 250 {
		t.Fatalf("center pixel r = %d, want card art 250", r)
	}
}

func TestFrameCullsOffscreenCard(t *testing.T) {
	slots := []track.Slot{{Card: deck.Card{Art: uniformArt(250, 250, 250)}}}
	c := NewCompositor(slots, 60)
	c.mode = colorTrue
	c.Resize(40, 10)

	g := testGeometry(1, 40*PointsPerCell)
	c.SetTransform(0, restTransform(g.ViewportWidth+100))
	c.Frame(g)

	r, gg, b := c.pixel(c.fbW/2, c.fbH/2)
	if r != bgColor[0] || gg != bgColor[1] || b != bgColor[2] {
		t.Fatalf("offscreen card leaked pixels: %d,%d,%d", r, gg, b)
	}
}

func TestFrameDepthOrdering(t *testing.T) {
	slots := []track.Slot{
		{Card: deck.Card{Art: uniformArt(250, 0, 0)}},
		{Card: deck.Card{Art: uniformArt(0, 250, 0)}},
	}
	c := NewCompositor(slots, 60)
	c.mode = colorTrue
	c.Resize(60, 16)

	g := testGeometry(2, 60*PointsPerCell)
	x := g.CenterX - g.ItemWidth/2
	far := restTransform(x)
	far.Depth = motion.DepthFar
	near := restTransform(x)
	near.Depth = motion.DepthNear
	c.SetTransform(0, far)
	c.SetTransform(1, near)
	c.Frame(g)

	r, gg, _ := c.pixel(c.fbW/2, c.fbH/2)
	if r != 0 || gg != 250 {
		t.Fatalf("nearer card should win the overlap, got r=%d g=%d", r, gg)
	}
}

func TestBrightnessDimsPixels(t *testing.T) {
	slots := []track.Slot{{Card: deck.Card{Art: uniformArt(200, 200, 200)}}}
	c := NewCompositor(slots, 60)
	c.mode = colorTrue
	c.Resize(60, 16)

	g := testGeometry(1, 60*PointsPerCell)
	tr := restTransform(g.CenterX - g.ItemWidth/2)
	tr.Brightness = 0.6
	c.SetTransform(0, tr)
	c.Frame(g)

	r, _, _ := c.pixel(c.fbW/2, c.fbH/2)
	if r != 120 {
		t.Fatalf("dimmed pixel = %d, want 120", r)
	}
}

func TestArtlessCardDrawsFlatAndSkipsParallax(t *testing.T) {
	slots := []track.Slot{{Card: deck.Card{Title: "no art"}}}
	c := NewCompositor(slots, 60)
	c.mode = colorTrue
	c.Resize(60, 16)

	// Parallax on an artless card is a no-op, not a panic.
	c.AnimateParallax(0, 40, 10)
	if c.anim.tgtX[0] != 0 {
		t.Fatal("artless card should ignore parallax requests")
	}

	g := testGeometry(1, 60*PointsPerCell)
	c.SetTransform(0, restTransform(g.CenterX-g.ItemWidth/2))
	c.Frame(g)
	r, gg, b := c.pixel(c.fbW/2, c.fbH/2)
	if r != flatColor[0] || gg != flatColor[1] || b != flatColor[2] {
		t.Fatalf("artless card fill = %d,%d,%d", r, gg, b)
	}
}

func TestSetTransformOutOfRangeIsIgnored(t *testing.T) {
	c := NewCompositor(nil, 60)
	c.Resize(10, 4)
	c.SetTransform(3, motion.Transform{})
	c.AnimateParallax(3, 1, 1)
	if out := c.Frame(testGeometry(0, 80)); out == "" {
		t.Fatal("empty track should still render background")
	}
}

func TestEncodeASCIIFallback(t *testing.T) {
	slots := []track.Slot{{Card: deck.Card{Art: uniformArt(255, 255, 255)}}}
	c := NewCompositor(slots, 60)
	c.mode = colorOff
	c.Resize(30, 8)

	g := testGeometry(1, 30*PointsPerCell)
	c.SetTransform(0, restTransform(g.CenterX-g.ItemWidth/2))
	out := c.Frame(g)
	if strings.Contains(out, "\x1b[") {
		t.Fatal("ASCII mode must not emit color escapes")
	}
	if !strings.Contains(out, "@") {
		t.Fatal("bright art should map to the densest ramp character")
	}
}
