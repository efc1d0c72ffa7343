// Package track replicates a finite deck into a looped sequence of card
// slots and owns the scalar geometry the wrap math depends on.
package track

import (
	"fmt"

	"github.com/olivier-w/whirl/internal/deck"
	"github.com/olivier-w/whirl/internal/motion"
)

// Repeat is how many consecutive copies of the deck make up the track.
// Three copies leave at least one full copy off-screen on either side of
// the viewport at any position.
const Repeat = 3

// Geometry bounds for one item (card plus trailing margin), in points.
const (
	itemFraction = 0.22
	itemMin      = 140.0
	itemMax      = 240.0
)

// Slot is one renderable position on the looped track. Slots sharing an
// Original index show the same content but are transformed independently.
type Slot struct {
	// Original indexes the source deck card this slot duplicates.
	Original int
	Card     deck.Card
}

// Build replicates cards repeat times end-to-end. An empty deck cannot
// establish a nonzero track width and is rejected.
func Build(cards []deck.Card, repeat int) ([]Slot, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("track: %w", deck.ErrEmpty)
	}
	if repeat < 1 {
		repeat = 1
	}
	slots := make([]Slot, 0, len(cards)*repeat)
	for r := 0; r < repeat; r++ {
		for i, c := range cards {
			slots = append(slots, Slot{Original: i, Card: c})
		}
	}
	return slots, nil
}

// Geometry is the derived scalar state of the track: uniform item width,
// total looped width, and the viewport extents, all in points. It is
// recomputed on resize; motion state is not touched by a resize.
type Geometry struct {
	ItemWidth     float64
	TotalWidth    float64
	ViewportWidth float64
	CenterX       float64

	slots int
}

// NewGeometry derives geometry for a track of slots cards in a viewport
// of the given width in points.
func NewGeometry(slots int, viewportWidth float64) Geometry {
	g := Geometry{slots: slots}
	g.Resize(viewportWidth)
	return g
}

// Resize recomputes the item width, total width and viewport center for a
// new viewport width. Item width scales with the viewport within fixed
// bounds; card count is unchanged.
func (g *Geometry) Resize(viewportWidth float64) {
	g.ViewportWidth = viewportWidth
	g.CenterX = viewportWidth / 2

	w := viewportWidth * itemFraction
	if w < itemMin {
		w = itemMin
	}
	if w > itemMax {
		w = itemMax
	}
	g.ItemWidth = w
	g.TotalWidth = w * float64(g.slots)
}

// Params assembles the per-card transform inputs for one frame.
func (g Geometry) Params(index int, smoothPosition float64) motion.Params {
	return motion.Params{
		Index:          index,
		ItemWidth:      g.ItemWidth,
		TotalWidth:     g.TotalWidth,
		ViewportWidth:  g.ViewportWidth,
		CenterX:        g.CenterX,
		SmoothPosition: smoothPosition,
	}
}
