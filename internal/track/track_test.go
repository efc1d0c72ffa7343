package track

import (
	"errors"
	"testing"

	"github.com/olivier-w/whirl/internal/deck"
)

func TestBuildReplicatesDeck(t *testing.T) {
	cards := []deck.Card{{Title: "a"}, {Title: "b"}}
	slots, err := Build(cards, Repeat)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for i, s := range slots {
		want := cards[i%2]
		if s.Card.Title != want.Title || s.Original != i%2 {
			t.Fatalf("slot %d = %q/%d, want %q/%d", i, s.Card.Title, s.Original, want.Title, i%2)
		}
	}
}

func TestBuildSingleCardTripled(t *testing.T) {
	slots, err := Build([]deck.Card{{Title: "only"}}, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	g := NewGeometry(len(slots), 1000)
	if g.TotalWidth != g.ItemWidth*3 {
		t.Fatalf("total width = %v, want 3x item width %v", g.TotalWidth, g.ItemWidth)
	}
}

func TestBuildEmptyDeckFails(t *testing.T) {
	_, err := Build(nil, Repeat)
	if !errors.Is(err, deck.ErrEmpty) {
		t.Fatalf("expected deck.ErrEmpty, got %v", err)
	}
}

func TestGeometryResize(t *testing.T) {
	g := NewGeometry(9, 1000)
	if g.TotalWidth <= 0 {
		t.Fatalf("total width must be positive, got %v", g.TotalWidth)
	}
	if g.CenterX != 500 {
		t.Fatalf("center = %v, want 500", g.CenterX)
	}

	g.Resize(2000)
	if g.CenterX != 1000 {
		t.Fatalf("center after resize = %v, want 1000", g.CenterX)
	}
	if g.ItemWidth != itemMax {
		t.Fatalf("item width should clamp at %v for wide viewports, got %v", itemMax, g.ItemWidth)
	}
	if g.TotalWidth != g.ItemWidth*9 {
		t.Fatalf("total width = %v, want %v", g.TotalWidth, g.ItemWidth*9)
	}

	g.Resize(100)
	if g.ItemWidth != itemMin {
		t.Fatalf("item width should clamp at %v for narrow viewports, got %v", itemMin, g.ItemWidth)
	}
}

func TestParamsCarryGeometry(t *testing.T) {
	g := NewGeometry(6, 1200)
	p := g.Params(4, 321.5)
	if p.Index != 4 || p.SmoothPosition != 321.5 {
		t.Fatalf("params index/smooth = %d/%v", p.Index, p.SmoothPosition)
	}
	if p.ItemWidth != g.ItemWidth || p.TotalWidth != g.TotalWidth || p.CenterX != g.CenterX {
		t.Fatal("params do not carry geometry scalars")
	}
}
