package main

import (
	"fmt"

	"github.com/olivier-w/whirl/internal/deck"
	"github.com/olivier-w/whirl/internal/track"
	"github.com/olivier-w/whirl/internal/ui"
)

// buildCarouselModel loads the cards from dir and assembles the
// carousel model around them.
func buildCarouselModel(dir string) (*ui.Model, error) {
	cards, err := deck.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading deck %s: %w", dir, err)
	}
	slots, err := track.Build(cards, track.Repeat)
	if err != nil {
		return nil, err
	}
	return ui.New(slots), nil
}
