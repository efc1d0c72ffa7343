package ui

import (
	"fmt"
	"strings"
)

// renderProgressBar draws a fixed-width elapsed/total bar for the
// preview readout.
func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}
