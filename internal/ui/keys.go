package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(playing bool) string {
	s := "drag/wheel scroll  h/l nudge  enter "
	if playing {
		s += "stop"
	} else {
		s += "play"
	}
	s += "  space pause  +/- volume  q quit"
	return s
}
