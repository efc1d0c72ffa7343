package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/whirl/internal/player"
)

// FrameRate is the target refresh cadence of the carousel.
const FrameRate = 60

const frameInterval = time.Second / FrameRate

type frameMsg time.Time

type previewOpenedMsg struct {
	preview *player.Preview
	slot    int
	err     error
}

type previewEndedMsg struct {
	preview *player.Preview
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func watchPreview(p *player.Preview) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return previewEndedMsg{preview: p}
	}
}
