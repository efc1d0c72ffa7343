package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/whirl/internal/media"
)

// BrowserSelectedMsg reports the deck directory picked in the browser.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg reports that the user backed out of the browser.
type BrowserCancelledMsg struct{}

type dirItem struct {
	name  string
	cards int
}

func (i dirItem) Title() string { return i.name }
func (i dirItem) Description() string {
	if i.cards == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", i.cards)
}
func (i dirItem) FilterValue() string { return i.name }

// BrowserModel lets the user pick a deck directory: the current
// directory or any immediate subdirectory containing card sources.
type BrowserModel struct {
	list list.Model
	err  error
}

// NewBrowser creates a browser scanning the current directory.
func NewBrowser() BrowserModel {
	entries, err := os.ReadDir(".")
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var items []list.Item
	if n := countCards("."); n > 0 {
		items = append(items, dirItem{name: ".", cards: n})
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if n := countCards(e.Name()); n > 0 {
			items = append(items, dirItem{name: e.Name(), cards: n})
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "whirl — pick a deck"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return BrowserModel{list: l}
}

// countCards counts the files in dir that could become cards.
func countCards(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if media.IsCardExt(strings.ToLower(filepath.Ext(e.Name()))) {
			n++
		}
	}
	return n
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

// Empty reports whether no deck candidates were found.
func (m BrowserModel) Empty() bool {
	return m.err == nil && len(m.list.Items()) == 0
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("whirl")
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(dirItem); ok {
				path := item.name
				return m, func() tea.Msg { return BrowserSelectedMsg{Path: path} }
			}
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return BrowserCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.Empty() {
		return "\n  " + headerStyle.Render("whirl") + "\n\n  " +
			statusStyle.Render("No decks here — need a directory with "+media.SupportedExtsList()) + "\n"
	}
	return m.list.View()
}
