package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// chdirTemp creates a temp directory with the given files (path -> content),
// changes into it, and returns a restore func.
func chdirTemp(t *testing.T, files map[string]string) func() {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { os.Chdir(old) }
}

func TestBrowserListsDirectoriesWithCards(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"cover.png":        "data",
		"album/track.mp3":  "data",
		"album/cover.jpg":  "data",
		"empty/notes.txt":  "data",
		".hidden/song.mp3": "data",
	})
	defer restore()

	m := NewBrowser()
	if m.HasError() {
		t.Fatalf("unexpected error: %v", m.Error())
	}

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].(dirItem).name != "." {
		t.Fatalf("expected current directory first, got %q", items[0].(dirItem).name)
	}
	if items[1].(dirItem).name != "album" {
		t.Fatalf("expected album, got %q", items[1].(dirItem).name)
	}
	if items[1].(dirItem).cards != 2 {
		t.Fatalf("expected 2 cards in album, got %d", items[1].(dirItem).cards)
	}
}

func TestBrowserSelectionReturnsMessage(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"album/track.mp3": "data",
	})
	defer restore()

	m := NewBrowser()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}

	msg := cmd()
	selected, ok := msg.(BrowserSelectedMsg)
	if !ok {
		t.Fatalf("expected BrowserSelectedMsg, got %T", msg)
	}
	if selected.Path != "album" {
		t.Fatalf("expected album, got %q", selected.Path)
	}
}

func TestBrowserCancelReturnsMessage(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"album/track.mp3": "data",
	})
	defer restore()

	m := NewBrowser()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(BrowserCancelledMsg); !ok {
		t.Fatal("expected BrowserCancelledMsg")
	}
}

func TestBrowserEmptyDirectory(t *testing.T) {
	restore := chdirTemp(t, map[string]string{
		"notes.txt": "data",
	})
	defer restore()

	m := NewBrowser()
	if !m.Empty() {
		t.Fatal("expected empty browser")
	}
	if m.View() == "" {
		t.Fatal("expected hint view for empty browser")
	}
}
