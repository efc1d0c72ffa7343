package media

import (
	"strings"
	"testing"
)

func TestIsAudioExtCaseInsensitive(t *testing.T) {
	for _, ext := range []string{".mp3", ".MP3", ".Flac", ".ogg", ".wav"} {
		if !IsAudioExt(ext) {
			t.Fatalf("expected %s to be a supported audio ext", ext)
		}
	}
	if IsAudioExt(".png") || IsAudioExt(".txt") {
		t.Fatal("non-audio extension reported as audio")
	}
}

func TestIsCardExtCoversBothFamilies(t *testing.T) {
	for _, ext := range []string{".mp3", ".jpeg", ".png"} {
		if !IsCardExt(ext) {
			t.Fatalf("expected %s to be a card source", ext)
		}
	}
	if IsCardExt(".m3u") {
		t.Fatal("playlist extension should not be a card source")
	}
}

func TestSupportedExtsListMatchesTables(t *testing.T) {
	list := SupportedExtsList()
	for ext := range audioExts {
		if !strings.Contains(list, ext) {
			t.Fatalf("expected ext list to include %s, got %q", ext, list)
		}
	}
	for ext := range imageExts {
		if !strings.Contains(list, ext) {
			t.Fatalf("expected ext list to include %s, got %q", ext, list)
		}
	}
}
