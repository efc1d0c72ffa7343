// Package deck turns a directory of media files into carousel cards.
// Audio files contribute their ID3 title/artist and embedded cover art;
// image files become art-only cards.
package deck

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/olivier-w/whirl/internal/media"
)

// ErrEmpty is returned when a directory yields no cards. The carousel
// cannot establish a track width without at least one card, so this is
// fatal at startup.
var ErrEmpty = errors.New("deck: no cards found")

// Card is one visual unit of the carousel.
type Card struct {
	Title    string
	Subtitle string
	// Path is the playable audio file, empty for image-only cards.
	Path string
	// Art may be nil when the source had no usable image; the renderer
	// falls back to a flat fill and skips parallax for that card.
	Art *Art
}

// Playable reports whether the card has an audio source.
func (c Card) Playable() bool {
	return c.Path != ""
}

// Load scans dir (non-recursive) and builds one card per supported file,
// ordered by filename.
func Load(dir string) ([]Card, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var cards []Card
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !media.IsCardExt(ext) {
			continue
		}
		cards = append(cards, readCard(filepath.Join(dir, e.Name()), ext))
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Title < cards[j].Title })

	if len(cards) == 0 {
		return nil, ErrEmpty
	}
	return cards, nil
}

func readCard(path, ext string) Card {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if media.IsImageExt(ext) {
		art, err := decodeArtFile(path)
		if err != nil {
			art = placeholderArt(name)
		}
		return Card{Title: name, Art: art}
	}

	c := Card{Title: name, Path: path}
	if ext == ".mp3" {
		title, artist, art := readID3(path)
		if title != "" {
			c.Title = title
		}
		c.Subtitle = artist
		c.Art = art
	}
	if c.Art == nil {
		c.Art = placeholderArt(c.Title + c.Subtitle)
	}
	return c
}

// readID3 pulls title, artist and the first attached picture from an MP3.
// Any failure falls back to zero values; tags are an enrichment, never a
// reason to drop a card.
func readID3(path string) (title, artist string, art *Art) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", "", nil
	}
	defer tag.Close()

	title = strings.TrimSpace(tag.Title())
	artist = strings.TrimSpace(tag.Artist())

	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if a, err := decodeArt(pic.Picture); err == nil {
			art = a
			break
		}
	}
	return title, artist, art
}
