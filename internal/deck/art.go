package deck

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// ArtSize is the square pixel size all card art is resampled to. It is
// larger than the displayed window so the parallax offset can pan inside
// the art without running off its edges.
const ArtSize = 96

// Art is a card's image resampled to a fixed RGB24 buffer, row-major.
type Art struct {
	W, H int
	Pix  []byte
}

// At returns the pixel at x,y. Out-of-bounds coordinates clamp to the
// nearest edge so samplers can pan freely.
func (a *Art) At(x, y int) (r, g, b uint8) {
	if x < 0 {
		x = 0
	}
	if x >= a.W {
		x = a.W - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= a.H {
		y = a.H - 1
	}
	i := (y*a.W + x) * 3
	return a.Pix[i], a.Pix[i+1], a.Pix[i+2]
}

// decodeArt decodes encoded image bytes and resamples to ArtSize.
func decodeArt(data []byte) (*Art, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding art: %w", err)
	}
	return resample(img, ArtSize, ArtSize), nil
}

// decodeArtFile decodes an image file and resamples to ArtSize.
func decodeArtFile(path string) (*Art, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return resample(img, ArtSize, ArtSize), nil
}

// resample scales img to w×h with nearest-neighbor sampling.
func resample(img image.Image, w, h int) *Art {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	a := &Art{W: w, H: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		srcY := bounds.Min.Y + y*srcH/h
		for x := 0; x < w; x++ {
			srcX := bounds.Min.X + x*srcW/w
			r, g, b, _ := img.At(srcX, srcY).RGBA()
			i := (y*w + x) * 3
			a.Pix[i] = uint8(r >> 8)
			a.Pix[i+1] = uint8(g >> 8)
			a.Pix[i+2] = uint8(b >> 8)
		}
	}
	return a
}

// placeholderArt paints a two-tone diagonal gradient seeded by the title,
// so cards without embedded art still get a stable, distinct look.
func placeholderArt(seed string) *Art {
	h := fnv.New32a()
	h.Write([]byte(seed))
	v := h.Sum32()

	r1, g1, b1 := uint8(v>>16), uint8(v>>8), uint8(v)
	r2, g2, b2 := uint8(v>>24)|0x40, uint8(v>>12)|0x40, uint8(v>>4)|0x40

	a := &Art{W: ArtSize, H: ArtSize, Pix: make([]byte, ArtSize*ArtSize*3)}
	for y := 0; y < ArtSize; y++ {
		for x := 0; x < ArtSize; x++ {
			t := float64(x+y) / float64(2*ArtSize-2)
			i := (y*ArtSize + x) * 3
			a.Pix[i] = mix(r1, r2, t)
			a.Pix[i+1] = mix(g1, g2, t)
			a.Pix[i+2] = mix(b1, b2, t)
		}
	}
	return a
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
