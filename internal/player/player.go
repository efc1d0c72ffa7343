package player

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// The Oto context is process-global and created once; it cannot be torn
// down and recreated between previews.
var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outRate,
			ChannelCount: outChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// countingReader tracks bytes handed to the mixer so Position can be
// derived without decoder cooperation.
type countingReader struct {
	reader io.Reader
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

// Preview streams one audio file to the mixer. It is created playing and
// lives until Close; there is no seek and no restart.
type Preview struct {
	file     *os.File
	counter  *countingReader
	oto      *oto.Player
	duration time.Duration
	volume   float64
	paused   bool
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// Open starts playing the given audio file at the given volume.
func Open(path string, volume float64) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := openSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	ctx, err := initOto()
	if err != nil {
		f.Close()
		return nil, err
	}

	p := &Preview{
		file:     f,
		counter:  &countingReader{reader: adapt(src)},
		duration: src.Duration(),
		volume:   clampVolume(volume),
		done:     make(chan struct{}),
	}
	p.oto = ctx.NewPlayer(p.counter)
	p.oto.SetVolume(p.volume)
	p.oto.Play()

	go p.monitor()
	return p, nil
}

// monitor closes the done channel once the mixer drains the stream.
func (p *Preview) monitor() {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		playing := p.oto.IsPlaying()
		paused := p.paused
		p.mu.Unlock()

		if !playing && !paused {
			close(p.done)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done returns a channel that closes when playback finishes on its own.
// It does not close on Close; the owner initiated that.
func (p *Preview) Done() <-chan struct{} {
	return p.done
}

// TogglePause toggles between play and pause.
func (p *Preview) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.paused {
		p.oto.Play()
	} else {
		p.oto.Pause()
	}
	p.paused = !p.paused
}

// Paused reports whether playback is paused.
func (p *Preview) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the playback position in mixer time.
func (p *Preview) Position() time.Duration {
	secs := float64(p.counter.Pos()) / float64(bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total track duration, 0 when unknown.
func (p *Preview) Duration() time.Duration {
	return p.duration
}

// Volume returns the current volume in [0, 1].
func (p *Preview) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// AdjustVolume shifts the volume by delta, clamped to [0, 1].
func (p *Preview) AdjustVolume(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.volume = clampVolume(p.volume + delta)
	p.oto.SetVolume(p.volume)
}

// Close stops playback and releases the file. Safe to call twice.
func (p *Preview) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.oto.Pause()
	p.file.Close()
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
