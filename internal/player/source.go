// Package player plays a short audio preview for the centered card. It
// decodes mp3/wav/flac/ogg into 16-bit PCM and streams it to the system
// mixer; there is no seeking, the preview either plays out or is stopped.
package player

import (
	"io"
	"time"
)

// Output format fed to the mixer.
const (
	outRate     = 44100
	outChannels = 2
	bytesPerSec = outRate * outChannels * 2
)

// pcmSource streams 16-bit little-endian interleaved PCM at its native
// rate and channel count.
type pcmSource interface {
	io.Reader
	SampleRate() int
	Channels() int
	// Duration returns the total play time, or 0 when unknown.
	Duration() time.Duration
}

// adapt wraps src so its output matches the mixer format: mono sources
// get their frames duplicated to stereo, off-rate sources are repitched
// by nearest-frame selection.
func adapt(src pcmSource) io.Reader {
	var r io.Reader = src
	frameSize := src.Channels() * 2
	if src.Channels() == 1 {
		r = &monoToStereo{src: r}
		frameSize = 4
	}
	if src.SampleRate() != outRate {
		r = &rateConverter{
			src:       r,
			frameSize: frameSize,
			srcRate:   src.SampleRate(),
			frame:     make([]byte, frameSize),
		}
	}
	return r
}

// monoToStereo duplicates every 16-bit sample into two channels.
type monoToStereo struct {
	src  io.Reader
	rest []byte
}

func (m *monoToStereo) Read(p []byte) (int, error) {
	if len(m.rest) > 0 {
		n := copy(p, m.rest)
		m.rest = m.rest[n:]
		return n, nil
	}
	// Each mono sample (2 bytes) expands to 4 output bytes.
	mono := make([]byte, len(p)/4*2)
	if len(mono) < 2 {
		mono = make([]byte, 2)
	}
	n, err := m.src.Read(mono)
	n -= n % 2
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	out := make([]byte, n*2)
	for i := 0; i < n; i += 2 {
		out[i*2] = mono[i]
		out[i*2+1] = mono[i+1]
		out[i*2+2] = mono[i]
		out[i*2+3] = mono[i+1]
	}
	written := copy(p, out)
	if written < len(out) {
		m.rest = out[written:]
	}
	return written, nil
}

// rateConverter repitches a PCM stream to outRate by picking, for every
// output frame, the source frame nearest in time. Crude next to a proper
// resampler but inaudible for preview purposes.
type rateConverter struct {
	src       io.Reader
	frameSize int
	srcRate   int

	frame    []byte
	haveOne  bool
	srcIndex int64 // frames consumed from src
	outIndex int64 // frames produced
	err      error
}

func (rc *rateConverter) Read(p []byte) (int, error) {
	fs := rc.frameSize
	written := 0
	for written+fs <= len(p) {
		want := rc.outIndex * int64(rc.srcRate) / outRate
		for !rc.haveOne || rc.srcIndex <= want {
			if rc.err != nil {
				if written > 0 {
					return written, nil
				}
				return 0, rc.err
			}
			if _, err := io.ReadFull(rc.src, rc.frame); err != nil {
				rc.err = err
				if !rc.haveOne {
					if written > 0 {
						return written, nil
					}
					return 0, err
				}
				break
			}
			rc.haveOne = true
			rc.srcIndex++
		}
		if rc.err != nil && rc.srcIndex <= want {
			// Source exhausted and the cursor has moved past the last
			// frame we hold.
			if written > 0 {
				return written, nil
			}
			return 0, rc.err
		}
		copy(p[written:], rc.frame)
		written += fs
		rc.outIndex++
	}
	if written == 0 && len(p) > 0 {
		return 0, io.ErrShortBuffer
	}
	return written, nil
}
