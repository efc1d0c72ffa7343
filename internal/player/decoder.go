package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// openSource picks a decoder by file extension.
func openSource(f *os.File) (pcmSource, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Source(f)
	case ".wav":
		return newWAVSource(f)
	case ".flac":
		return newFLACSource(f)
	case ".ogg":
		return newOGGSource(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

func clamp16(s int) int16 {
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}

// --- MP3 ---

// go-mp3 always emits 16-bit stereo at the file's sample rate.
type mp3Source struct {
	dec *mp3.Decoder
}

func newMP3Source(f *os.File) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Source{dec: dec}, nil
}

func (s *mp3Source) Read(p []byte) (int, error) { return s.dec.Read(p) }
func (s *mp3Source) SampleRate() int            { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int              { return 2 }
func (s *mp3Source) Duration() time.Duration {
	bps := s.dec.SampleRate() * 4
	if bps == 0 {
		return 0
	}
	return time.Duration(float64(s.dec.Length()) / float64(bps) * float64(time.Second))
}

// --- WAV ---

type wavSource struct {
	file        *os.File
	rest        []byte
	sampleRate  int
	channels    int
	srcBitDepth int
	duration    time.Duration
}

func newWAVSource(f *os.File) (*wavSource, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	dur, _ := dec.Duration()
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	return &wavSource{
		file:        f,
		sampleRate:  int(dec.SampleRate),
		channels:    int(dec.NumChans),
		srcBitDepth: int(dec.BitDepth),
		duration:    dur,
	}, nil
}

// Read streams raw PCM from the file, widening or narrowing samples to
// 16-bit as it goes.
func (s *wavSource) Read(p []byte) (int, error) {
	if len(s.rest) > 0 {
		n := copy(p, s.rest)
		s.rest = s.rest[n:]
		return n, nil
	}

	srcBytes := s.srcBitDepth / 8
	wantSamples := len(p) / 2
	if wantSamples == 0 {
		wantSamples = 1
	}
	buf := make([]byte, wantSamples*srcBytes)
	n, err := io.ReadFull(s.file, buf)
	samples := n / srcBytes
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	out := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		off := i * srcBytes
		var sample int
		switch s.srcBitDepth {
		case 8: // unsigned
			sample = (int(buf[off]) - 128) << 8
		case 16:
			sample = int(int16(binary.LittleEndian.Uint16(buf[off:])))
		case 24:
			v := int32(buf[off]) | int32(buf[off+1])<<8 | int32(buf[off+2])<<16
			if v&0x800000 != 0 {
				v |= ^int32(0xFFFFFF)
			}
			sample = int(v >> 8)
		case 32:
			sample = int(int32(binary.LittleEndian.Uint32(buf[off:])) >> 16)
		default:
			return 0, fmt.Errorf("unsupported WAV bit depth: %d", s.srcBitDepth)
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(clamp16(sample)))
	}

	written := copy(p, out)
	if written < len(out) {
		s.rest = out[written:]
	}
	return written, nil
}

func (s *wavSource) SampleRate() int         { return s.sampleRate }
func (s *wavSource) Channels() int           { return s.channels }
func (s *wavSource) Duration() time.Duration { return s.duration }

// --- FLAC ---

type flacSource struct {
	stream     *flac.Stream
	rest       []byte
	sampleRate int
	channels   int
	bps        int
	duration   time.Duration
}

func newFLACSource(f *os.File) (*flacSource, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	var dur time.Duration
	if info.SampleRate > 0 {
		dur = time.Duration(float64(info.NSamples) / float64(info.SampleRate) * float64(time.Second))
	}
	return &flacSource{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bps:        int(info.BitsPerSample),
		duration:   dur,
	}, nil
}

func (s *flacSource) Read(p []byte) (int, error) {
	if len(s.rest) > 0 {
		n := copy(p, s.rest)
		s.rest = s.rest[n:]
		return n, nil
	}

	frame, err := s.stream.ParseNext()
	if err != nil {
		return 0, err
	}
	nSamples := int(frame.Subframes[0].NSamples)
	out := make([]byte, nSamples*s.channels*2)
	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < s.channels; ch++ {
			sample := int(frame.Subframes[ch].Samples[i])
			switch {
			case s.bps > 16:
				sample >>= s.bps - 16
			case s.bps < 16:
				sample <<= 16 - s.bps
			}
			binary.LittleEndian.PutUint16(out[(i*s.channels+ch)*2:], uint16(clamp16(sample)))
		}
	}

	written := copy(p, out)
	if written < len(out) {
		s.rest = out[written:]
	}
	return written, nil
}

func (s *flacSource) SampleRate() int         { return s.sampleRate }
func (s *flacSource) Channels() int           { return s.channels }
func (s *flacSource) Duration() time.Duration { return s.duration }

// --- OGG Vorbis ---

type oggSource struct {
	reader   *oggvorbis.Reader
	duration time.Duration
}

func newOGGSource(f *os.File) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	var dur time.Duration
	if reader.SampleRate() > 0 {
		dur = time.Duration(float64(reader.Length()) / float64(reader.SampleRate()) * float64(time.Second))
	}
	return &oggSource{reader: reader, duration: dur}, nil
}

func (s *oggSource) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/2)
	if len(samples) == 0 {
		samples = make([]float32, 1)
	}
	n, err := s.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		v := samples[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(int16(v*32767)))
	}
	return n * 2, nil
}

func (s *oggSource) SampleRate() int         { return s.reader.SampleRate() }
func (s *oggSource) Channels() int           { return s.reader.Channels() }
func (s *oggSource) Duration() time.Duration { return s.duration }
