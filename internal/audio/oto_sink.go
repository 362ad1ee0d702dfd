//go:build !headless
// +build !headless

package audio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoSink is the one concrete Sink, backed by the host's audio device.
// It exists for the presentation test harness to have something real to
// play through; the register-bank logic never imports it.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
	pos    int
	buf    []float32
}

// NewOtoSink opens a float32 mono playback context at the given sample
// rate and returns a Sink that queues written samples for it to drain.
func NewOtoSink(sampleRate int) (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &OtoSink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// Read implements io.Reader for oto's player, draining queued float32
// samples as raw little-endian bytes and padding with silence once the
// queue runs dry.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n+4 <= len(p) {
		var sample float32
		if s.pos < len(s.buf) {
			sample = s.buf[s.pos]
			s.pos++
		}
		bits := math.Float32bits(sample)
		p[n] = byte(bits)
		p[n+1] = byte(bits >> 8)
		p[n+2] = byte(bits >> 16)
		p[n+3] = byte(bits >> 24)
		n += 4
	}
	if s.pos >= len(s.buf) {
		s.buf = s.buf[:0]
		s.pos = 0
	}
	return n, nil
}

func (s *OtoSink) Write(samples []float32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf[s.pos:], samples...)
	s.pos = 0
	return len(samples), nil
}

func (s *OtoSink) Close() error {
	if s.player != nil {
		return s.player.Close()
	}
	return nil
}
