// Package audio defines the out-of-scope PCM output sink the audio
// register bank's FIFO drains into. The register bank itself (internal/apu)
// has no dependency on this package being wired to anything; a host
// embedding supplies a Sink only if it wants to actually hear sound.
package audio

// Sink receives PCM samples drained from the audio register bank's FIFO.
// Write never blocks the register bank: a Sink that can't keep up drops
// or buffers samples on its own terms.
type Sink interface {
	Write(samples []float32) (int, error)
	Close() error
}

// NullSink discards every sample. It's the default when no Sink is wired,
// keeping the register bank runnable headless.
type NullSink struct{}

func (NullSink) Write(samples []float32) (int, error) { return len(samples), nil }
func (NullSink) Close() error                          { return nil }
