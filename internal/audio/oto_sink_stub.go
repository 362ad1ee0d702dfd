//go:build headless
// +build headless

package audio

import "fmt"

// OtoSink is unavailable in headless builds; NewOtoSink always fails so
// callers fall back to NullSink.
type OtoSink struct{}

func NewOtoSink(sampleRate int) (*OtoSink, error) {
	return nil, fmt.Errorf("audio: oto sink unavailable in headless build")
}

func (s *OtoSink) Write(samples []float32) (int, error) { return len(samples), nil }
func (s *OtoSink) Close() error                          { return nil }
