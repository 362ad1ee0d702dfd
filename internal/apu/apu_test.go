package apu

import "testing"

func TestWriteReadRoundTrips(t *testing.T) {
	b := New()
	b.Write(0x05, 0x42)
	if got := b.Read(0x05); got != 0x42 {
		t.Errorf("Read(0x05) = %02X, want 42", got)
	}
}

func TestRegisterIndexWraps(t *testing.T) {
	b := New()
	b.Write(0x20, 0x99) // wraps to register 0
	if got := b.Read(0x00); got != 0x99 {
		t.Errorf("wrapped write not visible at register 0: got %02X", got)
	}
}

func TestIsPSGRegister(t *testing.T) {
	b := New()
	if !b.IsPSGRegister(0x00) || !b.IsPSGRegister(psgHi) {
		t.Errorf("expected low half to be PSG registers")
	}
	if b.IsPSGRegister(psgHi + 1) {
		t.Errorf("expected register above psgHi to be FM, not PSG")
	}
}

type countingSink struct{ samples int }

func (s *countingSink) Write(buf []float32) (int, error) {
	s.samples += len(buf)
	return len(buf), nil
}
func (s *countingSink) Close() error { return nil }

func TestTickDrainsSilenceToSink(t *testing.T) {
	b := New()
	sink := &countingSink{}
	b.SetSink(sink)

	// One full CPU second's worth of cycles should drain sampleRate samples.
	b.Tick(uint64(b.cyclesHz))
	if sink.samples == 0 {
		t.Errorf("expected Tick to have drained samples to the sink")
	}
}

func TestSetSinkNilRestoresNullSink(t *testing.T) {
	b := New()
	b.SetSink(nil)
	b.Tick(uint64(b.cyclesHz))
}
