// Package apu implements the audio synthesis chips as opaque register
// banks: a 16-channel pulse/noise generator (PSG) and an FM synthesizer
// share the $9F00-$9F1F I/O span, storing whatever the CPU writes and
// returning it unchanged on read. Neither chip actually synthesizes a
// waveform; that is out of scope. The bank still drains a silent PCM
// stream to whatever Sink is wired, so a host exercising the audio path
// end to end (open a device, keep it fed) has something real to drive.
package apu

import "x16emu/internal/audio"

const (
	numRegisters = 0x20
	psgHi        = 0x0F // PSG occupies the low half of the bank
)

// Bank is the opaque register bank the memory bus's I/O dispatch talks to
// through memory.RegisterBank.
type Bank struct {
	regs [numRegisters]uint8

	sink       audio.Sink
	sampleRate int
	accum      float64
	cyclesHz   float64
}

// New constructs a bank with a NullSink; SetSink wires a real one.
func New() *Bank {
	b := &Bank{sink: audio.NullSink{}, sampleRate: 44100, cyclesHz: 8_000_000}
	return b
}

// SetSink wires the PCM output destination. Passing nil restores the
// null sink.
func (b *Bank) SetSink(sink audio.Sink) {
	if sink == nil {
		sink = audio.NullSink{}
	}
	b.sink = sink
}

// Read returns whatever was last written to reg, per the stub contract.
func (b *Bank) Read(reg uint8) uint8 {
	return b.regs[reg&(numRegisters-1)]
}

// Write stores val at reg. PSG and FM registers are distinguished only
// for documentation; both halves behave identically.
func (b *Bank) Write(reg uint8, val uint8) {
	b.regs[reg&(numRegisters-1)] = val
}

// IsPSGRegister reports whether reg falls in the pulse/noise generator's
// half of the bank, for tooling that wants to label register dumps.
func (b *Bank) IsPSGRegister(reg uint8) bool {
	return reg&(numRegisters-1) <= psgHi
}

// Tick advances the stub's sample clock by the given number of CPU
// cycles, flushing silence to the sink once enough cycles have
// accumulated to represent one sample period. The register contents
// never influence the output; a real synthesizer would read them here.
func (b *Bank) Tick(cycles uint64) {
	b.accum += float64(cycles) / b.cyclesHz * float64(b.sampleRate)
	n := int(b.accum)
	if n == 0 {
		return
	}
	b.accum -= float64(n)
	silence := make([]float32, n)
	b.sink.Write(silence)
}

// Close releases the wired sink.
func (b *Bank) Close() error {
	return b.sink.Close()
}
