package bus

import "testing"

func TestNewPanicsNever(t *testing.T) {
	m := New(2, 1)
	if m.CPU == nil || m.Memory == nil || m.Video == nil {
		t.Fatalf("machine missing a wired collaborator")
	}
}

func TestStepAdvancesVideoAlongsideCPU(t *testing.T) {
	m := New(1, 1)
	// LDA #$00 / loop JMP $C000 so the CPU always has something to fetch
	// from its ROM bank.
	m.Memory.LoadROMBank(0, []byte{0xA9, 0x00, 0x4C, 0x00, 0xC0})
	m.CPU.Reset()
	m.CPU.PC = 0xC000

	before := m.Video.Frame()
	for i := 0; i < 200000; i++ {
		m.Step()
	}
	if m.Video.Frame() == before {
		t.Errorf("video coprocessor never completed a frame after 200000 steps")
	}
}

func TestRecorderCommandReachesMemory(t *testing.T) {
	m := New(1, 1)
	m.Memory.Write(0x9FB5, 2) // resume, but recorder starts disabled
	if m.Recorder.Phase() != 0 {
		t.Fatalf("expected disabled recorder to ignore resume")
	}
	m.Recorder.Enable()
	m.Memory.Write(0x9FB5, 2)
	if got := m.Memory.Read(0x9FB5); got != 2 {
		t.Errorf("control register readback = %d, want 2", got)
	}
}

func TestResetClearsCyclesNotRAM(t *testing.T) {
	m := New(1, 1)
	m.Memory.Write(0x0200, 0x77)
	m.Step()
	m.Reset()
	if got := m.Memory.Read(0x0200); got != 0x77 {
		t.Errorf("reset cleared RAM: got %02X, want 77", got)
	}
	if m.totalCycles != 0 {
		t.Errorf("totalCycles = %d after reset, want 0", m.totalCycles)
	}
}
