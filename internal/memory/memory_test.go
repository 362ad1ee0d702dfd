package memory

import "testing"

func TestBankModularAccess(t *testing.T) {
	m := New(2, 1)
	m.SetRAMBank(1)
	m.Write(0xA000, 0x55)
	m.SetRAMBank(5) // 5 mod 2 == 1
	if got := m.Read(0xA000); got != 0x55 {
		t.Errorf("bank=5 read = %02X, want 55 (same as bank=1)", got)
	}
}

func TestBankSwitchRoundTrip(t *testing.T) {
	m := New(2, 1)
	m.SetRAMBank(0)
	m.Write(0xA000, 0xAA)
	m.SetRAMBank(1)
	m.Write(0xA000, 0x55)
	m.SetRAMBank(0)
	if got := m.Read(0xA000); got != 0xAA {
		t.Errorf("bank=0 read after switching away = %02X, want AA", got)
	}
}

func TestROMBankedReadOnly(t *testing.T) {
	m := New(1, 2)
	m.LoadROMBank(0, []byte{0x11, 0x22, 0x33})
	m.LoadROMBank(1, []byte{0x44, 0x55, 0x66})
	m.SetROMBank(1)
	if got := m.Read(0xC000); got != 0x44 {
		t.Errorf("ROM bank 1 read = %02X, want 44", got)
	}
	m.Write(0xC000, 0xFF) // ignored
	if got := m.Read(0xC000); got != 0x44 {
		t.Errorf("write to ROM observed: got %02X, want unchanged 44", got)
	}
}

func TestDirectRAM(t *testing.T) {
	m := New(1, 1)
	m.Write(0x0200, 0x42)
	if got := m.Read(0x0200); got != 0x42 {
		t.Errorf("direct RAM read = %02X, want 42", got)
	}
}

type stubVideoRegs struct {
	regs [32]uint8
}

func (s *stubVideoRegs) ReadRegister(reg uint8) uint8   { return s.regs[reg] }
func (s *stubVideoRegs) WriteRegister(reg uint8, v uint8) { s.regs[reg] = v }

func TestVideoRegisterDispatch(t *testing.T) {
	m := New(1, 1)
	video := &stubVideoRegs{}
	m.Video = video
	m.Write(0x9F20, 0x77)
	if video.regs[0] != 0x77 {
		t.Errorf("video register 0 = %02X, want 77", video.regs[0])
	}
	if got := m.Read(0x9F20); got != 0x77 {
		t.Errorf("read back video register 0 = %02X, want 77", got)
	}
}

func TestMouseStubAlwaysFF(t *testing.T) {
	m := New(1, 1)
	if got := m.Read(0x9FA5); got != 0xFF {
		t.Errorf("mouse stub read = %02X, want FF", got)
	}
}

func TestEmulatorDetectionBytes(t *testing.T) {
	m := New(1, 1)
	if got := m.Read(0x9FBE); got != '1' {
		t.Errorf("detection byte 14 = %c, want '1'", got)
	}
	if got := m.Read(0x9FBF); got != '6' {
		t.Errorf("detection byte 15 = %c, want '6'", got)
	}
}

func TestDebugReadHasNoSideEffects(t *testing.T) {
	m := New(2, 1)
	m.SetRAMBank(0)
	m.Write(0xA000, 0x11)
	m.SetRAMBank(1)
	m.Write(0xA000, 0x22)
	if got := m.DebugRead(0xA000, 0); got != 0x11 {
		t.Errorf("debug read bank 0 = %02X, want 11", got)
	}
	// current bank register must be unaffected by the debug read's bank argument.
	if m.RAMBank() != 1 {
		t.Errorf("DebugRead mutated current RAM bank: %d", m.RAMBank())
	}
}
