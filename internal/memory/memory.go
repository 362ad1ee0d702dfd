// Package memory implements the address-decoded bus: a flat low-RAM
// region, a banked RAM window, a banked ROM window, and the memory-mapped
// I/O page that the bus sub-decodes into the video, audio, VIA, mouse, and
// emulator-control registers.
package memory

import "log"

const (
	ioBase  = 0x9F00
	ioSize  = 0x0100
	ramTop  = ioBase // direct RAM occupies $0000..ioBase-1
	ramBankBase = 0xA000
	ramBankTop  = 0xC000
	ramBankSize = ramBankTop - ramBankBase
	romBase     = 0xC000
	romBankSize = 0x4000
)

// I/O page sub-ranges, as low bytes within $9F00-$9FFF. The distilled
// register layout only pins exact addresses for video, the two VIAs,
// mouse, and emulator control (see VideoRegisters/VIA/Mouse/EmulatorControl
// below); audio, the character-LCD stub, and the RTC stub are not
// address-pinned, so audio is placed in the otherwise-unused span
// immediately preceding video and the LCD and RTC stubs in the span
// between video and the first VIA.
const (
	audioLo   = 0x00
	audioHi   = 0x1F
	videoLo   = 0x20
	videoHi   = 0x3F
	lcdLo     = 0x40
	lcdHi     = 0x41
	rtcLo     = 0x42
	rtcHi     = 0x5F
	via1Lo    = 0x60
	via1Hi    = 0x6F
	via2Lo    = 0x70
	via2Hi    = 0x7F
	mouseLo   = 0xA0
	mouseHi   = 0xAF
	ctrlLo    = 0xB0
	ctrlHi    = 0xBF
)

// VideoRegisters is the 32-register video interface the bus routes
// $9F20-$9F3F reads and writes through.
type VideoRegisters interface {
	ReadRegister(reg uint8) uint8
	WriteRegister(reg uint8, v uint8)
}

// RegisterBank is the generic opaque-register-bank shape shared by the
// audio stub and the two VIA peripherals.
type RegisterBank interface {
	Read(reg uint8) uint8
	Write(reg uint8, v uint8)
}

// Recorder is the GIF-recorder command state machine (§6); its frame
// encoder is out of scope, only the transition logic is modeled here.
type Recorder interface {
	SetCommand(cmd uint8)
	Command() uint8
}

// Memory implements the 65C02 bus: direct RAM, banked RAM, banked ROM, and
// I/O page dispatch. It satisfies cpu.Memory without importing the cpu
// package, keeping the dependency direction bus -> {cpu, memory}.
type Memory struct {
	ram [ioBase]uint8

	ramBanks    []uint8
	numRAMBanks int
	ramBank     uint8

	romBanks    []uint8
	numROMBanks int
	romBank     uint8

	Video    VideoRegisters
	Audio    RegisterBank
	VIA1     RegisterBank
	VIA2     RegisterBank
	Recorder Recorder

	cycleCounter func() uint32

	debugFlag      uint8
	videoLogFlag   uint8
	keyboardLogFlag uint8
	echoMode       uint8
	saveOnExit     uint8
	keymap         uint8
	ledStatus      uint8

	debugEnabled bool
}

// New creates a memory bus with the given RAM and ROM bank counts. Counts
// of zero or less are clamped to 1 (modular bank reduction against zero
// would divide by zero).
func New(numRAMBanks, numROMBanks int) *Memory {
	if numRAMBanks < 1 {
		numRAMBanks = 1
	}
	if numROMBanks < 1 {
		numROMBanks = 1
	}
	return &Memory{
		ramBanks:    make([]uint8, numRAMBanks*ramBankSize),
		numRAMBanks: numRAMBanks,
		romBanks:    make([]uint8, numROMBanks*romBankSize),
		numROMBanks: numROMBanks,
	}
}

// EnableDebug toggles trace logging of programmer-visible faults.
func (m *Memory) EnableDebug(enable bool) {
	m.debugEnabled = enable
}

// SetCycleCounter wires the CPU's live cycle counter into emulator-control
// registers 8-11.
func (m *Memory) SetCycleCounter(fn func() uint32) {
	m.cycleCounter = fn
}

// LoadROMBank copies data into one bank of banked ROM, truncating to the
// bank size. ROM image loading itself (file formats, headers) is out of
// scope; this is the raw byte-copy primitive a loader would call.
func (m *Memory) LoadROMBank(bank int, data []byte) {
	if bank < 0 || bank >= m.numROMBanks {
		return
	}
	n := len(data)
	if n > romBankSize {
		n = romBankSize
	}
	copy(m.romBanks[bank*romBankSize:], data[:n])
}

// LoadLowRAM seeds the direct-RAM region, for test fixtures and the
// external loader.
func (m *Memory) LoadLowRAM(data []byte) {
	n := copy(m.ram[:], data)
	_ = n
}

func (m *Memory) effectiveRAMBank() int {
	return int(m.ramBank) % m.numRAMBanks
}

func (m *Memory) effectiveROMBank() int {
	return int(m.romBank) % m.numROMBanks
}

// Read implements the CPU-facing, side-effecting bus read.
func (m *Memory) Read(addr uint16) uint8 {
	switch {
	case addr < ramTop:
		return m.ram[addr]
	case addr < ramBankBase:
		return m.ioRead(addr)
	case addr < ramBankTop:
		offset := m.effectiveRAMBank()*ramBankSize + int(addr-ramBankBase)
		return m.ramBanks[offset]
	default:
		offset := m.effectiveROMBank()*romBankSize + int(addr-romBase)
		return m.romBanks[offset]
	}
}

// Write implements the CPU-facing, side-effecting bus write.
func (m *Memory) Write(addr uint16, v uint8) {
	switch {
	case addr < ramTop:
		m.ram[addr] = v
	case addr < ramBankBase:
		m.ioWrite(addr, v)
	case addr < ramBankTop:
		offset := m.effectiveRAMBank()*ramBankSize + int(addr-ramBankBase)
		m.ramBanks[offset] = v
	default:
		// Banked ROM writes are ignored.
	}
}

// DebugRead performs a side-effect-free read with an explicit RAM/ROM bank
// override, for tooling (memory dumps, disassembly) that must not disturb
// address cursors or probe PCM/PSG state.
func (m *Memory) DebugRead(addr uint16, bank uint8) uint8 {
	switch {
	case addr < ramTop:
		return m.ram[addr]
	case addr < ramBankBase:
		return 0 // debug reads never dispatch into I/O side effects
	case addr < ramBankTop:
		offset := (int(bank)%m.numRAMBanks)*ramBankSize + int(addr-ramBankBase)
		return m.ramBanks[offset]
	default:
		offset := (int(bank)%m.numROMBanks)*romBankSize + int(addr-romBase)
		return m.romBanks[offset]
	}
}

func (m *Memory) ioRead(addr uint16) uint8 {
	lo := uint8(addr - ioBase)
	switch {
	case lo >= audioLo && lo <= audioHi:
		if m.Audio != nil {
			return m.Audio.Read(lo - audioLo)
		}
		return 0
	case lo >= videoLo && lo <= videoHi:
		if m.Video != nil {
			return m.Video.ReadRegister(lo - videoLo)
		}
		return 0
	case lo >= lcdLo && lo <= lcdHi:
		return 0 // character-LCD stub: no readable state
	case lo >= rtcLo && lo <= rtcHi:
		return 0 // RTC stub
	case lo >= via1Lo && lo <= via1Hi:
		if m.VIA1 != nil {
			return m.VIA1.Read(lo - via1Lo)
		}
		return 0
	case lo >= via2Lo && lo <= via2Hi:
		if m.VIA2 != nil {
			return m.VIA2.Read(lo - via2Lo)
		}
		return 0
	case lo >= mouseLo && lo <= mouseHi:
		return 0xFF
	case lo >= ctrlLo && lo <= ctrlHi:
		return m.readControl(lo - ctrlLo)
	default:
		if m.debugEnabled {
			log.Printf("memory: read from unmapped I/O register $%04X", addr)
		}
		return 0
	}
}

func (m *Memory) ioWrite(addr uint16, v uint8) {
	lo := uint8(addr - ioBase)
	switch {
	case lo >= audioLo && lo <= audioHi:
		if m.Audio != nil {
			m.Audio.Write(lo-audioLo, v)
		}
	case lo >= videoLo && lo <= videoHi:
		if m.Video != nil {
			m.Video.WriteRegister(lo-videoLo, v)
		}
	case lo >= lcdLo && lo <= lcdHi, lo >= rtcLo && lo <= rtcHi:
		// stubs: writes accepted, no observable state.
	case lo >= via1Lo && lo <= via1Hi:
		if m.VIA1 != nil {
			m.VIA1.Write(lo-via1Lo, v)
		}
	case lo >= via2Lo && lo <= via2Hi:
		if m.VIA2 != nil {
			m.VIA2.Write(lo-via2Lo, v)
		}
	case lo >= mouseLo && lo <= mouseHi:
		// mouse stub: writes ignored, reads always $FF.
	case lo >= ctrlLo && lo <= ctrlHi:
		m.writeControl(lo-ctrlLo, v)
	default:
		if m.debugEnabled {
			log.Printf("memory: write $%02X to unmapped I/O register $%04X", v, addr)
		}
	}
}

func (m *Memory) readControl(reg uint8) uint8 {
	switch reg {
	case 0:
		return m.debugFlag
	case 1:
		return m.videoLogFlag
	case 2:
		return m.keyboardLogFlag
	case 3:
		return m.echoMode
	case 4:
		return m.saveOnExit
	case 5:
		if m.Recorder != nil {
			return m.Recorder.Command()
		}
		return 0
	case 8, 9, 10, 11:
		if m.cycleCounter == nil {
			return 0
		}
		return uint8(m.cycleCounter() >> (8 * (reg - 8)))
	case 13:
		return m.keymap
	case 14:
		return '1'
	case 15:
		return '6'
	default:
		return 0
	}
}

func (m *Memory) writeControl(reg uint8, v uint8) {
	switch reg {
	case 0:
		m.debugFlag = v
	case 1:
		m.videoLogFlag = v
	case 2:
		m.keyboardLogFlag = v
	case 3:
		m.echoMode = v
	case 4:
		m.saveOnExit = v
	case 5:
		if m.Recorder != nil {
			m.Recorder.SetCommand(v)
		}
	case 13:
		m.keymap = v
	case 15:
		m.ledStatus = v
	default:
		if m.debugEnabled {
			log.Printf("memory: write to non-existent emulator-control register %d", reg)
		}
	}
}

// SetRAMBank and SetROMBank are exposed for tests and for a bank-select I/O
// device the emulator-control block does not itself own on real hardware
// (the bank registers live in low RAM as ordinary bytes the firmware
// writes, not in the I/O page).
func (m *Memory) SetRAMBank(bank uint8) { m.ramBank = bank }
func (m *Memory) SetROMBank(bank uint8) { m.romBank = bank }
func (m *Memory) RAMBank() uint8        { return m.ramBank }
func (m *Memory) ROMBank() uint8        { return m.romBank }
