// Package bus wires the CPU, memory, video coprocessor, and PS/2 ports
// into the single cooperating "machine" the host embedding drives.
package bus

import (
	"x16emu/internal/apu"
	"x16emu/internal/cpu"
	"x16emu/internal/memory"
	"x16emu/internal/ps2"
	"x16emu/internal/recorder"
	"x16emu/internal/video"
)

// ps2CycleDivisor is how many CPU cycles accumulate before one PS/2
// clock tick fires, the "controlled cadence" §5 asks for rather than a
// 1:1 tick.
const ps2CycleDivisor = 8

// Machine is the top-level component: it owns one CPU, one memory bus,
// one video coprocessor, and a pair of PS/2 ports, and drives their step
// functions in the interleaved fashion §5 requires.
type Machine struct {
	CPU      *cpu.CPU
	Memory   *memory.Memory
	Video    *video.Video
	Audio    *apu.Bank
	Recorder *recorder.State
	PS2      [2]*ps2.Port
	Mouse    *ps2.Mouse

	totalCycles  uint64
	ps2Accum     uint64
	keyboardLine ps2.Lines
	mouseLine    ps2.Lines

	debugEnabled bool
}

// New builds a machine with the given RAM/ROM bank counts and wires every
// collaborator together: the video coprocessor into the memory bus's I/O
// dispatch, the memory bus into the CPU, and the CPU's cycle counter back
// into the memory bus's emulator-control registers.
func New(ramBanks, romBanks int) *Machine {
	m := &Machine{
		Memory:   memory.New(ramBanks, romBanks),
		Video:    video.New(),
		Audio:    apu.New(),
		Recorder: recorder.New(),
	}
	m.Memory.Video = m.Video
	m.Memory.Audio = m.Audio
	m.Memory.Recorder = m.Recorder
	m.CPU = cpu.New(m.Memory)
	m.Memory.SetCycleCounter(func() uint32 { return uint32(m.CPU.Cycles) })

	m.PS2[0] = &ps2.Port{}
	m.PS2[1] = &ps2.Port{}
	m.Mouse = ps2.NewMouse(m.PS2[1])

	m.Reset()
	return m
}

// EnableDebug turns on trace logging across every owned collaborator that
// supports it.
func (m *Machine) EnableDebug(enable bool) {
	m.debugEnabled = enable
	m.CPU.EnableDebug(enable)
	m.Memory.EnableDebug(enable)
}

// Reset restores the CPU and video coprocessor to their power-on state.
// Video RAM and low/banked RAM contents are left untouched, matching the
// 65C02 reset line's own behavior.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Video.Reset()
	m.totalCycles = 0
	m.ps2Accum = 0
}

// Step executes exactly one CPU instruction and advances the video
// coprocessor and PS/2 ports by the matching number of ticks, then
// services any interrupt the video coprocessor has raised before the
// next fetch. It returns the number of CPU cycles the instruction took.
func (m *Machine) Step() uint64 {
	m.CPU.SetIRQ(m.Video.IRQLine())
	m.CPU.ProcessPendingInterrupts()

	cycles := m.CPU.Step()
	for i := uint64(0); i < cycles; i++ {
		m.Video.Step()
		m.tickPS2()
	}
	m.Audio.Tick(cycles)
	m.totalCycles += cycles
	return cycles
}

func (m *Machine) tickPS2() {
	m.ps2Accum++
	if m.ps2Accum < ps2CycleDivisor {
		return
	}
	m.ps2Accum = 0
	m.keyboardLine = m.PS2[0].Step(m.keyboardLine)
	m.mouseLine = m.PS2[1].Step(m.mouseLine)
}

// Run executes instructions until at least budget CPU cycles have
// elapsed, per the host embedding's cooperative scheduling model.
func (m *Machine) Run(budget uint64) {
	var spent uint64
	for spent < budget {
		spent += m.Step()
	}
}

// Frame runs the machine until the video coprocessor's frame counter
// advances by one, for a host driver that paces itself by output frames
// rather than by a raw cycle budget.
func (m *Machine) Frame() {
	start := m.Video.Frame()
	for m.Video.Frame() == start {
		m.Step()
	}
}

// TotalCycles returns the cumulative CPU cycle count since the last reset.
func (m *Machine) TotalCycles() uint64 { return m.totalCycles }

// CPUState is a point-in-time snapshot of the CPU's programmer-visible
// state, for debug tooling that wants a value rather than a live pointer.
type CPUState struct {
	PC           uint16
	A, X, Y      uint8
	SP           uint8
	Cycles       uint64
	Instructions uint64
	Flags        CPUFlags
}

// CPUFlags is the decoded status register.
type CPUFlags struct {
	Sign, Overflow, Constant, Break, Decimal, Interrupt, Zero, Carry bool
}

// GetCPUState returns a snapshot of the CPU's current state.
func (m *Machine) GetCPUState() CPUState {
	s := m.CPU.Status
	return CPUState{
		PC: m.CPU.PC, A: m.CPU.A, X: m.CPU.X, Y: m.CPU.Y, SP: m.CPU.SP,
		Cycles: m.CPU.Cycles, Instructions: m.CPU.Instructions,
		Flags: CPUFlags{
			Carry:     s&cpu.FlagCarry != 0,
			Zero:      s&cpu.FlagZero != 0,
			Interrupt: s&cpu.FlagInterrupt != 0,
			Decimal:   s&cpu.FlagDecimal != 0,
			Break:     s&cpu.FlagBreak != 0,
			Constant:  s&cpu.FlagConstant != 0,
			Overflow:  s&cpu.FlagOverflow != 0,
			Sign:      s&cpu.FlagSign != 0,
		},
	}
}

// VideoState is a point-in-time snapshot of the video coprocessor's
// frame-timing state, for debug tooling.
type VideoState struct {
	ScanLine   int
	FrameCount uint32
	IRQActive  bool
}

// GetVideoState returns a snapshot of the video coprocessor's current
// frame-timing state.
func (m *Machine) GetVideoState() VideoState {
	return VideoState{
		ScanLine:   m.Video.ScanLine(),
		FrameCount: m.Video.Frame(),
		IRQActive:  m.Video.IRQLine(),
	}
}
