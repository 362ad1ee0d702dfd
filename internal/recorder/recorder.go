// Package recorder implements the GIF-recorder command state machine
// wired to the emulator-control register block. The frame encoder that
// would actually turn composed frames into a GIF is out of scope; this
// is only the transition logic a future encoder would sit behind.
package recorder

// Command values the emulator-control register accepts.
const (
	CommandNone   uint8 = 0
	CommandPause  uint8 = 1
	CommandResume uint8 = 2
	CommandSnap   uint8 = 3
)

// Phase is one of the recorder's four states.
type Phase uint8

const (
	Disabled Phase = iota
	Paused
	Active
	SingleFrame
)

// State is the recorder's command register and current phase. It
// satisfies memory.Recorder.
type State struct {
	phase   Phase
	command uint8
}

// New returns a disabled recorder, the power-on state.
func New() *State {
	return &State{phase: Disabled}
}

// Command returns the last command byte written, per the emulator-control
// register's read-back contract.
func (s *State) Command() uint8 {
	return s.command
}

// SetCommand applies a command, transitioning phase per the recorder's
// state machine: disabled ignores everything; paused and active toggle
// on resume/pause; snap moves any state to single-frame; a single-frame
// capture is expected to call FrameEmitted once consumed, returning the
// recorder to paused.
func (s *State) SetCommand(cmd uint8) {
	s.command = cmd
	if s.phase == Disabled {
		return
	}
	switch cmd {
	case CommandPause:
		if s.phase == Active {
			s.phase = Paused
		}
	case CommandResume:
		if s.phase == Paused {
			s.phase = Active
		}
	case CommandSnap:
		s.phase = SingleFrame
	}
}

// Enable moves the recorder from disabled to paused, the only way out of
// the disabled state.
func (s *State) Enable() {
	if s.phase == Disabled {
		s.phase = Paused
	}
}

// Disable returns the recorder to disabled regardless of current phase.
func (s *State) Disable() {
	s.phase = Disabled
}

// Phase reports the current state, for a frame encoder deciding whether
// to capture the current frame.
func (s *State) Phase() Phase {
	return s.phase
}

// FrameEmitted is called by a frame encoder once it has consumed a
// single-frame capture, returning the recorder to paused.
func (s *State) FrameEmitted() {
	if s.phase == SingleFrame {
		s.phase = Paused
	}
}
