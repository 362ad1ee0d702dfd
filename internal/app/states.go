// Package app provides the save/restore collaborator edge. Binary
// snapshot encoding is out of scope; StateManager exists so a host
// embedding has a fixed place to plug a real encoder/decoder in against
// the layout internal/snapshot names.
package app

import (
	"fmt"

	"x16emu/internal/bus"
	"x16emu/internal/snapshot"
)

// StateManager is the named-only collaborator for snapshot save/restore.
// Capture builds the in-memory layout a real encoder would serialize;
// SaveSlot and LoadSlot are stubs a future on-disk format would replace.
type StateManager struct {
	saveDirectory string
}

// NewStateManager returns a StateManager rooted at saveDirectory. The
// directory is not created; persistence is not implemented.
func NewStateManager(saveDirectory string) *StateManager {
	return &StateManager{saveDirectory: saveDirectory}
}

// Capture builds a snapshot.State from the machine's current contents:
// the low-RAM block and the full video RAM block, the two regions §11
// names as byte-for-byte layout. The composer/layer/sprite blocks are
// left zero-valued; reading them back out of the video coprocessor's
// register file is a future encoder's job, not this collaborator's.
func (sm *StateManager) Capture(machine *bus.Machine) snapshot.State {
	var s snapshot.State

	for addr := 0; addr < len(s.LowRAM); addr++ {
		s.LowRAM[addr] = machine.Memory.Read(uint16(addr))
	}

	const vramSize = 128 * 1024
	s.VideoRAM = make([]uint8, vramSize)
	for addr := 0; addr < vramSize; addr++ {
		s.VideoRAM[addr] = machine.Video.DebugReadVRAM(uint32(addr))
	}

	return s
}

// SaveSlot reports that binary snapshot encoding is not implemented.
// The call signature exists so a host embedding's key bindings (save
// state to slot N) have somewhere to dispatch to once a real encoder is
// wired in.
func (sm *StateManager) SaveSlot(machine *bus.Machine, slot int) error {
	_ = sm.Capture(machine)
	return fmt.Errorf("snapshot save to slot %d not implemented: encoding is out of scope", slot)
}

// LoadSlot reports that binary snapshot decoding is not implemented.
func (sm *StateManager) LoadSlot(machine *bus.Machine, slot int) error {
	return fmt.Errorf("snapshot load from slot %d not implemented: decoding is out of scope", slot)
}

// GetSaveDirectory returns the configured save directory.
func (sm *StateManager) GetSaveDirectory() string {
	return sm.saveDirectory
}

// Cleanup releases state manager resources. There are none to release
// yet; kept for symmetry with the rest of the application's Cleanup
// chain.
func (sm *StateManager) Cleanup() error {
	return nil
}
