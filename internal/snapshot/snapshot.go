// Package snapshot names the persisted-state layout a save/restore
// encoder would serialize, as a plain struct with no persistence logic
// of its own. Binary snapshot save/restore is out of scope; this exists
// so a future collaborator's encoder/decoder has a fixed contract to
// target.
package snapshot

// State is the full machine state in the order a snapshot would lay it
// out on disk: low RAM, then the optional banked-RAM block, then video
// RAM, then the video coprocessor's register-visible state.
type State struct {
	LowRAM    [0x9F00]uint8
	BankedRAM []uint8 // absent (nil) if the machine has a single RAM bank

	VideoRAM []uint8 // full 128 KiB video RAM

	Composer      ComposerState
	Palette       [256]uint16
	LayerRegs     [2]LayerState
	SpriteAttrs   [128]SpriteState
}

// ComposerState is the handful of composite-level registers (border
// color, output mode, active layer/sprite enables) that sit outside any
// per-layer or per-sprite block.
type ComposerState struct {
	DCVideo  uint8
	DCHScale uint8
	DCVScale uint8
	DCBorder uint8
}

// LayerState is one tile/bitmap/text layer's register block.
type LayerState struct {
	Config    uint8
	MapBase   uint32
	TileBase  uint32
	HScroll   uint16
	VScroll   uint16
}

// SpriteState is one sprite's 8-byte attribute record.
type SpriteState struct {
	Attrs [8]uint8
}
