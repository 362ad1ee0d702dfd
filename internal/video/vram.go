// Package video implements the VERA-style video coprocessor: 128 KiB of
// video RAM with auto-incrementing address cursors, 32 CPU-visible
// registers, two tile/bitmap layers, 128 sprites, a palette composer, and
// a raster-timed interrupt generator.
package video

const (
	vramSize = 128 * 1024

	psgBase     = 0x1F9C0
	paletteBase = 0x1FA00
	paletteSize = 0x200
	spriteBase  = 0x1FC00
	spriteSize  = 0x400
)

// vram holds the raw 128 KiB video RAM plus three pre-expanded shadow
// buffers, one per tile/bitmap color depth, so the renderer can index
// pixels directly instead of unpacking nibbles/bit-pairs on every sample.
type vram struct {
	data [vramSize]uint8

	shadow4 []uint8 // one byte per nibble: 2x
	shadow2 []uint8 // one byte per 2-bit field: 4x
	shadow1 []uint8 // one byte per bit: 8x
}

func newVRAM() *vram {
	return &vram{
		shadow4: make([]uint8, vramSize*2),
		shadow2: make([]uint8, vramSize*4),
		shadow1: make([]uint8, vramSize*8),
	}
}

func (v *vram) read(addr uint32) uint8 {
	return v.data[addr&(vramSize-1)]
}

func (v *vram) write(addr uint32, val uint8) {
	addr &= vramSize - 1
	v.data[addr] = val

	v.shadow4[addr*2+0] = val >> 4
	v.shadow4[addr*2+1] = val & 0x0F

	v.shadow2[addr*4+0] = (val >> 6) & 0x3
	v.shadow2[addr*4+1] = (val >> 4) & 0x3
	v.shadow2[addr*4+2] = (val >> 2) & 0x3
	v.shadow2[addr*4+3] = val & 0x3

	base := addr * 8
	for i := 0; i < 8; i++ {
		v.shadow1[base+uint32(i)] = (val >> (7 - i)) & 1
	}
}

// pixel4 returns one 4-bpp pixel (0-15) at the given pixel index within the
// 4-bpp expansion of video RAM.
func (v *vram) pixel4(idx uint32) uint8 { return v.shadow4[idx&(vramSize*2-1)] }
func (v *vram) pixel2(idx uint32) uint8 { return v.shadow2[idx&(vramSize*4-1)] }
func (v *vram) pixel1(idx uint32) uint8 { return v.shadow1[idx&(vramSize*8-1)] }

func (v *vram) palette() []uint8 { return v.data[paletteBase : paletteBase+paletteSize] }
func (v *vram) spriteAttrs() []uint8 { return v.data[spriteBase : spriteBase+spriteSize] }
