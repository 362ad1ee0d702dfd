package video

import lru "github.com/hashicorp/golang-lru/v2"

// Interrupt status bits, shared by the enable register ($06) and the
// status register ($07).
const (
	statusVSYNC     = 0x01
	statusLine      = 0x02
	statusCollision = 0x04
	statusPCMLow    = 0x08
)

// Video is the VERA-style coprocessor: video RAM, two address cursors, 32
// CPU-visible registers, two layers, 128 sprites, and the scanline
// composer. It satisfies memory.VideoRegisters.
type Video struct {
	vram vram

	cursors [2]cursor
	addrSel uint8
	dcsel   uint8

	ien uint8
	isr uint8

	rasterLow      uint8
	collisionLatch uint8

	composer [8]uint8

	layerCache *lru.Cache[uint32, *layerProps]
	layer0     *layer
	layer1     *layer

	spriteAttrCache [spriteCount]*spriteProps

	pcmCtrl, pcmRate, pcmFIFO uint8
	spi                       [2]uint8

	scanX    float64
	scanLine int
	frame    uint32

	framebuffer [screenWidth * screenHeight]uint32
}

// New builds a VERA instance with its layer-property cache primed.
func New() *Video {
	cache, _ := lru.New[uint32, *layerProps](layerCacheCapacity)
	v := &Video{
		vram:       *newVRAM(),
		layerCache: cache,
	}
	v.layer0 = newLayer(cache)
	v.layer1 = newLayer(cache)
	return v
}

// Reset restores register state to power-on defaults without clearing
// video RAM, mirroring the $80-to-register-5 soft reset.
func (v *Video) Reset() {
	v.cursors = [2]cursor{}
	v.addrSel = 0
	v.dcsel = 0
	v.ien = 0
	v.isr = 0
	v.rasterLow = 0
	v.collisionLatch = 0
	v.composer = [8]uint8{}
	v.layer0.regs = layerRegs{}
	v.layer1.regs = layerRegs{}
	v.layer0.current = nil
	v.layer1.current = nil
	v.pcmCtrl, v.pcmRate, v.pcmFIFO = 0, 0, 0
	v.spi = [2]uint8{}
	v.scanX = 0
	v.scanLine = 0
}

func (v *Video) setStatus(bit uint8) {
	v.isr |= bit
}

// IRQLine reports whether any enabled interrupt source currently has its
// status bit set, per §5's "(status & enable) != 0" CPU-side check.
func (v *Video) IRQLine() bool {
	return v.isr&v.ien != 0
}

// Framebuffer returns the composed RGB framebuffer for presentation.
func (v *Video) Framebuffer() []uint32 { return v.framebuffer[:] }

// Frame returns the frame counter, incremented once per VSYNC wrap.
func (v *Video) Frame() uint32 { return v.frame }

// ScanLine returns the current scanline being composed, for debug tooling.
func (v *Video) ScanLine() int { return v.scanLine }

func (v *Video) activeCursor() *cursor { return &v.cursors[v.addrSel&1] }

func (v *Video) sprite(i int) *spriteProps {
	var raw [8]uint8
	copy(raw[:], v.vram.spriteAttrs()[i*8:i*8+8])
	sig := spriteSignature(&raw)
	if cached := v.spriteAttrCache[i]; cached != nil && cached.signature == sig {
		return cached
	}
	p := decodeSprite(&raw)
	v.spriteAttrCache[i] = p
	return p
}

// ReadRegister implements memory.VideoRegisters for $9F20-$9F3F.
func (v *Video) ReadRegister(reg uint8) uint8 {
	switch {
	case reg == 0:
		return uint8(v.activeCursor().addr)
	case reg == 1:
		return uint8(v.activeCursor().addr >> 8)
	case reg == 2:
		return v.activeCursor().high()
	case reg == 3, reg == 4:
		return v.dataRead()
	case reg == 5:
		return v.dcsel<<1 | v.addrSel
	case reg == 6:
		return v.ien
	case reg == 7:
		return v.isr | v.collisionLatch<<4
	case reg == 8:
		return v.rasterLow
	case reg >= 9 && reg <= 0x0C:
		return v.composer[uint8(v.dcsel)*4+(reg-9)]
	case reg >= 0x0D && reg <= 0x13:
		return v.layer0.readRegister(reg - 0x0D)
	case reg >= 0x14 && reg <= 0x1A:
		return v.layer1.readRegister(reg - 0x14)
	case reg == 0x1B:
		return v.pcmCtrl
	case reg == 0x1C:
		return v.pcmRate
	case reg == 0x1D:
		return v.pcmFIFO
	case reg == 0x1E || reg == 0x1F:
		return v.spi[reg-0x1E]
	default:
		return 0
	}
}

// WriteRegister implements memory.VideoRegisters for $9F20-$9F3F.
func (v *Video) WriteRegister(reg uint8, val uint8) {
	switch {
	case reg == 0:
		c := v.activeCursor()
		c.setLow(val)
		c.load(&v.vram)
	case reg == 1:
		c := v.activeCursor()
		c.setMid(val)
		c.load(&v.vram)
	case reg == 2:
		c := v.activeCursor()
		c.setHigh(val)
		c.load(&v.vram)
	case reg == 3, reg == 4:
		v.dataWrite(val)
	case reg == 5:
		if val == 0x80 {
			v.Reset()
			return
		}
		v.addrSel = val & 0x01
		v.dcsel = (val >> 1) & 0x01
	case reg == 6:
		v.ien = val
	case reg == 7:
		v.isr &^= val
		if val&0xF0 != 0 {
			v.collisionLatch &^= val >> 4
		}
	case reg == 8:
		v.rasterLow = val
	case reg >= 9 && reg <= 0x0C:
		v.composer[uint8(v.dcsel)*4+(reg-9)] = val
	case reg >= 0x0D && reg <= 0x13:
		v.layer0.writeRegister(reg-0x0D, val)
	case reg >= 0x14 && reg <= 0x1A:
		v.layer1.writeRegister(reg-0x14, val)
	case reg == 0x1B:
		v.pcmCtrl = val
	case reg == 0x1C:
		v.pcmRate = val
	case reg == 0x1D:
		v.pcmFIFO = val
	case reg == 0x1E || reg == 0x1F:
		v.spi[reg-0x1E] = val
	}
}

// dataRead returns the cursor's pre-latched byte, then advances the
// cursor and refills the latch for the next read.
func (v *Video) dataRead() uint8 {
	c := v.activeCursor()
	out := c.latch
	c.step()
	c.load(&v.vram)
	return out
}

// dataWrite stores to the cursor's current address, advances, and
// refreshes the latch so a following read observes the new position.
func (v *Video) dataWrite(val uint8) {
	c := v.activeCursor()
	v.vram.write(c.addr, val)
	c.step()
	c.load(&v.vram)
}

// DebugReadVRAM reads video RAM without touching either cursor, for
// tooling.
func (v *Video) DebugReadVRAM(addr uint32) uint8 { return v.vram.read(addr) }

// DebugWriteVRAM writes video RAM without advancing a cursor, for test
// fixtures that need to seed tile/sprite/palette data directly.
func (v *Video) DebugWriteVRAM(addr uint32, val uint8) { v.vram.write(addr, val) }
