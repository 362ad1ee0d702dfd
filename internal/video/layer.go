package video

import lru "github.com/hashicorp/golang-lru/v2"

// layerRegs is the 7-byte per-layer register block: CONFIG, MAPBASE,
// TILEBASE, HSCROLL_L, HSCROLL_H, VSCROLL_L, VSCROLL_H.
type layerRegs [7]uint8

const (
	lrConfig = 0
	lrMapBase = 1
	lrTileBase = 2
	lrHScrollL = 3
	lrHScrollH = 4
	lrVScrollL = 5
	lrVScrollH = 6
)

// layerProps is the derived record rebuilt whenever a layer's signature
// (CONFIG, MAPBASE, TILEBASE) changes. Scroll fields are refreshed in
// place on every scroll-only write without disturbing the cached record.
type layerProps struct {
	signature uint32

	colorDepth uint8 // bits per pixel: 1, 2, 4, or 8
	bitmapMode bool
	textMode   bool

	mapWidthTiles  uint32
	mapHeightTiles uint32
	tileWidth      uint32 // 8 or 16
	tileHeight     uint32 // 8 or 16

	mapBase  uint32
	tileBase uint32

	scrollX int32
	scrollY int32
}

func signatureOf(r *layerRegs) uint32 {
	return uint32(r[lrConfig])<<16 | uint32(r[lrMapBase])<<8 | uint32(r[lrTileBase])
}

func buildLayerProps(r *layerRegs) *layerProps {
	cfg := r[lrConfig]
	p := &layerProps{
		signature:  signatureOf(r),
		bitmapMode: cfg&0x04 != 0,
		mapBase:    uint32(r[lrMapBase]) << 9,
	}

	switch cfg & 0x03 {
	case 0:
		p.colorDepth = 1
	case 1:
		p.colorDepth = 2
	case 2:
		p.colorDepth = 4
	case 3:
		p.colorDepth = 8
	}
	p.textMode = p.colorDepth == 1 && !p.bitmapMode

	p.mapWidthTiles = 32 << ((cfg >> 4) & 0x3)
	p.mapHeightTiles = 32 << ((cfg >> 6) & 0x3)

	tb := r[lrTileBase]
	if tb&0x01 != 0 {
		p.tileWidth = 16
	} else {
		p.tileWidth = 8
	}
	if tb&0x02 != 0 {
		p.tileHeight = 16
	} else {
		p.tileHeight = 8
	}
	p.tileBase = uint32(tb>>2) << 11

	p.refreshScroll(r)
	return p
}

func (p *layerProps) refreshScroll(r *layerRegs) {
	p.scrollX = int32(uint16(r[lrHScrollL]) | uint16(r[lrHScrollH]&0x0F)<<8)
	p.scrollY = int32(uint16(r[lrVScrollL]) | uint16(r[lrVScrollH]&0x0F)<<8)
}

// layerCacheCapacity is the combined LRU capacity across both layers, per
// the per-layer signature cache design.
const layerCacheCapacity = 16

// layer owns the CPU-visible register block for one of the two layers plus
// its currently-bound derived record, sharing a single LRU cache of
// previously built records keyed by signature with its sibling layer.
type layer struct {
	regs layerRegs
	enabled bool

	current *layerProps
	cache   *lru.Cache[uint32, *layerProps]
}

func newLayer(cache *lru.Cache[uint32, *layerProps]) *layer {
	return &layer{cache: cache}
}

func (l *layer) writeRegister(reg uint8, v uint8) {
	switch reg {
	case lrConfig, lrMapBase, lrTileBase:
		l.regs[reg] = v
		l.rebind()
	case lrHScrollL, lrHScrollH, lrVScrollL, lrVScrollH:
		l.regs[reg] = v
		if l.current != nil {
			l.current.refreshScroll(&l.regs)
		}
	}
}

func (l *layer) readRegister(reg uint8) uint8 {
	if reg >= uint8(len(l.regs)) {
		return 0
	}
	return l.regs[reg]
}

func (l *layer) rebind() {
	sig := signatureOf(&l.regs)
	if l.current != nil && l.current.signature == sig {
		return
	}
	if l.current != nil {
		l.cache.Add(l.current.signature, l.current)
	}
	if hit, ok := l.cache.Get(sig); ok {
		hit.refreshScroll(&l.regs)
		l.current = hit
		l.cache.Remove(sig)
		return
	}
	l.current = buildLayerProps(&l.regs)
}

// ensure guarantees current is non-nil (a register reset may have cleared
// it without a register write happening).
func (l *layer) ensure() *layerProps {
	if l.current == nil {
		l.current = buildLayerProps(&l.regs)
	}
	return l.current
}
