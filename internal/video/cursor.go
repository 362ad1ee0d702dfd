package video

// incrementTable is the 32-entry signed step table selected by the 5-bit
// increment code carried in the high address-cursor register.
var incrementTable = [32]int32{
	0, 0,
	1, -1, 2, -2, 4, -4, 8, -8,
	16, -16, 32, -32, 64, -64,
	128, -128, 256, -256, 512, -512,
	40, -40, 80, -80, 160, -160, 320, -320, 640, -640,
}

// cursor is one of the two auto-incrementing video-space address engines
// exposed through registers $00-$04.
type cursor struct {
	addr  uint32 // 17-bit video address
	incr  uint8  // 5-bit code into incrementTable
	latch uint8  // byte pre-fetched on the previous load, returned by the next read
}

func (c *cursor) setLow(v uint8) {
	c.addr = (c.addr &^ 0xFF) | uint32(v)
}

func (c *cursor) setMid(v uint8) {
	c.addr = (c.addr &^ 0xFF00) | uint32(v)<<8
}

// setHigh takes the combined high-address-bit/increment-code byte: bit 0 is
// address bit 16, bits 1-5 are (if you read some board layouts) shifted
// differently, but here bit0 carries address bit16 and bits 3-7 carry the
// increment code so the common case (addrbit16=0) maps the increment code
// to the natural top bits of the byte.
func (c *cursor) setHigh(v uint8) {
	c.addr = (c.addr &^ 0x10000) | uint32(v&0x01)<<16
	c.incr = v >> 3
}

func (c *cursor) high() uint8 {
	return uint8(c.addr>>16) | c.incr<<3
}

func (c *cursor) step() {
	c.addr = uint32(int64(c.addr) + int64(incrementTable[c.incr&0x1F]))
	c.addr &= vramSize - 1
}

func (c *cursor) load(v *vram) {
	c.latch = v.read(c.addr)
}
