package video

import "testing"

func TestCursorAutoIncrement(t *testing.T) {
	v := New()
	v.WriteRegister(0, 0x00) // address low
	v.WriteRegister(1, 0x00) // address mid
	v.WriteRegister(2, 0x02<<3) // increment code 2 (step +1), addr high bit 0

	if got := v.ReadRegister(0); got != 0 {
		t.Fatalf("address low = %d, want 0", got)
	}
	v.ReadRegister(3)
	if got := v.ReadRegister(0); got != 1 {
		t.Errorf("address low after first read = %d, want 1", got)
	}
	v.ReadRegister(3)
	if got := v.ReadRegister(0); got != 2 {
		t.Errorf("address low after second read = %d, want 2", got)
	}
}

func TestPaletteIdempotence(t *testing.T) {
	v := New()
	v.composer[0] = 0x01 // VGA output, layers and sprites disabled
	v.composer[5] = 160  // hstop * 4 = 640, full width visible

	v.DebugWriteVRAM(paletteBase, 0xAB)
	v.DebugWriteVRAM(paletteBase+1, 0x05)
	v.composeLine(0)
	first := v.framebuffer[0]

	v.DebugWriteVRAM(paletteBase, 0xAB)
	v.DebugWriteVRAM(paletteBase+1, 0x05)
	v.composeLine(0)
	second := v.framebuffer[0]

	if first != second {
		t.Errorf("pixel changed after rewriting identical palette bytes: %06X -> %06X", first, second)
	}
}

func TestSpriteZOrderPriority(t *testing.T) {
	cases := []struct {
		z        uint8
		c0, c1   uint8
		sprite   uint8
		expected uint8
	}{
		{z: 3, c0: 5, c1: 7, sprite: 9, expected: 9},
		{z: 1, c0: 5, c1: 7, sprite: 9, expected: 7},
		{z: 0, c0: 5, c1: 7, sprite: 9, expected: 7},
	}
	for _, tc := range cases {
		if got := composePixel(tc.c0, tc.c1, tc.sprite, tc.z); got != tc.expected {
			t.Errorf("z=%d: composePixel = %d, want %d", tc.z, got, tc.expected)
		}
	}
}

func TestRasterLineIRQ(t *testing.T) {
	v := New()
	v.WriteRegister(8, 100) // raster compare low byte
	v.WriteRegister(6, 0x02) // enable line IRQ

	for i := 0; i < 60000 && v.scanLine <= 100; i++ {
		v.Step()
	}

	if v.isr&statusLine == 0 {
		t.Fatalf("raster-line status bit never set")
	}
}

func TestSpriteCollisionLatch(t *testing.T) {
	v := New()
	v.WriteRegister(6, 0x04) // enable collision IRQ
	v.composer[0] = 0x40     // sprite layer enabled

	writeSprite := func(i int, x, y uint8) {
		attrs := v.vram.spriteAttrs()
		base := i * 8
		attrs[base+0] = 0 // sprite data at vram address 0
		attrs[base+1] = 0 // 4bpp
		attrs[base+2] = x
		attrs[base+3] = 0 // 8x8
		attrs[base+4] = y
		attrs[base+5] = 0
		attrs[base+6] = 3<<4 | 0x1 // z=3, collision mask bit0
		attrs[base+7] = 0
	}
	writeSprite(0, 10, 10)
	writeSprite(1, 10, 10) // fully overlapping 8x8 box

	// Nonzero sprite pixel data so both sprites draw a visible pixel.
	v.DebugWriteVRAM(0, 0xFF)

	v.composeLine(10)

	if v.collisionLatch&0x1 == 0 {
		t.Errorf("collisionLatch = %#x, want bit0 set", v.collisionLatch)
	}
	if v.isr&statusCollision == 0 {
		t.Errorf("collision status bit not set")
	}
}
