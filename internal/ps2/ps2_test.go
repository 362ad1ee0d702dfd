package ps2

import "testing"

// runFrame drives a port through one full 11-bit frame (idle lines the
// whole time) and returns the sequence of data-bit levels sampled while
// the clock line reads low ("data ready").
func runFrame(t *testing.T, p *Port) []bool {
	t.Helper()
	var bits []bool
	idle := Lines{Clk: true, Data: true}
	for i := 0; i < 11*2*holdCycles+4; i++ {
		out := p.Step(idle)
		if !out.Clk && p.sendState == 1 {
			bits = append(bits, out.Data)
		}
		if len(bits) == 11 {
			break
		}
	}
	return bits
}

func TestPS2FrameShape(t *testing.T) {
	p := &Port{}
	p.Enqueue(0x5A)

	bits := runFrame(t, p)
	if len(bits) != 11 {
		t.Fatalf("got %d sampled bits, want 11", len(bits))
	}

	if bits[0] {
		t.Errorf("start bit = 1, want 0")
	}
	want := []bool{false, true, false, true, true, false, true, false}
	for i, w := range want {
		if bits[1+i] != w {
			t.Errorf("data bit %d = %v, want %v", i, bits[1+i], w)
		}
	}

	ones := 0
	for _, b := range bits[:10] {
		if b {
			ones++
		}
	}
	if ones%2 != 1 {
		t.Errorf("total ones including parity = %d, want odd", ones)
	}
	if !bits[10] {
		t.Errorf("stop bit = 0, want 1")
	}
}

func TestPS2Inhibit(t *testing.T) {
	p := &Port{}
	p.Enqueue(0x42)
	p.Step(Lines{Clk: true, Data: true}) // begin sending

	out := p.Step(Lines{Clk: false, Data: true}) // inhibit
	if out.Clk || out.Data {
		t.Errorf("inhibited output = %+v, want zero", out)
	}
	if p.sending {
		t.Errorf("inhibit did not drop in-flight transmission")
	}
}

func TestMouseLargeDeltaSplitsPackets(t *testing.T) {
	port := &Port{}
	m := NewMouse(port)
	m.Move(300, 0)

	var packets [][3]uint8
	for port.buffer.num >= 3 {
		var pkt [3]uint8
		for i := range pkt {
			b, _ := port.buffer.pop()
			pkt[i] = b
		}
		packets = append(packets, pkt)
	}

	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}
	if packets[0][1] != 255 || packets[0][0]&0x10 != 0 {
		t.Errorf("first packet = %+v, want X=255 with no sign bit", packets[0])
	}
	if packets[1][1] != 45 || packets[1][0]&0x10 != 0 {
		t.Errorf("second packet = %+v, want X=45 with no sign bit", packets[1])
	}
}
