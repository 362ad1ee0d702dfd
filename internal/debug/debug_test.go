package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type fakeMemory struct {
	data map[uint16]uint8
}

func (f *fakeMemory) Read(addr uint16) uint8 { return f.data[addr] }

func TestWatchpointsReportsChangeOnlyWhenEnabled(t *testing.T) {
	mem := &fakeMemory{data: map[uint16]uint8{0x10: 0x01}}
	w := NewWatchpoints(mem)
	w.Add(0x10)

	var seen []uint8
	w.OnChange(func(addr uint16, from, to uint8) { seen = append(seen, to) })

	mem.data[0x10] = 0x02
	w.Check() // disabled, should not report
	if len(seen) != 0 {
		t.Fatalf("expected no reports while disabled, got %v", seen)
	}

	w.Enable(true)
	w.Check()
	if len(seen) != 1 || seen[0] != 0x02 {
		t.Errorf("expected one report of 0x02, got %v", seen)
	}

	w.Check() // no further change
	if len(seen) != 1 {
		t.Errorf("expected no duplicate report, got %v", seen)
	}
}

func TestWatchpointsRemove(t *testing.T) {
	mem := &fakeMemory{data: map[uint16]uint8{0x20: 0xAA}}
	w := NewWatchpoints(mem)
	w.Add(0x20)
	w.Remove(0x20)
	w.Enable(true)

	var calls int
	w.OnChange(func(addr uint16, from, to uint8) { calls++ })
	mem.data[0x20] = 0xBB
	w.Check()
	if calls != 0 {
		t.Errorf("expected removed address to not be reported, got %d calls", calls)
	}
}

func TestFrameDumperWritesPNG(t *testing.T) {
	dir := t.TempDir()
	fd := NewFrameDumper(dir)
	fd.Enable()

	buf := make([]uint32, 4*2)
	for i := range buf {
		buf[i] = 0x112233
	}
	path, err := fd.DumpFrame(buf, 4, 2, 0)
	if err != nil {
		t.Fatalf("DumpFrame: %v", err)
	}
	if path == "" {
		t.Fatalf("expected a written path")
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open dumped file: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("dumped file is not a valid PNG: %v", err)
	}
}

func TestFrameDumperRespectsMaxDumps(t *testing.T) {
	dir := t.TempDir()
	fd := NewFrameDumper(dir)
	fd.Enable()
	fd.SetMaxDumps(1)

	buf := make([]uint32, 2*2)
	if _, err := fd.DumpFrame(buf, 2, 2, 0); err != nil {
		t.Fatalf("first dump: %v", err)
	}
	path, err := fd.DumpFrame(buf, 2, 2, 1)
	if err != nil {
		t.Fatalf("second dump: %v", err)
	}
	if path != "" {
		t.Errorf("expected second dump to be skipped once max reached")
	}
}

func TestFrameDumperDisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	fd := NewFrameDumper(dir)
	buf := make([]uint32, 1)
	path, err := fd.DumpFrame(buf, 1, 1, 0)
	if err != nil || path != "" {
		t.Errorf("expected no-op while disabled, got path=%q err=%v", path, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files written while disabled")
	}
}

func TestFrameDumperMismatchedSizeErrors(t *testing.T) {
	dir := t.TempDir()
	fd := NewFrameDumper(dir)
	fd.Enable()
	if _, err := fd.DumpFrame(make([]uint32, 3), 2, 2, 0); err == nil {
		t.Errorf("expected size mismatch error")
	}
}

func TestFrameDumperLabelFrames(t *testing.T) {
	dir := t.TempDir()
	fd := NewFrameDumper(dir)
	fd.Enable()
	fd.LabelFrames(true)

	buf := make([]uint32, 40*20)
	path, err := fd.DumpFrame(buf, 40, 20, 0)
	if err != nil {
		t.Fatalf("DumpFrame: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(path))); err != nil {
		t.Errorf("labeled dump missing: %v", err)
	}
}
