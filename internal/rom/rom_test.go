package rom

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeTarget struct {
	lowRAM []byte
	banks  map[int][]byte
}

func newFakeTarget() *fakeTarget { return &fakeTarget{banks: map[int][]byte{}} }

func (f *fakeTarget) LoadLowRAM(data []byte)          { f.lowRAM = append([]byte{}, data...) }
func (f *fakeTarget) LoadROMBank(bank int, data []byte) { f.banks[bank] = append([]byte{}, data...) }

func TestLoadBytesSplitsIntoBanks(t *testing.T) {
	data := make([]byte, bankSize+100)
	for i := range data {
		data[i] = byte(i)
	}
	target := newFakeTarget()
	LoadBytes(target, data)

	if len(target.banks) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(target.banks))
	}
	if len(target.banks[0]) != bankSize {
		t.Errorf("bank 0 length = %d, want %d", len(target.banks[0]), bankSize)
	}
	if len(target.banks[1]) != 100 {
		t.Errorf("bank 1 length = %d, want 100", len(target.banks[1]))
	}
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	target := newFakeTarget()
	if err := LoadFile(target, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := target.banks[0]; len(got) != 4 {
		t.Errorf("bank 0 = %v, want length 4", got)
	}
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	target := newFakeTarget()
	if err := LoadFile(target, "/nonexistent/path/does/not/exist.bin"); err == nil {
		t.Errorf("expected error for missing file")
	}
}
