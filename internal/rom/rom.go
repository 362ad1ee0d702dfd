// Package rom is the minimal external-collaborator edge for ROM image
// loading, which is out of scope beyond the interface the memory bus
// requires. It reads a raw binary image off disk and slices it into the
// bank-sized chunks Target.LoadROMBank expects; header parsing, mappers,
// and any on-disk format beyond "raw bytes" belong to a real loader this
// package does not attempt to be.
package rom

import "os"

// bankSize matches internal/memory's banked-ROM window (16 KiB).
const bankSize = 0x4000

// Target is the subset of *memory.Memory a loader needs: somewhere to
// put low-RAM contents and ROM bank contents. Kept as an interface so
// this package never imports internal/memory.
type Target interface {
	LoadLowRAM(data []byte)
	LoadROMBank(bank int, data []byte)
}

// LoadFile reads a raw binary ROM image and loads it into t's ROM banks,
// starting at bank 0, one bankSize chunk per bank. A short final chunk
// is loaded as-is; t.LoadROMBank truncates it to bankSize.
func LoadFile(t Target, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	LoadBytes(t, data)
	return nil
}

// LoadBytes slices data into bankSize chunks and loads each into the
// next ROM bank, for callers that already have the image in memory
// (tests, an embedding that fetched it some other way).
func LoadBytes(t Target, data []byte) {
	for bank := 0; len(data) > 0; bank++ {
		n := len(data)
		if n > bankSize {
			n = bankSize
		}
		t.LoadROMBank(bank, data[:n])
		data = data[n:]
	}
}
