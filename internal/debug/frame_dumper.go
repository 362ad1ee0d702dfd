package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameDumper writes composed framebuffers to PNG files for snapshot
// comparison and manual inspection, replacing the teacher's SMB-specific
// color-pipeline text dumps with a general-purpose image dump any
// framebuffer can go through.
type FrameDumper struct {
	outputDir    string
	enabled      bool
	maxDumps     int
	dumped       int
	dumpInterval uint64
	label        bool
}

// NewFrameDumper returns a disabled dumper writing into outputDir.
func NewFrameDumper(outputDir string) *FrameDumper {
	return &FrameDumper{outputDir: outputDir, maxDumps: 10, dumpInterval: 1}
}

func (fd *FrameDumper) Enable()  { fd.enabled = true; os.MkdirAll(fd.outputDir, 0o755) }
func (fd *FrameDumper) Disable() { fd.enabled = false }

// SetMaxDumps caps the number of frames ever written.
func (fd *FrameDumper) SetMaxDumps(max int) { fd.maxDumps = max }

// SetDumpInterval dumps only every n-th frame passed to DumpFrame.
func (fd *FrameDumper) SetDumpInterval(n uint64) {
	if n < 1 {
		n = 1
	}
	fd.dumpInterval = n
}

// LabelFrames turns on a small frame-number overlay drawn into the
// top-left corner of each dumped PNG, using the fixed basicfont face so
// no font file needs bundling.
func (fd *FrameDumper) LabelFrames(enable bool) { fd.label = enable }

// DumpFrame writes frameBuffer (width*height pixels, 0xRRGGBB packed)
// to a PNG file, subject to the enabled flag, dump interval, and max
// dump count. It returns the path written, or "" if the frame was
// skipped.
func (fd *FrameDumper) DumpFrame(frameBuffer []uint32, width, height int, frameNum uint64) (string, error) {
	if !fd.enabled || fd.dumped >= fd.maxDumps {
		return "", nil
	}
	if frameNum%fd.dumpInterval != 0 {
		return "", nil
	}
	if len(frameBuffer) != width*height {
		return "", fmt.Errorf("frame buffer length %d does not match %dx%d", len(frameBuffer), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := frameBuffer[y*width+x]
			img.Set(x, y, color.RGBA{
				R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xFF,
			})
		}
	}
	if fd.label {
		drawLabel(img, fmt.Sprintf("frame %d", frameNum))
	}

	path := filepath.Join(fd.outputDir, fmt.Sprintf("frame_%06d.png", frameNum))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dump file: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode dump file: %w", err)
	}
	fd.dumped++
	return path, nil
}

func drawLabel(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, 12),
	}
	d.DrawString(text)
}
