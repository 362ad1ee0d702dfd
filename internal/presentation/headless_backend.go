package presentation

import (
	"fmt"
	"os"
)

// HeadlessBackend implements Backend without presenting anything, for
// tests and automated smoke runs.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements Window for headless operation, optionally
// dumping selected frames to disk as PPM for manual inspection.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	outputPath string
}

// NewHeadlessBackend creates a new headless graphics backend.
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	return &HeadlessWindow{
		title:      title,
		width:      width,
		height:     height,
		running:    true,
		outputPath: "frame_output",
	}, nil
}

func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) GetName() string  { return "Headless" }

func (w *HeadlessWindow) SetTitle(title string)       { w.title = title }
func (w *HeadlessWindow) GetSize() (int, int)         { return w.width, w.height }
func (w *HeadlessWindow) ShouldClose() bool           { return !w.running }
func (w *HeadlessWindow) SwapBuffers()                {}
func (w *HeadlessWindow) PollEvents() []InputEvent    { return nil }

// RenderFrame saves a handful of frames for debugging rather than every
// one, matching the cadence the teacher's own headless window used.
func (w *HeadlessWindow) RenderFrame(frameBuffer []uint32) error {
	w.frameCount++
	if w.frameCount == 31 || w.frameCount == 61 || w.frameCount == 120 {
		return w.saveFrameAsPPM(frameBuffer, fmt.Sprintf("frame_%03d.ppm", w.frameCount))
	}
	return nil
}

func (w *HeadlessWindow) saveFrameAsPPM(frameBuffer []uint32, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %v", filename, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n%d %d\n255\n", w.width, w.height)
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			pixel := frameBuffer[y*w.width+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(file, "%d %d %d ", r, g, b)
		}
		fmt.Fprintf(file, "\n")
	}
	return nil
}

func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

func (w *HeadlessWindow) SetOutputPath(path string) { w.outputPath = path }
func (w *HeadlessWindow) GetFrameCount() int        { return w.frameCount }
