package presentation

import (
	"os"
	"testing"
)

func TestHeadlessBackend_RoundTrip(t *testing.T) {
	backend := NewHeadlessBackend()
	if err := backend.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	window, err := backend.CreateWindow("Headless Machine", 640, 480)
	if err != nil {
		t.Fatalf("create window failed: %v", err)
	}
	w, h := window.GetSize()
	if w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}

	frameBuffer := make([]uint32, 640*480)
	for i := 0; i < 30; i++ {
		if err := window.RenderFrame(frameBuffer); err != nil {
			t.Fatalf("render frame %d failed: %v", i, err)
		}
	}

	hw := window.(*HeadlessWindow)
	if hw.frameCount != 30 {
		t.Errorf("expected frameCount 30, got %d", hw.frameCount)
	}
}

func TestHeadlessWindow_DumpsSelectedFrames(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(cwd)

	backend := NewHeadlessBackend()
	backend.Initialize(Config{Headless: true})
	window, _ := backend.CreateWindow("Headless Machine", 4, 2)

	frameBuffer := make([]uint32, 4*2)
	for i := 0; i < 31; i++ {
		if err := window.RenderFrame(frameBuffer); err != nil {
			t.Fatalf("render frame %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat("frame_031.ppm"); err != nil {
		t.Errorf("expected frame_031.ppm to be written: %v", err)
	}
}
