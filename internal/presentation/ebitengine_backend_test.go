//go:build !headless
// +build !headless

package presentation

import "testing"

const testScreenWidth, testScreenHeight = 640, 480

func TestEbitengineBackend_Initialize(t *testing.T) {
	backend := NewEbitengineBackend()

	config := Config{
		WindowTitle:  "Test Window",
		WindowWidth:  800,
		WindowHeight: 600,
		Fullscreen:   false,
		VSync:        true,
		Filter:       "nearest",
		AspectRatio:  "4:3",
		Headless:     false,
		Debug:        false,
	}

	if err := backend.Initialize(config); err != nil {
		t.Fatalf("expected successful initialization, got error: %v", err)
	}
	if !backend.(*EbitengineBackend).initialized {
		t.Error("backend should be marked as initialized")
	}
	if backend.(*EbitengineBackend).config.WindowTitle != "Test Window" {
		t.Error("config not properly stored during initialization")
	}
}

func TestEbitengineBackend_DoubleInitialize(t *testing.T) {
	backend := NewEbitengineBackend()
	config := Config{WindowTitle: "Test Window"}

	if err := backend.Initialize(config); err != nil {
		t.Fatalf("first initialization failed: %v", err)
	}
	if err := backend.Initialize(config); err == nil {
		t.Fatal("expected error on double initialization, got nil")
	}
}

func TestEbitengineBackend_CreateWindow(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{WindowTitle: "Test Window"}); err != nil {
		t.Fatalf("backend initialization failed: %v", err)
	}

	window, err := backend.CreateWindow("Test Machine", 800, 600)
	if err != nil {
		t.Fatalf("window creation failed: %v", err)
	}
	width, height := window.GetSize()
	if width != 800 || height != 600 {
		t.Errorf("expected window size 800x600, got %dx%d", width, height)
	}
	if backend.(*EbitengineBackend).game == nil {
		t.Error("backend should have a game instance after window creation")
	}
}

func TestEbitengineBackend_CreateWindow_Uninitialized(t *testing.T) {
	backend := NewEbitengineBackend()
	if _, err := backend.CreateWindow("Test Machine", 800, 600); err == nil {
		t.Fatal("expected error when creating window on uninitialized backend")
	}
}

func TestEbitengineBackend_CreateWindow_Headless(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("backend initialization failed: %v", err)
	}
	if _, err := backend.CreateWindow("Test Machine", 800, 600); err == nil {
		t.Fatal("expected error when creating a window in headless mode")
	}
}

func TestEbitengineWindow_RenderFrame(t *testing.T) {
	backend := NewEbitengineBackend()
	if err := backend.Initialize(Config{WindowTitle: "Test Window"}); err != nil {
		t.Fatalf("backend initialization failed: %v", err)
	}
	window, err := backend.CreateWindow("Test Machine", 800, 600)
	if err != nil {
		t.Fatalf("window creation failed: %v", err)
	}

	frameBuffer := make([]uint32, testScreenWidth*testScreenHeight)
	for i := range frameBuffer {
		if i%2 == 0 {
			frameBuffer[i] = 0xFF0000
		} else {
			frameBuffer[i] = 0x0000FF
		}
	}

	if err := window.RenderFrame(frameBuffer); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	ew := window.(*EbitengineWindow)
	for i := 0; i < 10; i++ {
		if ew.game.frameBuffer[i] != frameBuffer[i] {
			t.Errorf("frame buffer pixel %d: expected 0x%08X, got 0x%08X", i, frameBuffer[i], ew.game.frameBuffer[i])
		}
	}
}

func TestEbitengineWindow_RenderFrame_NilGame(t *testing.T) {
	window := &EbitengineWindow{}
	if err := window.RenderFrame(make([]uint32, testScreenWidth*testScreenHeight)); err == nil {
		t.Fatal("expected error when rendering with nil game")
	}
}

func TestEbitengineWindow_RenderFrame_WrongSize(t *testing.T) {
	backend := NewEbitengineBackend()
	backend.Initialize(Config{WindowTitle: "Test Window"})
	window, _ := backend.CreateWindow("Test Machine", 800, 600)

	if err := window.RenderFrame(make([]uint32, 100)); err == nil {
		t.Fatal("expected error when frame buffer size does not match screen dimensions")
	}
}

func TestEbitengineWindow_EmulatorUpdateFunc(t *testing.T) {
	backend := NewEbitengineBackend()
	backend.Initialize(Config{WindowTitle: "Test Window"})
	window, err := backend.CreateWindow("Test Machine", 800, 600)
	if err != nil {
		t.Fatalf("window creation failed: %v", err)
	}
	ew := window.(*EbitengineWindow)

	called := false
	ew.SetEmulatorUpdateFunc(func() error {
		called = true
		return nil
	})
	if ew.emulatorUpdateFunc == nil {
		t.Fatal("emulator update function should be set")
	}
	if err := ew.game.Update(); err != nil {
		t.Fatalf("game Update failed: %v", err)
	}
	if !called {
		t.Error("emulator update function should have been called during game update")
	}
}

func TestEbitengineGame_Update_SurvivesEmulatorError(t *testing.T) {
	window := &EbitengineWindow{}
	game := &EbitengineGame{window: window}
	window.emulatorUpdateFunc = func() error { return &mockUpdateError{"boom"} }

	if err := game.Update(); err != nil {
		t.Fatalf("game Update should not fail when the emulator update errors: %v", err)
	}
}

type mockUpdateError struct{ msg string }

func (e *mockUpdateError) Error() string { return e.msg }

func TestEbitengineGame_Layout(t *testing.T) {
	game := &EbitengineGame{}
	w, h := game.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("expected layout 800x600, got %dx%d", w, h)
	}
	if game.windowWidth != 800 || game.windowHeight != 600 {
		t.Errorf("game window dimensions not updated: %dx%d", game.windowWidth, game.windowHeight)
	}
}

func TestEbitengineWindow_WindowOperations(t *testing.T) {
	backend := NewEbitengineBackend()
	backend.Initialize(Config{WindowTitle: "Test Window"})
	window, err := backend.CreateWindow("Initial Title", 800, 600)
	if err != nil {
		t.Fatalf("window creation failed: %v", err)
	}

	window.SetTitle("New Title")
	if window.(*EbitengineWindow).title != "New Title" {
		t.Errorf("title not updated: got %q", window.(*EbitengineWindow).title)
	}
	if window.ShouldClose() {
		t.Error("window should not initially be marked for closing")
	}
	if err := window.Cleanup(); err != nil {
		t.Fatalf("window cleanup failed: %v", err)
	}
	if !window.ShouldClose() {
		t.Error("window should be marked for closing after cleanup")
	}
}

func TestEbitengineBackend_BackendProperties(t *testing.T) {
	backend := NewEbitengineBackend()
	if backend.GetName() != "Ebitengine" {
		t.Errorf("expected backend name 'Ebitengine', got %q", backend.GetName())
	}
	if backend.IsHeadless() {
		t.Error("backend should not be headless by default")
	}
	backend.Initialize(Config{Headless: true})
	if !backend.IsHeadless() {
		t.Error("backend should be headless when configured as such")
	}
}

func TestEbitengineWindow_PollEvents(t *testing.T) {
	window := &EbitengineWindow{
		events: []InputEvent{
			{Type: InputEventTypeKey, Key: KeyEscape, Pressed: true},
			{Type: InputEventTypeMouseMove, MouseDX: 3, MouseDY: -2},
		},
	}
	if events := window.PollEvents(); len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
	if events := window.PollEvents(); len(events) != 0 {
		t.Errorf("expected 0 events after clearing, got %d", len(events))
	}
}

func TestEbitengineBackend_Cleanup(t *testing.T) {
	backend := NewEbitengineBackend()
	backend.Initialize(Config{WindowTitle: "Test Window"})
	if err := backend.Cleanup(); err != nil {
		t.Fatalf("backend cleanup failed: %v", err)
	}
	if backend.(*EbitengineBackend).initialized {
		t.Error("backend should not be initialized after cleanup")
	}
}

func BenchmarkEbitengineWindow_RenderFrame(b *testing.B) {
	backend := NewEbitengineBackend()
	backend.Initialize(Config{WindowTitle: "Benchmark Window"})
	window, err := backend.CreateWindow("Benchmark Machine", 800, 600)
	if err != nil {
		b.Fatalf("window creation failed: %v", err)
	}

	frameBuffer := make([]uint32, testScreenWidth*testScreenHeight)
	for i := range frameBuffer {
		frameBuffer[i] = 0xFF0000
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := window.RenderFrame(frameBuffer); err != nil {
			b.Fatalf("RenderFrame failed: %v", err)
		}
	}
}
