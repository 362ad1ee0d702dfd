package presentation

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// TerminalBackend implements Backend by rendering coarse block art to
// the controlling terminal and reading raw keypresses off stdin for a
// host that wants to drive the PS/2 keyboard port without a windowing
// system.
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow implements Window for terminal rendering.
type TerminalWindow struct {
	title   string
	width   int
	height  int
	running bool

	rawAttr syscall.Termios
	canAttr syscall.Termios
	raw     bool
}

// NewTerminalBackend creates a new terminal graphics backend.
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	w := &TerminalWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
	}
	if err := termios.Tcgetattr(os.Stdin.Fd(), &w.canAttr); err == nil {
		w.rawAttr = w.canAttr
		termios.Cfmakeraw(&w.rawAttr)
		if termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &w.rawAttr) == nil {
			w.raw = true
		}
	}
	return w, nil
}

func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *TerminalBackend) IsHeadless() bool { return false }
func (b *TerminalBackend) GetName() string  { return "Terminal" }

func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
	fmt.Printf("\033]0;%s\007", title)
}

func (w *TerminalWindow) GetSize() (width, height int) { return w.width, w.height }
func (w *TerminalWindow) ShouldClose() bool             { return !w.running }
func (w *TerminalWindow) SwapBuffers()                  {}

// PollEvents drains whatever raw bytes are waiting on stdin, translating
// them to key events. Terminals give no key-up signal, so every byte
// becomes a press followed immediately by a release.
func (w *TerminalWindow) PollEvents() []InputEvent {
	if !w.raw {
		return nil
	}
	buf := make([]byte, 16)
	n, err := os.Stdin.Read(buf)
	if err != nil || n == 0 {
		return nil
	}
	events := make([]InputEvent, 0, n*2)
	for _, b := range buf[:n] {
		key := terminalKey(b)
		if key == KeyUnknown {
			continue
		}
		events = append(events,
			InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true},
			InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false},
		)
	}
	return events
}

func terminalKey(b byte) Key {
	switch b {
	case 0x1b:
		return KeyEscape
	case '\r', '\n':
		return KeyEnter
	case ' ':
		return KeySpace
	default:
		return KeyUnknown
	}
}

// RenderFrame draws the framebuffer as coarse block art, sampling every
// eighth row and every fourth column so a full 640x480 frame fits a
// typical terminal window.
func (w *TerminalWindow) RenderFrame(frameBuffer []uint32) error {
	fmt.Print("\033[2J\033[H")
	for y := 0; y < w.height; y += 8 {
		for x := 0; x < w.width; x += 4 {
			if frameBuffer[y*w.width+x] == 0x000000 {
				fmt.Print(" ")
			} else {
				fmt.Print("█")
			}
		}
		fmt.Println()
	}
	return nil
}

func (w *TerminalWindow) Cleanup() error {
	w.running = false
	if w.raw {
		termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &w.canAttr)
	}
	return nil
}
