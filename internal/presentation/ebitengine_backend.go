//go:build !headless
// +build !headless

package presentation

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend implements Backend using the Ebitengine game loop.
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements Window for Ebitengine.
type EbitengineWindow struct {
	backend            *EbitengineBackend
	title              string
	width              int
	height             int
	game               *EbitengineGame
	running            bool
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game, presenting the composed
// framebuffer and forwarding keyboard/mouse state as PS/2 input events.
type EbitengineGame struct {
	window       *EbitengineWindow
	frameBuffer  []uint32
	frameImage   *ebiten.Image
	screenWidth  int
	screenHeight int
	windowWidth  int
	windowHeight int

	lastCursorX, lastCursorY int
	drawCount                int

	imageBuffer *image.RGBA
}

// NewEbitengineBackend creates a new Ebitengine graphics backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window sized for the coprocessor's
// 640x480 output; the caller's width/height set the actual OS window,
// which may be scaled up from there.
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	const screenWidth, screenHeight = 640, 480

	game := &EbitengineGame{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		windowWidth:  width,
		windowHeight: height,
		frameImage:   ebiten.NewImage(screenWidth, screenHeight),
		imageBuffer:  image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *EbitengineBackend) IsHeadless() bool { return b.config.Headless }
func (b *EbitengineBackend) GetName() string  { return "Ebitengine" }

func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

func (w *EbitengineWindow) GetSize() (width, height int) { return w.width, w.height }
func (w *EbitengineWindow) ShouldClose() bool             { return !w.running }
func (w *EbitengineWindow) SwapBuffers()                  {}

func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame copies the coprocessor's composed framebuffer into the
// Ebitengine image that Draw presents every tick.
func (w *EbitengineWindow) RenderFrame(frameBuffer []uint32) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	if len(frameBuffer) != w.game.screenWidth*w.game.screenHeight {
		return fmt.Errorf("frame buffer size %d does not match %dx%d", len(frameBuffer), w.game.screenWidth, w.game.screenHeight)
	}

	w.game.frameBuffer = frameBuffer
	img := w.game.imageBuffer
	for y := 0; y < w.game.screenHeight; y++ {
		for x := 0; x < w.game.screenWidth; x++ {
			pixel := frameBuffer[y*w.game.screenWidth+x]
			r := uint8((pixel >> 16) & 0xFF)
			g := uint8((pixel >> 8) & 0xFF)
			b := uint8(pixel & 0xFF)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	w.game.frameImage.ReplacePixels(img.Pix)
	return nil
}

func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop.
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	return ebiten.RunGame(w.game)
}

func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// EbitengineGame implementation.

func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}
	g.processInput()
	if g.window.emulatorUpdateFunc != nil {
		if err := g.window.emulatorUpdateFunc(); err != nil {
			log.Printf("[Ebitengine] emulator update error: %v", err)
		}
	}
	return nil
}

func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	if g.frameImage == nil {
		screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})
		return
	}
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(g.windowWidth) / float64(g.screenWidth)
	scaleY := float64(g.windowHeight) / float64(g.screenHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - float64(g.screenWidth)*scale) / 2
	offsetY := (float64(g.windowHeight) - float64(g.screenHeight)*scale) / 2

	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)

	g.drawCount++
	if g.drawCount%1800 == 0 {
		log.Printf("[Ebitengine] drawing frame %d at %.2fx scale, offset (%.1f,%.1f)", g.drawCount, scale, offsetX, offsetY)
	}
}

func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

var keyMappings = map[ebiten.Key]Key{
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeySpace:      KeySpace,
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyF1:         KeyF1,
	ebiten.KeyF2:         KeyF2,
	ebiten.KeyF3:         KeyF3,
	ebiten.KeyF4:         KeyF4,
	ebiten.KeyF5:         KeyF5,
	ebiten.KeyF6:         KeyF6,
	ebiten.KeyF7:         KeyF7,
	ebiten.KeyF8:         KeyF8,
	ebiten.KeyF9:         KeyF9,
	ebiten.KeyF10:        KeyF10,
	ebiten.KeyF11:        KeyF11,
	ebiten.KeyF12:        KeyF12,
}

// processInput translates Ebitengine's key and cursor state into the
// keyboard/mouse InputEvents a host feeds to the PS/2 ports. Unlike a
// game controller mapping, these pass through as raw keys and relative
// mouse motion rather than being collapsed into discrete buttons.
func (g *EbitengineGame) processInput() {
	if g.window == nil {
		return
	}

	var events []InputEvent

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}

	for ebitenKey, key := range keyMappings {
		if inpututil.IsKeyJustPressed(ebitenKey) {
			events = append(events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
		} else if inpututil.IsKeyJustReleased(ebitenKey) {
			events = append(events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false})
		}
	}

	x, y := ebiten.CursorPosition()
	if dx, dy := x-g.lastCursorX, y-g.lastCursorY; dx != 0 || dy != 0 {
		events = append(events, InputEvent{Type: InputEventTypeMouseMove, MouseDX: dx, MouseDY: dy})
	}
	g.lastCursorX, g.lastCursorY = x, y

	for i, btn := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(btn) {
			events = append(events, InputEvent{Type: InputEventTypeMouseButton, MouseBtn: i, Pressed: true})
		} else if inpututil.IsMouseButtonJustReleased(btn) {
			events = append(events, InputEvent{Type: InputEventTypeMouseButton, MouseBtn: i, Pressed: false})
		}
	}

	g.window.events = append(g.window.events, events...)
}
