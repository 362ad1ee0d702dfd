// Package app wires together the machine, a presentation backend, and
// the debug/state collaborators into the application a host process
// runs.
package app

import (
	"errors"
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"x16emu/internal/bus"
	"x16emu/internal/debug"
	"x16emu/internal/presentation"
	"x16emu/internal/rom"
)

// Application is the top-level wiring: one machine, one presentation
// backend/window, the emulator run loop, and the debug/state
// collaborators a host process drives through Run.
type Application struct {
	machine *bus.Machine

	graphicsBackend presentation.Backend
	window          presentation.Window
	videoProcessor  *presentation.VideoProcessor

	config   *Config
	emulator *Emulator
	states   *StateManager
	watch    *debug.Watchpoints
	dumper   *debug.FrameDumper

	running     bool
	paused      bool
	initialized bool
	headless    bool

	frameCount  uint64
	startTime   time.Time
	lastFPSTime time.Time
	currentFPS  float64

	lastFrameTime       time.Time
	frameCountAtLastFPS uint64
	averageFPS          float64
	maxFrameTime        time.Duration
	minFrameTime        time.Duration
	lastFPSLog          time.Time

	inputTime         time.Duration
	emulatorTime      time.Duration
	renderTime        time.Duration
	totalInputTime    time.Duration
	totalEmulatorTime time.Duration
	totalRenderTime   time.Duration

	recentFrameTimes [10]time.Duration
	frameTimeIndex   int
	frameTimeSum     time.Duration
	frameVariance    float64

	lastMemoryCheck    time.Time
	lastCleanup        time.Time
	initialMemoryUsage uint64
	lastMemoryUsage    uint64
	memoryGrowthRate   float64

	romPath string

	lastESCTime time.Time

	debugFrameCounter uint64
}

// ApplicationError wraps a component/operation pair around a failure,
// matching the rest of the package's error-reporting idiom.
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

// NewApplication creates a new application, loading configuration from
// configPath if given.
func NewApplication(configPath string) (*Application, error) {
	return NewApplicationWithMode(configPath, false)
}

// NewApplicationWithMode creates a new application with optional
// headless mode, for hosts without a display (tests, CI).
func NewApplicationWithMode(configPath string, headless bool) (*Application, error) {
	app := &Application{
		config:      NewConfig(),
		running:     false,
		paused:      false,
		initialized: false,
		headless:    headless,
		startTime:   time.Now(),
		lastFPSTime: time.Now(),
	}

	if configPath != "" {
		if err := app.config.LoadFromFile(configPath); err != nil {
			fmt.Printf("[APP_WARNING] could not load config from %s, using defaults: %v\n", configPath, err)
		}
	}

	if err := app.initializeComponents(headless); err != nil {
		return nil, &ApplicationError{
			Component: "initialization",
			Operation: "component setup",
			Err:       err,
		}
	}

	return app, nil
}

// initializeComponents builds the machine, the presentation backend,
// and the emulator/state/debug collaborators.
func (app *Application) initializeComponents(headless bool) error {
	app.machine = bus.New(app.config.Banks.RAMBanks, app.config.Banks.ROMBanks)

	if err := app.initializeGraphicsBackend(headless); err != nil {
		return fmt.Errorf("failed to initialize presentation backend: %v", err)
	}

	app.emulator = NewEmulator(app.machine, app.config)
	app.states = NewStateManager(app.config.Paths.Logs)
	app.watch = debug.NewWatchpoints(app.machine.Memory)
	app.watch.LogChanges()
	app.dumper = debug.NewFrameDumper(app.config.Paths.FrameDump)

	app.initialized = true
	return nil
}

// initializeGraphicsBackend creates and initializes the configured
// presentation backend, falling back to headless if Ebitengine can't
// open a display.
func (app *Application) initializeGraphicsBackend(headless bool) error {
	var backendType presentation.BackendType
	if headless {
		backendType = presentation.BackendHeadless
	} else {
		switch app.config.Video.Backend {
		case "headless":
			backendType = presentation.BackendHeadless
		case "terminal":
			backendType = presentation.BackendTerminal
		default:
			backendType = presentation.BackendEbitengine
		}
	}

	var err error
	app.graphicsBackend, err = presentation.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("failed to create presentation backend: %v", err)
	}

	width, height := app.config.WindowResolution()
	graphicsConfig := presentation.Config{
		WindowTitle:  "x16emu",
		WindowWidth:  width,
		WindowHeight: height,
		Fullscreen:   false,
		VSync:        app.config.Video.VSync,
		Filter:       app.config.Video.Filter,
		AspectRatio:  app.config.Video.AspectRatio,
		Headless:     headless,
		Debug:        app.config.Debug.EnableLogging,
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType == presentation.BackendEbitengine {
			fmt.Printf("[APP_WARNING] Ebitengine backend failed (%v), falling back to headless mode\n", err)
			app.graphicsBackend, err = presentation.CreateBackend(presentation.BackendHeadless)
			if err != nil {
				return fmt.Errorf("failed to create fallback headless backend: %v", err)
			}
			graphicsConfig.Headless = true
			if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
				return fmt.Errorf("failed to initialize fallback headless backend: %v", err)
			}
		} else {
			return fmt.Errorf("failed to initialize presentation backend: %v", err)
		}
	}

	if !headless && !app.graphicsBackend.IsHeadless() {
		app.window, err = app.graphicsBackend.CreateWindow(
			graphicsConfig.WindowTitle,
			graphicsConfig.WindowWidth,
			graphicsConfig.WindowHeight,
		)
		if err != nil {
			return fmt.Errorf("failed to create window: %v", err)
		}
	}

	app.videoProcessor = presentation.NewVideoProcessor(
		app.config.Video.Brightness,
		app.config.Video.Contrast,
		app.config.Video.Saturation,
	)

	return nil
}

// LoadROM loads a raw ROM image into the machine's banked ROM and
// resets it.
func (app *Application) LoadROM(romPath string) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	if err := rom.LoadFile(app.machine.Memory, romPath); err != nil {
		return &ApplicationError{
			Component: "rom",
			Operation: "load ROM",
			Err:       err,
		}
	}

	app.romPath = romPath
	app.machine.Reset()

	if app.window != nil {
		app.window.SetTitle(fmt.Sprintf("x16emu - %s", romPath))
	}

	app.emulator.Start()
	return nil
}

// Run starts the main application loop.
func (app *Application) Run() error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	app.startTime = time.Now()
	app.lastFPSTime = time.Now()

	if app.config.Debug.EnableLogging {
		fmt.Printf("[APP_DEBUG] starting emulator with %s backend...\n", app.graphicsBackend.GetName())
	}

	if app.graphicsBackend.GetName() == "Ebitengine" && app.window != nil {
		if ebitengineWindow, ok := presentation.AsEbitengineWindow(app.window); ok {
			ebitengineWindow.SetEmulatorUpdateFunc(func() error {
				frameStartTime := time.Now()

				if err := app.processInput(); err != nil && app.config.Debug.EnableLogging {
					fmt.Printf("[APP_ERROR] input processing error: %v\n", err)
				}

				emulatorStart := time.Now()
				if err := app.updateEmulator(); err != nil {
					return err
				}
				app.emulatorTime = time.Since(emulatorStart)

				renderStart := time.Now()
				if err := app.render(); err != nil {
					return err
				}
				app.renderTime = time.Since(renderStart)

				app.updatePerformanceMetricsMinimal(frameStartTime)

				if app.window != nil && app.window.ShouldClose() {
					app.Stop()
				}

				return nil
			})
			return ebitengineWindow.Run()
		}
	}

	for app.running {
		frameStartTime := time.Now()

		inputStart := time.Now()
		if err := app.processInput(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[APP_ERROR] input processing error: %v\n", err)
		}
		app.inputTime = time.Since(inputStart)
		app.totalInputTime += app.inputTime

		emulatorStart := time.Now()
		if err := app.updateEmulator(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[APP_DEBUG] emulator update error: %v\n", err)
		}
		app.emulatorTime = time.Since(emulatorStart)
		app.totalEmulatorTime += app.emulatorTime

		renderStart := time.Now()
		if err := app.render(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[APP_ERROR] render error: %v\n", err)
		}
		app.renderTime = time.Since(renderStart)
		app.totalRenderTime += app.renderTime

		app.updatePerformanceMetrics(frameStartTime)

		if app.window != nil && app.window.ShouldClose() {
			app.Stop()
		}

		time.Sleep(16 * time.Millisecond)
	}

	if app.config.Debug.EnableLogging {
		fmt.Println("[APP_DEBUG] emulator main loop ended")
	}
	return nil
}

// updateEmulator advances the emulator by one frame, unless paused.
func (app *Application) updateEmulator() error {
	if !app.paused && app.romPath != "" {
		if err := app.emulator.Update(); err != nil {
			return err
		}
		app.watch.Check()
	}
	return nil
}

// processInput drains the window's input queue and forwards keyboard
// and mouse events to the machine's PS/2 ports.
func (app *Application) processInput() error {
	if app.window == nil {
		return nil
	}

	events := app.window.PollEvents()
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		switch event.Type {
		case presentation.InputEventTypeQuit:
			app.Stop()
			return nil

		case presentation.InputEventTypeKey:
			if app.handleSpecialInput(event) {
				continue
			}
			app.forwardKeyEvent(event)

		case presentation.InputEventTypeMouseMove:
			app.machine.Mouse.Move(int32(event.MouseDX), int32(event.MouseDY))

		case presentation.InputEventTypeMouseButton:
			if event.Pressed {
				app.machine.Mouse.ButtonDown(event.MouseBtn)
			} else {
				app.machine.Mouse.ButtonUp(event.MouseBtn)
			}
		}
	}

	return nil
}

// forwardKeyEvent translates a presentation key event into a PS/2 Set 2
// scan code and enqueues it on the keyboard port.
func (app *Application) forwardKeyEvent(event presentation.InputEvent) {
	code, extended := ps2ScanCode(event.Key)
	if code == 0 {
		return
	}

	if extended {
		app.machine.PS2[0].Enqueue(0xE0)
	}
	if !event.Pressed {
		app.machine.PS2[0].Enqueue(0xF0)
	}
	app.machine.PS2[0].Enqueue(code)
}

// ps2ScanCode maps a presentation key to its PS/2 Set 2 make code and
// whether it needs the 0xE0 extended-key prefix.
func ps2ScanCode(key presentation.Key) (code uint8, extended bool) {
	switch key {
	case presentation.KeyEscape:
		return 0x76, false
	case presentation.KeyEnter:
		return 0x5A, false
	case presentation.KeySpace:
		return 0x29, false
	case presentation.KeyUp:
		return 0x75, true
	case presentation.KeyDown:
		return 0x72, true
	case presentation.KeyLeft:
		return 0x6B, true
	case presentation.KeyRight:
		return 0x74, true
	case presentation.KeyF1:
		return 0x05, false
	case presentation.KeyF2:
		return 0x06, false
	case presentation.KeyF3:
		return 0x04, false
	case presentation.KeyF4:
		return 0x0C, false
	case presentation.KeyF5:
		return 0x03, false
	case presentation.KeyF6:
		return 0x0B, false
	case presentation.KeyF7:
		return 0x83, false
	case presentation.KeyF8:
		return 0x0A, false
	case presentation.KeyF9:
		return 0x01, false
	case presentation.KeyF10:
		return 0x09, false
	case presentation.KeyF11:
		return 0x78, false
	case presentation.KeyF12:
		return 0x07, false
	default:
		return 0, false
	}
}

// handleSpecialInput intercepts host-level key combinations (quit
// confirmation, save/load state) before they would
// otherwise reach the PS/2 keyboard port.
func (app *Application) handleSpecialInput(event presentation.InputEvent) bool {
	if !event.Pressed {
		return false
	}

	if event.Key == presentation.KeyEscape {
		now := time.Now()
		if !app.lastESCTime.IsZero() && now.Sub(app.lastESCTime) < 3*time.Second {
			fmt.Println("ESC double-tap confirmed, shutting down")
			app.Stop()
			return true
		}
		fmt.Println("ESC pressed, press ESC again within 3 seconds to quit")
		app.lastESCTime = now
		return true
	}

	if event.Key != presentation.KeyEscape {
		app.lastESCTime = time.Time{}
	}

	switch event.Key {
	case presentation.KeyF1, presentation.KeyF2, presentation.KeyF3, presentation.KeyF4, presentation.KeyF5:
		slot := int(event.Key - presentation.KeyF1)
		if event.Modifiers&presentation.ModifierShift != 0 {
			if err := app.LoadState(slot); err != nil {
				fmt.Printf("failed to load state %d: %v\n", slot, err)
			}
		} else {
			if err := app.SaveState(slot); err != nil {
				fmt.Printf("failed to save state %d: %v\n", slot, err)
			}
		}
		return true
	}

	return false
}

// GetMachine returns the machine for direct access, useful for testing
// and advanced host control.
func (app *Application) GetMachine() *bus.Machine {
	return app.machine
}

// render presents the current frame, with post-processing applied.
func (app *Application) render() error {
	if app.window == nil {
		return nil
	}

	if app.romPath != "" {
		frameBuffer := app.emulator.GetFrameBuffer()

		if app.videoProcessor != nil {
			frameBuffer = app.videoProcessor.ProcessFrame(frameBuffer)
		}

		if err := app.window.RenderFrame(frameBuffer); err != nil {
			return fmt.Errorf("failed to render frame: %v", err)
		}

		if app.config.Debug.FrameDumping {
			if _, err := app.dumper.DumpFrame(frameBuffer, 640, 480, app.emulator.GetFrameCount()); err != nil && app.config.Debug.EnableLogging {
				fmt.Printf("[APP_ERROR] frame dump error: %v\n", err)
			}
		}
	}

	app.window.SwapBuffers()
	return nil
}

// updatePerformanceMetrics updates performance tracking with
// high-precision timing, frame consistency, and periodic memory checks.
func (app *Application) updatePerformanceMetrics(frameStartTime time.Time) {
	now := time.Now()
	app.frameCount++

	frameTime := now.Sub(frameStartTime)

	if app.lastFrameTime.IsZero() {
		app.lastFrameTime = frameStartTime
		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount
		app.minFrameTime = frameTime
		app.maxFrameTime = frameTime
		app.lastFPSLog = now
		app.lastMemoryCheck = now
		app.lastCleanup = now

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		app.initialMemoryUsage = memStats.Alloc
		app.lastMemoryUsage = memStats.Alloc
		return
	}

	if frameTime < app.minFrameTime {
		app.minFrameTime = frameTime
	}
	if frameTime > app.maxFrameTime {
		app.maxFrameTime = frameTime
	}

	oldFrameTime := app.recentFrameTimes[app.frameTimeIndex]
	app.frameTimeSum -= oldFrameTime
	app.recentFrameTimes[app.frameTimeIndex] = frameTime
	app.frameTimeSum += frameTime
	app.frameTimeIndex = (app.frameTimeIndex + 1) % 10

	if app.frameCount >= 10 {
		avgFrameTime := app.frameTimeSum / 10
		if app.frameCount == 10 {
			variance := 0.0
			for _, ft := range app.recentFrameTimes {
				diff := float64(ft - avgFrameTime)
				variance += diff * diff
			}
			app.frameVariance = variance / 10.0
		} else {
			newDiff := float64(frameTime - avgFrameTime)
			oldDiff := float64(oldFrameTime - avgFrameTime)
			alpha := 0.1
			app.frameVariance = app.frameVariance*(1-alpha) + (newDiff*newDiff-oldDiff*oldDiff)*alpha
			if app.frameVariance < 0 {
				app.frameVariance = 0
			}
		}
	}

	if now.Sub(app.lastFPSTime) >= time.Second {
		elapsed := now.Sub(app.lastFPSTime).Seconds()
		framesInPeriod := app.frameCount - app.frameCountAtLastFPS
		app.currentFPS = float64(framesInPeriod) / elapsed

		totalElapsed := now.Sub(app.startTime).Seconds()
		if totalElapsed > 0 {
			app.averageFPS = float64(app.frameCount) / totalElapsed
		}

		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount

		if app.config.Debug.EnableLogging && now.Sub(app.lastFPSLog) >= 5*time.Second {
			app.logFPSMetrics(now, frameTime, 16670000*time.Nanosecond)
			app.lastFPSLog = now
		}
	}

	if now.Sub(app.lastMemoryCheck) >= 30*time.Second {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		currentMemory := memStats.Alloc
		memoryIncrease := float64(currentMemory) - float64(app.lastMemoryUsage)
		timeDiff := now.Sub(app.lastMemoryCheck).Seconds()
		app.memoryGrowthRate = memoryIncrease / timeDiff / (1024 * 1024)

		if app.config.Debug.EnableLogging {
			log.Printf("[MEMORY] current: %.2f MB | growth: %.3f MB/s | since start: +%.2f MB",
				float64(currentMemory)/(1024*1024),
				app.memoryGrowthRate,
				float64(currentMemory-app.initialMemoryUsage)/(1024*1024))
		}

		app.lastMemoryUsage = currentMemory
		app.lastMemoryCheck = now

		if app.memoryGrowthRate > 0.1 {
			log.Printf("[MEMORY_WARNING] high memory growth rate: %.3f MB/s", app.memoryGrowthRate)
		}
	}

	if now.Sub(app.lastCleanup) >= 5*time.Minute {
		app.performPeriodicCleanup()
		app.lastCleanup = now
	}

	if frameTime > 20*time.Millisecond && app.config.Debug.EnableLogging && app.frameCount%300 == 0 {
		log.Printf("[FPS_WARNING] slow frame detected: %.2fms (target: 16.67ms)",
			float64(frameTime.Nanoseconds())/1000000.0)
	}

	app.lastFrameTime = now
}

// updatePerformanceMetricsMinimal provides basic performance tracking
// with minimal overhead, for the Ebitengine path which has its own
// frame pacing.
func (app *Application) updatePerformanceMetricsMinimal(frameStartTime time.Time) {
	now := time.Now()
	app.frameCount++

	frameTime := now.Sub(frameStartTime)

	if app.lastFrameTime.IsZero() {
		app.lastFrameTime = frameStartTime
		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount
		app.minFrameTime = frameTime
		app.maxFrameTime = frameTime
		app.lastFPSLog = now
		return
	}

	if frameTime < app.minFrameTime {
		app.minFrameTime = frameTime
	}
	if frameTime > app.maxFrameTime {
		app.maxFrameTime = frameTime
	}

	if now.Sub(app.lastFPSTime) >= time.Second {
		elapsed := now.Sub(app.lastFPSTime).Seconds()
		framesInPeriod := app.frameCount - app.frameCountAtLastFPS
		app.currentFPS = float64(framesInPeriod) / elapsed

		totalElapsed := now.Sub(app.startTime).Seconds()
		if totalElapsed > 0 {
			app.averageFPS = float64(app.frameCount) / totalElapsed
		}

		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount

		if app.config.Debug.EnableLogging && now.Sub(app.lastFPSLog) >= 10*time.Second {
			log.Printf("[FPS] current: %.1f | average: %.1f | frame: %d | emulator: %.2fms | render: %.2fms",
				app.currentFPS, app.averageFPS, app.frameCount,
				float64(app.emulatorTime.Nanoseconds())/1000000.0,
				float64(app.renderTime.Nanoseconds())/1000000.0)
			app.lastFPSLog = now
		}
	}

	app.lastFrameTime = now
}

// logFPSMetrics logs detailed FPS and performance information.
func (app *Application) logFPSMetrics(now time.Time, lastFrameTime, targetFrameTime time.Duration) {
	log.Printf("[FPS] current: %.1f | average: %.1f | frame: %d | runtime: %.1fs",
		app.currentFPS, app.averageFPS, app.frameCount, now.Sub(app.startTime).Seconds())

	log.Printf("[TIMING] frame: %.2fms | min: %.2fms | max: %.2fms | target: %.2fms",
		float64(lastFrameTime.Nanoseconds())/1000000.0,
		float64(app.minFrameTime.Nanoseconds())/1000000.0,
		float64(app.maxFrameTime.Nanoseconds())/1000000.0,
		float64(targetFrameTime.Nanoseconds())/1000000.0)

	log.Printf("[COMPONENTS] input: %.2fms | emulator: %.2fms | render: %.2fms",
		float64(app.inputTime.Nanoseconds())/1000000.0,
		float64(app.emulatorTime.Nanoseconds())/1000000.0,
		float64(app.renderTime.Nanoseconds())/1000000.0)

	if app.frameCount > 0 {
		avgInput := float64(app.totalInputTime.Nanoseconds()) / float64(app.frameCount) / 1000000.0
		avgEmulator := float64(app.totalEmulatorTime.Nanoseconds()) / float64(app.frameCount) / 1000000.0
		avgRender := float64(app.totalRenderTime.Nanoseconds()) / float64(app.frameCount) / 1000000.0

		log.Printf("[AVERAGES] input: %.2fms | emulator: %.2fms | render: %.2fms",
			avgInput, avgEmulator, avgRender)
	}

	if app.frameCount >= 10 {
		avgRecentFrameTime := float64(app.frameTimeSum.Nanoseconds()) / 10.0 / 1000000.0
		var frameStdDev float64
		if app.frameVariance >= 0 {
			frameStdDev = math.Sqrt(app.frameVariance) / 1000000.0
		}

		log.Printf("[CONSISTENCY] recent avg: %.2fms | std dev: %.2fms | variance: %.2f",
			avgRecentFrameTime, frameStdDev, app.frameVariance/1000000000000.0)
	}
}

// performPeriodicCleanup resets accumulated performance counters and
// forces a GC pass, to prevent unbounded growth across a long session.
func (app *Application) performPeriodicCleanup() {
	log.Printf("[CLEANUP] starting periodic resource cleanup (frame %d)", app.frameCount)

	app.totalInputTime = 0
	app.totalEmulatorTime = 0
	app.totalRenderTime = 0

	app.minFrameTime = 16670000 * time.Nanosecond
	app.maxFrameTime = 16670000 * time.Nanosecond

	for i := range app.recentFrameTimes {
		app.recentFrameTimes[i] = 0
	}
	app.frameTimeSum = 0
	app.frameTimeIndex = 0
	app.frameVariance = 0

	runtime.GC()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.Printf("[CLEANUP] memory after GC: %.2f MB | heap objects: %d",
		float64(memStats.Alloc)/(1024*1024), memStats.HeapObjects)
}

// Stop stops the application's main loop.
func (app *Application) Stop() {
	app.running = false
}

// Pause pauses the emulator.
func (app *Application) Pause() {
	app.paused = true
}

// Resume resumes the emulator.
func (app *Application) Resume() {
	app.paused = false
}

// TogglePause toggles pause state.
func (app *Application) TogglePause() {
	app.paused = !app.paused
}

// SaveState captures and attempts to persist the current machine state
// to slot, per StateManager's named-only save/restore contract.
func (app *Application) SaveState(slot int) error {
	if app.romPath == "" {
		return errors.New("no ROM loaded")
	}
	return app.states.SaveSlot(app.machine, slot)
}

// LoadState attempts to restore machine state from slot.
func (app *Application) LoadState(slot int) error {
	if app.romPath == "" {
		return errors.New("no ROM loaded")
	}
	return app.states.LoadSlot(app.machine, slot)
}

// Reset resets the machine.
func (app *Application) Reset() {
	if app.machine != nil {
		app.machine.Reset()
	}
}

// IsRunning returns whether the application is running.
func (app *Application) IsRunning() bool {
	return app.running
}

// IsPaused returns whether the emulator is paused.
func (app *Application) IsPaused() bool {
	return app.paused
}

// GetFPS returns the current FPS.
func (app *Application) GetFPS() float64 {
	return app.currentFPS
}

// GetFrameCount returns the total frame count.
func (app *Application) GetFrameCount() uint64 {
	return app.frameCount
}

// GetUptime returns the application uptime.
func (app *Application) GetUptime() time.Duration {
	return time.Since(app.startTime)
}

// GetROMPath returns the currently loaded ROM path.
func (app *Application) GetROMPath() string {
	return app.romPath
}

// GetConfig returns the application configuration.
func (app *Application) GetConfig() *Config {
	return app.config
}

// ApplyDebugSettings wires the configured debug trace flags to the
// machine and its watchpoint/frame-dump tooling.
func (app *Application) ApplyDebugSettings() {
	if app.config == nil || app.machine == nil {
		return
	}

	app.machine.EnableDebug(app.config.Debug.CPUTracing || app.config.Debug.MemoryTracing)
	app.watch.Enable(app.config.Debug.MemoryTracing)
	if app.config.Debug.FrameDumping {
		app.dumper.Enable()
	} else {
		app.dumper.Disable()
	}

	if app.config.Debug.EnableLogging {
		fmt.Printf("[DEBUG] cpu=%t video=%t memory=%t frames=%t\n",
			app.config.Debug.CPUTracing, app.config.Debug.VideoTracing,
			app.config.Debug.MemoryTracing, app.config.Debug.FrameDumping)
	}
}

// Cleanup releases all resources and shuts down the application.
func (app *Application) Cleanup() error {
	if app.config != nil && app.config.Debug.EnableLogging {
		fmt.Println("[APP_DEBUG] cleaning up application resources...")
	}

	var lastErr error

	if app.machine != nil && app.machine.Audio != nil {
		if err := app.machine.Audio.Close(); err != nil {
			lastErr = err
			fmt.Printf("[APP_ERROR] audio cleanup error: %v\n", err)
		}
	}

	if app.states != nil {
		if err := app.states.Cleanup(); err != nil {
			lastErr = err
			fmt.Printf("[APP_ERROR] state manager cleanup error: %v\n", err)
		}
	}

	if app.emulator != nil {
		if err := app.emulator.Cleanup(); err != nil {
			lastErr = err
			fmt.Printf("[APP_ERROR] emulator cleanup error: %v\n", err)
		}
	}

	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
			fmt.Printf("[APP_ERROR] window cleanup error: %v\n", err)
		}
	}

	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
			fmt.Printf("[APP_ERROR] presentation backend cleanup error: %v\n", err)
		}
	}

	app.initialized = false
	if app.config != nil && app.config.Debug.EnableLogging {
		fmt.Println("[APP_DEBUG] application cleanup complete")
	}

	return lastErr
}
