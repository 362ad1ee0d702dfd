// Command x16emu runs the machine core behind a presentation backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"x16emu/internal/app"
	"x16emu/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to a raw ROM image (optional for GUI mode)")
		configFile = flag.String("config", "", "path to configuration file")
		debug      = flag.Bool("debug", false, "enable debug tracing")
		nogui      = flag.Bool("nogui", false, "run headless, without a presentation backend")
		help       = flag.Bool("help", false, "show help message")
		showVer    = flag.Bool("version", false, "show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	setupGracefulShutdown()

	fmt.Println("x16emu starting...")

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplicationWithMode(configPath, *nogui)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	if *nogui {
		config := application.GetConfig()
		config.Video.Backend = "headless"
		fmt.Println("headless mode requested")
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("application cleanup error: %v", err)
		}
	}()

	if *debug {
		config := application.GetConfig()
		config.UpdateDebug(true, true, true)
		application.ApplyDebugSettings()
		fmt.Println("debug mode enabled")
	}

	if *romFile != "" {
		fmt.Printf("loading ROM: %s\n", *romFile)
		if err := application.LoadROM(*romFile); err != nil {
			log.Fatalf("failed to load ROM: %v", err)
		}
		fmt.Println("ROM loaded")

		if *debug {
			application.ApplyDebugSettings()
		}
	}

	if *nogui {
		if *romFile == "" {
			log.Fatal("ROM file required for headless mode")
		}
		runHeadlessMode(application)
	} else {
		fmt.Println("starting GUI mode...")
		if err := runGUIMode(application); err != nil {
			log.Fatalf("GUI mode failed: %v", err)
		}
	}

	fmt.Println("shutting down...")
}

// runGUIMode runs the full presentation-backed application loop.
func runGUIMode(application *app.Application) error {
	config := application.GetConfig()
	windowWidth, windowHeight := config.WindowResolution()
	fmt.Printf("  window: %dx%d (scale %dx)\n", windowWidth, windowHeight, config.Video.WindowScale)
	fmt.Printf("  video: %s, %s, vsync: %t\n", config.Video.Filter, config.Video.AspectRatio, config.Video.VSync)

	if err := application.Run(); err != nil {
		return fmt.Errorf("application run failed: %v", err)
	}

	fmt.Printf("session statistics:\n")
	fmt.Printf("  frames rendered: %d\n", application.GetFrameCount())
	fmt.Printf("  session time: %v\n", application.GetUptime())
	fmt.Printf("  average fps: %.1f\n", application.GetFPS())

	return nil
}

// runHeadlessMode drives the machine for a fixed number of frames
// without a presentation backend, printing progress every 30 frames.
func runHeadlessMode(application *app.Application) {
	fmt.Println("running headless for 120 frames (~2s of emulated time)...")

	machine := application.GetMachine()
	if machine == nil {
		fmt.Println("machine not initialized")
		return
	}

	const targetFrames = 120
	for frame := 0; frame < targetFrames; frame++ {
		machine.Frame()

		if frame%30 == 29 {
			fmt.Printf("%d/%d frames complete\n", frame+1, targetFrames)
		}
	}

	fmt.Println("headless run complete")
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\ninterrupt received, shutting down")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("x16emu")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  A cycle-timed emulator core for an 8-bit retro computer: a 65C02-class")
	fmt.Println("  CPU, an address-decoded memory bus, a VERA-style video coprocessor,")
	fmt.Println("  and a pair of PS/2 ports.")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  x16emu [options]                    start GUI mode without a ROM")
	fmt.Println("  x16emu -rom <file> [options]        start with a ROM image loaded")
	fmt.Println("  x16emu -nogui -rom <file> [options] run headless")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("SPECIAL KEYS:")
	fmt.Println("  Escape (2x)  quit (double-tap within 3 seconds)")
	fmt.Println("  F1-F5        save state")
	fmt.Println("  Shift+F1-F5  load state")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("  Config file: ./config/x16emu.json")
	fmt.Println("  ROMs:        ./roms/")
	fmt.Println("  Frame dumps: ./frames/")
}
