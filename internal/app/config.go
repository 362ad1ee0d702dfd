// Package app provides configuration management and the top-level
// application wiring for the machine.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	Machine MachineConfig `json:"machine"`
	Banks   BanksConfig   `json:"banks"`
	Video   VideoConfig   `json:"video"`
	Debug   DebugConfig   `json:"debug"`
	Paths   PathsConfig   `json:"paths"`

	configPath string
	loaded     bool
}

// MachineConfig contains the CPU clock rate and video region, the two
// knobs that together fix the frame-timing relationship between CPU
// cycles and output frames.
type MachineConfig struct {
	ClockHz int    `json:"clock_hz"`
	Region  string `json:"region"` // "NTSC", "PAL"
}

// BanksConfig contains the RAM/ROM bank counts the memory bus is built
// with.
type BanksConfig struct {
	RAMBanks int `json:"ram_banks"`
	ROMBanks int `json:"rom_banks"`
}

// VideoConfig contains presentation-layer settings (backend, window
// scale, vsync, aspect ratio, filter), plus post-processing knobs forwarded to
// presentation.VideoProcessor.
type VideoConfig struct {
	Backend      string  `json:"backend"` // "ebitengine", "headless", "terminal"
	WindowScale  int     `json:"window_scale"`
	VSync        bool    `json:"vsync"`
	AspectRatio  string  `json:"aspect_ratio"` // "4:3", "stretch"
	Filter       string  `json:"filter"`       // "nearest", "linear"
	Brightness   float32 `json:"brightness"`
	Contrast     float32 `json:"contrast"`
	Saturation   float32 `json:"saturation"`
}

// DebugConfig contains per-subsystem trace flags.
type DebugConfig struct {
	ShowFPS         bool   `json:"show_fps"`
	EnableLogging   bool   `json:"enable_logging"`
	LogLevel        string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
	CPUTracing      bool   `json:"cpu_tracing"`
	VideoTracing    bool   `json:"video_tracing"`
	MemoryTracing   bool   `json:"memory_tracing"`
	FrameDumping    bool   `json:"frame_dumping"`
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROMs      string `json:"roms"`
	Config    string `json:"config"`
	Logs      string `json:"logs"`
	FrameDump string `json:"frame_dump"`
}

// NewConfig creates a new configuration with default values.
func NewConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			ClockHz: 8_000_000,
			Region:  "NTSC",
		},
		Banks: BanksConfig{
			RAMBanks: 8,  // 8 * 8 KiB = 64 KiB banked RAM
			ROMBanks: 32, // 32 * 16 KiB = 512 KiB banked ROM
		},
		Video: VideoConfig{
			Backend:     "ebitengine",
			WindowScale: 1,
			VSync:       true,
			AspectRatio: "4:3",
			Filter:      "nearest",
			Brightness:  1.0,
			Contrast:    1.0,
			Saturation:  1.0,
		},
		Debug: DebugConfig{
			ShowFPS:       false,
			EnableLogging: false,
			LogLevel:      "INFO",
		},
		Paths: PathsConfig{
			ROMs:      "./roms",
			Config:    "./config",
			Logs:      "./logs",
			FrameDump: "./frames",
		},
		loaded: false,
	}
}

// LoadFromFile loads configuration from a JSON file, saving a default
// one if path doesn't yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	if err := c.createDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %v", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

// validate clamps out-of-range values to defaults rather than erroring.
func (c *Config) validate() error {
	if c.Machine.ClockHz <= 0 {
		c.Machine.ClockHz = 8_000_000
	}
	if c.Machine.Region != "NTSC" && c.Machine.Region != "PAL" {
		c.Machine.Region = "NTSC"
	}

	if c.Banks.RAMBanks <= 0 {
		c.Banks.RAMBanks = 1
	}
	if c.Banks.ROMBanks <= 0 {
		c.Banks.ROMBanks = 1
	}

	if c.Video.WindowScale <= 0 {
		c.Video.WindowScale = 1
	}
	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}
	if c.Video.Contrast < 0.1 || c.Video.Contrast > 3.0 {
		c.Video.Contrast = 1.0
	}
	if c.Video.Saturation < 0.0 || c.Video.Saturation > 3.0 {
		c.Video.Saturation = 1.0
	}

	return nil
}

// createDirectories creates required directories.
func (c *Config) createDirectories() error {
	dirs := []string{c.Paths.ROMs, c.Paths.Config, c.Paths.Logs, c.Paths.FrameDump}
	for _, dir := range dirs {
		if dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %v", dir, err)
			}
		}
	}
	return nil
}

// ScreenResolution returns the coprocessor's native output resolution.
func (c *Config) ScreenResolution() (int, int) {
	return 640, 480
}

// WindowResolution returns the window resolution based on WindowScale.
func (c *Config) WindowResolution() (int, int) {
	w, h := c.ScreenResolution()
	return w * c.Video.WindowScale, h * c.Video.WindowScale
}

// AspectRatio returns the configured aspect ratio as a float.
func (c *Config) AspectRatio() float32 {
	switch c.Video.AspectRatio {
	case "stretch":
		w, h := c.ScreenResolution()
		return float32(w) / float32(h)
	default:
		return 4.0 / 3.0
	}
}

// IsLoaded returns whether the configuration was loaded from file.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Clone creates a deep copy of the configuration via JSON round-trip.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return NewConfig()
	}

	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return NewConfig()
	}

	clone.configPath = c.configPath
	clone.loaded = c.loaded
	return clone
}

// UpdateMachine updates machine clock/region configuration.
func (c *Config) UpdateMachine(clockHz int, region string) {
	c.Machine.ClockHz = clockHz
	c.Machine.Region = region
}

// UpdateVideo updates output-mode and post-processing configuration.
func (c *Config) UpdateVideo(vsync bool, filter string, brightness, contrast, saturation float32) {
	c.Video.VSync = vsync
	c.Video.Filter = filter
	c.Video.Brightness = brightness
	c.Video.Contrast = contrast
	c.Video.Saturation = saturation
}

// UpdateDebug updates debug trace-flag configuration.
func (c *Config) UpdateDebug(showFPS, enableLogging, cpuTracing bool) {
	c.Debug.ShowFPS = showFPS
	c.Debug.EnableLogging = enableLogging
	c.Debug.CPUTracing = cpuTracing
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/x16emu.json"
}

// GetDefaultConfigDir returns the default configuration directory.
func GetDefaultConfigDir() string {
	return "./config"
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}
