package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-isokeys/layout"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// SourceType identifies where key events come from
type SourceType string

const (
	SourceEvdev    SourceType = "evdev"    // Linux input device, real key release
	SourceTerminal SourceType = "terminal" // terminal keys, release emulated
)

// OutputConfig selects the MIDI destination
type OutputConfig struct {
	PortName    string `json:"portName,omitempty"`
	PortIndex   int    `json:"portIndex"` // -1 = none
	Virtual     bool   `json:"virtual,omitempty"`
	VirtualName string `json:"virtualName,omitempty"`
}

// InputConfig selects the key event source
type InputConfig struct {
	Source SourceType `json:"source"`
	Device string     `json:"device,omitempty"` // evdev path, autodetect if empty
	Grab   bool       `json:"grab"`             // evdev exclusive access
	GateMS int        `json:"gateMs,omitempty"` // terminal note length
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GIMP .gpl path, embedded default if empty
}

// Config is the main configuration structure
type Config struct {
	Preset      string       `json:"preset,omitempty"`
	Upper       int          `json:"upper"`
	Lower       int          `json:"lower"`
	Orientation string       `json:"orientation"`
	Transpose   int          `json:"transpose"`
	Channel     int          `json:"channel"`  // 1-16
	Velocity    int          `json:"velocity"` // 1-127
	Output      OutputConfig `json:"output"`
	Input       InputConfig  `json:"input"`
	UI          UIConfig     `json:"ui,omitempty"`
	Debug       bool         `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Preset:      "Tonnetz",
		Upper:       4,
		Lower:       -3,
		Orientation: "vertical",
		Channel:     1,
		Velocity:    64,
		Output: OutputConfig{
			PortIndex: -1,
		},
		Input: InputConfig{
			Source: SourceTerminal,
			Grab:   true,
			GateMS: 400,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-isokeys"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file; missing fields keep their defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if _, err := layout.ParseOrientation(c.Orientation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Channel < 1 || c.Channel > 16 {
		return fmt.Errorf("%w: channel %d (want 1-16)", ErrInvalid, c.Channel)
	}
	if c.Velocity < 1 || c.Velocity > 127 {
		return fmt.Errorf("%w: velocity %d (want 1-127)", ErrInvalid, c.Velocity)
	}
	switch c.Input.Source {
	case SourceEvdev, SourceTerminal:
	default:
		return fmt.Errorf("%w: input source %q", ErrInvalid, c.Input.Source)
	}
	if c.Input.GateMS < 0 {
		return fmt.Errorf("%w: gate %dms", ErrInvalid, c.Input.GateMS)
	}
	return nil
}

// Gate returns the terminal note length
func (c *Config) Gate() time.Duration {
	return time.Duration(c.Input.GateMS) * time.Millisecond
}
