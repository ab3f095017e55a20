package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ayn2op/lazybar/animate"
	"github.com/gdamore/tcell/v3"
)

// ErrNotFound is returned when a configuration file does not exist.
var ErrNotFound = errors.New("config: file not found")

// Config is the decoded configuration file.
type Config struct {
	Scrollbar ScrollbarConfig `toml:"scrollbar"`
	Keybinds  KeybindConfig   `toml:"keybinds"`
	Help      HelpConfig      `toml:"help"`
}

// HelpConfig configures the help overlay.
type HelpConfig struct {
	// Border names the border set of the help overlay.
	Border string `toml:"border"`
}

// BorderNames lists the accepted values of help.border.
var BorderNames = []string{"plain", "round", "thick", "double", "hidden"}

// ScrollbarConfig holds the look and timings of the scrollbar. Durations
// are in milliseconds.
type ScrollbarConfig struct {
	ThumbThickness  int     `toml:"thumb_thickness"`
	MinThumbLength  float64 `toml:"min_thumb_length"`
	ThumbLength     float64 `toml:"thumb_length"`
	SmallThreshold  int     `toml:"small_threshold"`
	DormantDelayMs  int     `toml:"dormant_delay_ms"`
	HideDurationMs  int     `toml:"hide_duration_ms"`
	ScrollSettleMs  int     `toml:"scroll_settle_ms"`
	SpringStiffness float64 `toml:"spring_stiffness"`
	ThumbColor      string  `toml:"thumb_color"`
	DragColor       string  `toml:"drag_color"`
	TrackColor      string  `toml:"track_color"`
	ShowTrack       bool    `toml:"show_track"`
}

// KeybindConfig maps each action to its keys, named like "pgdn" or
// "ctrl+f".
type KeybindConfig struct {
	JumpStart []string `toml:"jump_start"`
	JumpEnd   []string `toml:"jump_end"`
	PageUp    []string `toml:"page_up"`
	PageDown  []string `toml:"page_down"`
	Help      []string `toml:"help"`
	Quit      []string `toml:"quit"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Scrollbar: ScrollbarConfig{
			ThumbThickness:  1,
			MinThumbLength:  1,
			ThumbLength:     3,
			SmallThreshold:  100,
			DormantDelayMs:  1500,
			HideDurationMs:  600,
			ScrollSettleMs:  150,
			SpringStiffness: animate.StiffnessLow,
			ThumbColor:      "#8a8a8a",
			DragColor:       "#ff00ff",
			TrackColor:      "#303030",
		},
		Keybinds: KeybindConfig{
			JumpStart: []string{"home", "g"},
			JumpEnd:   []string{"end", "G"},
			PageUp:    []string{"pgup", "ctrl+b"},
			PageDown:  []string{"pgdn", "ctrl+f"},
			Help:      []string{"?"},
			Quit:      []string{"q", "ctrl+c"},
		},
		Help: HelpConfig{
			Border: "round",
		},
	}
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lazybar"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration from the default path. A missing file yields
// the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads the configuration at path over the defaults. Keys missing
// from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	s := c.Scrollbar
	switch {
	case s.ThumbThickness < 1:
		return fmt.Errorf("config: scrollbar.thumb_thickness must be at least 1, got %d", s.ThumbThickness)
	case s.MinThumbLength < 0 || s.ThumbLength < 0:
		return fmt.Errorf("config: scrollbar thumb lengths must not be negative")
	case s.DormantDelayMs < 0 || s.HideDurationMs < 0 || s.ScrollSettleMs < 0:
		return fmt.Errorf("config: scrollbar durations must not be negative")
	case s.SpringStiffness <= 0:
		return fmt.Errorf("config: scrollbar.spring_stiffness must be positive, got %g", s.SpringStiffness)
	}
	for name, value := range map[string]string{
		"thumb_color": s.ThumbColor,
		"drag_color":  s.DragColor,
		"track_color": s.TrackColor,
	} {
		if _, err := animate.ParseHexColor(value); err != nil {
			return fmt.Errorf("config: scrollbar.%s: %w", name, err)
		}
	}
	if !slices.Contains(BorderNames, c.Help.Border) {
		return fmt.Errorf("config: help.border must be one of %v, got %q", BorderNames, c.Help.Border)
	}
	return nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

func (s ScrollbarConfig) DormantDelay() time.Duration {
	return time.Duration(s.DormantDelayMs) * time.Millisecond
}

func (s ScrollbarConfig) HideDuration() time.Duration {
	return time.Duration(s.HideDurationMs) * time.Millisecond
}

func (s ScrollbarConfig) ScrollSettle() time.Duration {
	return time.Duration(s.ScrollSettleMs) * time.Millisecond
}

// Colors returns the parsed thumb, drag and track colors. Invalid values fall
// back to the defaults.
func (s ScrollbarConfig) Colors() (thumb, drag, track tcell.Color) {
	defaults := DefaultConfig().Scrollbar
	parse := func(value, fallback string) tcell.Color {
		c, err := animate.ParseHexColor(value)
		if err != nil {
			c, _ = animate.ParseHexColor(fallback)
		}
		return c
	}
	return parse(s.ThumbColor, defaults.ThumbColor),
		parse(s.DragColor, defaults.DragColor),
		parse(s.TrackColor, defaults.TrackColor)
}
