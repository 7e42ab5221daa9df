package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/levels"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "pollywog.toml"

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Game       GameConfig       `toml:"game"`
	Input      InputConfig      `toml:"input"`
	Logging    LoggingConfig    `toml:"logging"`
	Debug      DebugConfig      `toml:"debug"`
}

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Fullscreen bool   `toml:"fullscreen"`
}

type SimulationConfig struct {
	TPS int `toml:"tps"`
}

type GameConfig struct {
	Level           string `toml:"level"`
	SkipStartScreen bool   `toml:"skip_start_screen"`
}

// InputConfig binds each action to ebiten key names.
type InputConfig struct {
	Left    []string `toml:"left"`
	Right   []string `toml:"right"`
	Jump    []string `toml:"jump"`
	Grapple []string `toml:"grapple"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Physics     bool   `toml:"physics"`
	MetricsAddr string `toml:"metrics_addr"`
	Watch       bool   `toml:"watch"`
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  common.BaseWidth,
			Height: common.BaseHeight,
			Title:  "Pollywog",
		},
		Simulation: SimulationConfig{
			TPS: 60,
		},
		Game: GameConfig{
			Level: levels.DefaultLevel,
		},
		Input: InputConfig{
			Left:    []string{"ArrowLeft", "A"},
			Right:   []string{"ArrowRight", "D"},
			Jump:    []string{"ArrowUp", "W", "Space"},
			Grapple: []string{"E", "Slash"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Simulation.TPS <= 0 || c.Simulation.TPS > 1000 {
		return fmt.Errorf("config: simulation tps %d out of range (1..1000)", c.Simulation.TPS)
	}
	if c.Game.Level == "" {
		return fmt.Errorf("config: game level must not be empty")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: logging format %q must be json or console", c.Logging.Format)
	}
	for name, keys := range map[string][]string{
		"left": c.Input.Left, "right": c.Input.Right, "jump": c.Input.Jump, "grapple": c.Input.Grapple,
	} {
		if len(keys) == 0 {
			return fmt.Errorf("config: input %s has no keys bound", name)
		}
	}
	return nil
}
