package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	AppDirName = "timing-grid"
	FileName   = "config.yaml"

	DefaultDurationS    = 10
	DefaultSpeedMps     = 10.0
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400
	DefaultLogLevel     = "info"
)

// ErrInvalidSettings is returned when run settings fail validation.
var ErrInvalidSettings = errors.New("invalid run settings")

type Config struct {
	Run    RunSettings  `yaml:"run"`
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
}

// RunSettings are the user-editable parameters of a run.
type RunSettings struct {
	DurationS int     `yaml:"duration_s"`
	SpeedMps  float64 `yaml:"speed_mps"`
}

type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func DefaultConfig() *Config {
	return &Config{
		Run: RunSettings{
			DurationS: DefaultDurationS,
			SpeedMps:  DefaultSpeedMps,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath is the config file location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, FileName), nil
}

// Load reads path over the defaults. An empty path or a missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height)
	}
	return nil
}

func (r RunSettings) Validate() error {
	if r.DurationS <= 0 {
		return fmt.Errorf("%w: duration %d s must be positive", ErrInvalidSettings, r.DurationS)
	}
	if r.SpeedMps <= 0 {
		return fmt.Errorf("%w: speed %g m/s must be positive", ErrInvalidSettings, r.SpeedMps)
	}
	return nil
}

// ParseRunSettings turns the text of the settings form into validated
// settings.
func ParseRunSettings(durationText, speedText string) (RunSettings, error) {
	duration, err := ParseDuration(durationText)
	if err != nil {
		return RunSettings{}, err
	}
	speed, err := ParseSpeed(speedText)
	if err != nil {
		return RunSettings{}, err
	}
	return RunSettings{DurationS: duration, SpeedMps: speed}, nil
}

func ParseDuration(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q is not a whole number of seconds", ErrInvalidSettings, text)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidSettings)
	}
	return v, nil
}

func ParseSpeed(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: speed %q is not a number", ErrInvalidSettings, text)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: speed must be positive", ErrInvalidSettings)
	}
	return v, nil
}
