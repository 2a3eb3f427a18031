package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mangoba/admute/internal/constants"
)

// Duration wraps time.Duration so interval values can be written as
// strings like "500ms" in the TOML file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Intervals holds the three polling cadences of the controller loop.
type Intervals struct {
	AdActive Duration `toml:"ad_active"`
	Idle     Duration `toml:"idle"`
	Paused   Duration `toml:"paused"`
}

// Config is built once at startup and passed by value; nothing mutates it
// after Load returns.
type Config struct {
	AssetsDir string    `toml:"assets_dir"`
	Process   string    `toml:"process"`
	Strategy  string    `toml:"strategy"`
	Display   int       `toml:"display"`
	Debug     bool      `toml:"debug"`
	Headless  bool      `toml:"headless"`
	Intervals Intervals `toml:"intervals"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		AssetsDir: "assets",
		Process:   "spotify",
		Strategy:  constants.StrategyPulse,
		Display:   0,
		Intervals: Intervals{
			AdActive: Duration{constants.AdActiveScanInterval},
			Idle:     Duration{constants.IdleScanInterval},
			Paused:   Duration{constants.PausedPollInterval},
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; a malformed or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the controller cannot start with.
func Validate(cfg Config) error {
	switch cfg.Strategy {
	case constants.StrategyPulse, constants.StrategyClick:
	default:
		return fmt.Errorf("unknown mute strategy %q (want %q or %q)",
			cfg.Strategy, constants.StrategyPulse, constants.StrategyClick)
	}
	if cfg.Process == "" {
		return errors.New("process name must not be empty")
	}
	if cfg.Intervals.AdActive.Duration <= 0 || cfg.Intervals.Idle.Duration <= 0 || cfg.Intervals.Paused.Duration <= 0 {
		return errors.New("all polling intervals must be positive")
	}
	if cfg.Display < 0 {
		return errors.New("display index must not be negative")
	}
	return nil
}
