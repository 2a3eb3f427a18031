package engine

import (
	"fmt"

	"github.com/mangoba/admute/internal/config"
	"github.com/mangoba/admute/internal/constants"
	"github.com/mangoba/admute/internal/engine/audio"
	"github.com/mangoba/admute/internal/engine/screen"
	"github.com/mangoba/admute/internal/logger"
)

// System wires the searcher, detector, actuator and controller together for
// one configuration. Built once at startup.
type System struct {
	Config   config.Config
	Searcher *screen.Searcher
	Detector *Detector
	Muter    *Muter
}

// Build assembles the full system. Errors here are startup-fatal: a missing
// assets directory, an unknown strategy, or a strategy whose backing tool is
// unavailable.
func Build(cfg config.Config, log *logger.AppLogger, statusFunc func(string)) (*System, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	scr := screen.NewSearcher()
	scr.SetDisplayID(cfg.Display)

	assets, err := LoadAssets(scr, cfg.AssetsDir, log)
	if err != nil {
		return nil, err
	}
	det := NewDetector(scr, assets, log)

	var act Actuator
	switch cfg.Strategy {
	case constants.StrategyPulse:
		if !audio.Available() {
			return nil, fmt.Errorf("strategy %q requires pactl on PATH", cfg.Strategy)
		}
		act = audio.NewPulseActuator(cfg.Process, log)
	case constants.StrategyClick:
		act = NewClickActuator(det, log)
	default:
		return nil, fmt.Errorf("unknown mute strategy %q", cfg.Strategy)
	}

	return &System{
		Config:   cfg,
		Searcher: scr,
		Detector: det,
		Muter:    NewMuter(cfg, det, act, log, statusFunc),
	}, nil
}
