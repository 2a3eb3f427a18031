package engine

import (
	"github.com/go-vgo/robotgo"

	"github.com/mangoba/admute/internal/constants"
	"github.com/mangoba/admute/internal/logger"
)

// Actuator applies a target mute state to the player. Implementations must
// never panic; a false return means "not applied, retry later". The
// controller guarantees it is never called redundantly.
type Actuator interface {
	Name() string
	ApplyMute(mute bool) bool
}

// ClickActuator mutes by clicking the player's own volume icon. The icon
// showing the CURRENT state is the toggle: to mute, the visible "unmuted"
// icon is clicked, and vice versa. Useful on remote desktop sessions where
// the native audio session is not the one actually heard.
type ClickActuator struct {
	det *Detector
	log *logger.AppLogger
}

func NewClickActuator(det *Detector, log *logger.AppLogger) *ClickActuator {
	return &ClickActuator{det: det, log: log}
}

func (a *ClickActuator) Name() string { return constants.StrategyClick }

func (a *ClickActuator) ApplyMute(mute bool) bool {
	target := IconUnmuted
	if !mute {
		target = IconMuted
	}

	pt, ok := a.det.LocateIcon(target)
	if !ok {
		a.log.Warn("could not %s: %s icon not found on screen", muteVerb(mute), target)
		return false
	}

	robotgo.Move(pt.X, pt.Y)
	robotgo.Click("left")
	a.log.Info("player %sd (clicked %s icon at %d, %d)", muteVerb(mute), target, pt.X, pt.Y)
	return true
}

func muteVerb(mute bool) string {
	if mute {
		return "mute"
	}
	return "unmute"
}
