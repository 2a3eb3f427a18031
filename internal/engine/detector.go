package engine

import (
	"image"

	"github.com/mangoba/admute/internal/constants"
	"github.com/mangoba/admute/internal/logger"
)

// IconState is what the player's own UI shows as its mute state, as read
// from the icon template pair. Unknown is a steady-state possibility (player
// minimised, icons not loaded), not an error.
type IconState int

const (
	IconUnknown IconState = iota
	IconMuted
	IconUnmuted
)

func (s IconState) String() string {
	switch s {
	case IconMuted:
		return "muted"
	case IconUnmuted:
		return "unmuted"
	default:
		return "unknown"
	}
}

// Screen is the capture/matching surface the detector reads from.
// *screen.Searcher is the real implementation.
type Screen interface {
	Capture() (image.Image, error)
	Locate(screenImg, template image.Image, tolerance float64) (image.Point, bool)
	Origin() image.Point
}

// Observation is the result of one detection cycle. It is transient; nothing
// is carried over between cycles.
type Observation struct {
	AdVisible bool
	AdName    string
	AdPos     image.Point // global screen coordinates
	Icon      IconState
}

// Detector answers two independent questions per cycle from a single screen
// capture: is an ad visible, and what mute state does the player show.
type Detector struct {
	screen Screen
	assets Assets
	log    *logger.AppLogger
}

func NewDetector(scr Screen, assets Assets, log *logger.AppLogger) *Detector {
	return &Detector{screen: scr, assets: assets, log: log}
}

// Scan captures the screen once and derives the full observation. Capture or
// matcher failures are downgraded to misses here; the loop never sees them.
func (d *Detector) Scan() Observation {
	frame, err := d.capture()
	if err != nil {
		return Observation{Icon: IconUnknown}
	}

	obs := Observation{Icon: d.iconState(frame)}

	for _, t := range d.assets.Ads {
		d.log.Debug("checking ad template %q", t.Name)
		if pt, ok := d.screen.Locate(frame, t.Image, constants.MatchTolerance); ok {
			obs.AdVisible = true
			obs.AdName = t.Name
			obs.AdPos = pt.Add(d.screen.Origin())
			break // first match wins
		}
	}
	return obs
}

// ObserveIconState is a one-shot, fresh-capture read of the on-screen mute
// indicator, used by diagnostics.
func (d *Detector) ObserveIconState() IconState {
	frame, err := d.capture()
	if err != nil {
		return IconUnknown
	}
	return d.iconState(frame)
}

// LocateIcon finds one icon of the pair on a fresh capture and returns its
// center in global screen coordinates. Used by the UI-click actuator.
func (d *Detector) LocateIcon(state IconState) (image.Point, bool) {
	tpl := d.assets.Icon(state)
	if tpl == nil {
		return image.Point{}, false
	}
	frame, err := d.capture()
	if err != nil {
		return image.Point{}, false
	}
	pt, ok := d.screen.Locate(frame, tpl, constants.MatchTolerance)
	if !ok {
		return image.Point{}, false
	}
	return pt.Add(d.screen.Origin()), true
}

// iconState checks the muted icon first; seeing it wins over the volume icon.
func (d *Detector) iconState(frame image.Image) IconState {
	if d.assets.MutedIcon != nil {
		if _, ok := d.screen.Locate(frame, d.assets.MutedIcon, constants.MatchTolerance); ok {
			return IconMuted
		}
	}
	if d.assets.UnmutedIcon != nil {
		if _, ok := d.screen.Locate(frame, d.assets.UnmutedIcon, constants.MatchTolerance); ok {
			return IconUnmuted
		}
	}
	return IconUnknown
}

func (d *Detector) capture() (image.Image, error) {
	frame, err := d.screen.Capture()
	if err != nil {
		// Treated as a detection miss, never propagated.
		d.log.Debug("screen capture failed: %v", err)
		return nil, err
	}
	return frame, nil
}
