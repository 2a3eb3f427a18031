package engine

import (
	"github.com/go-vgo/robotgo"

	"github.com/mangoba/admute/internal/constants"
	"github.com/mangoba/admute/internal/engine/audio"
)

// Diagnose writes a one-shot report of everything the muter depends on:
// audio-session visibility, process presence, the current on-screen mute
// state, and a per-template screen scan. Read-only; controller state is not
// touched.
func (s *System) Diagnose(logf func(string, ...interface{})) {
	logf("--- diagnose start ---")
	logf("mute strategy: %s", s.Config.Strategy)
	logf("target process: %s", s.Config.Process)

	names, err := audio.Sessions()
	if err != nil {
		logf("audio sessions unavailable: %v", err)
	} else {
		logf("active audio sessions: %v", names)
		logf("%s audio session found: %v", s.Config.Process, audio.HasSession(names, s.Config.Process))
	}

	ids, err := robotgo.FindIds(s.Config.Process)
	logf("%s process running: %v", s.Config.Process, err == nil && len(ids) > 0)

	switch s.Detector.ObserveIconState() {
	case IconMuted:
		logf("on-screen mute state: MUTED (mute icon visible)")
	case IconUnmuted:
		logf("on-screen mute state: UNMUTED (volume icon visible)")
	default:
		logf("on-screen mute state: UNKNOWN (neither icon found — is the player visible?)")
	}

	ads := s.Detector.assets.Ads
	logf("ad templates loaded: %d", len(ads))

	frame, err := s.Searcher.Capture()
	if err != nil {
		logf("screen capture failed: %v", err)
		logf("--- diagnose end ---")
		return
	}

	anyFound := false
	for _, t := range ads {
		if pt, ok := s.Searcher.Locate(frame, t.Image, constants.MatchTolerance); ok {
			logf("  FOUND %q at (%d, %d)", t.Name, pt.X, pt.Y)
			anyFound = true
		} else {
			logf("  not found: %q", t.Name)
		}
	}
	if len(ads) > 0 && !anyFound {
		logf("no ad templates matched. Is the player showing an ad right now?")
	}

	logf("--- diagnose end ---")
}
