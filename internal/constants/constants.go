package constants

import "time"

// Polling cadence
const (
	AdActiveScanInterval = 500 * time.Millisecond // Fast re-check while an ad is playing
	IdleScanInterval     = 5 * time.Second        // Slow scan during normal playback
	PausedPollInterval   = 200 * time.Millisecond // Responsiveness poll while detection is off
)

// Image matching
const (
	MatchTolerance = 45.0 // Color tolerance for pixel comparison (RGB distance)
)

// Asset layout (relative to the configured assets dir)
const (
	AdsSubdir       = "ads"        // One ad template per image file
	VolumeSubdir    = "volume"     // Mute icon pair lives here
	MutedIconFile   = "mute.png"   // Player shows muted
	UnmutedIconFile = "volume.png" // Player shows unmuted
)

// Actuator strategies
const (
	StrategyPulse = "pulse" // PulseAudio sink-input mute by process name
	StrategyClick = "click" // Simulated click on the player's volume icon
)

// Logging
const (
	MaxLogLines = 100 // UI log history cap
)
