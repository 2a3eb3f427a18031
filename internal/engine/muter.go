package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mangoba/admute/internal/config"
	"github.com/mangoba/admute/internal/logger"
)

// Scanner is the detection surface the controller polls each cycle.
// *Detector is the real implementation.
type Scanner interface {
	Scan() Observation
}

// Muter owns the believed mute state and drives the mute/unmute side effect
// on ad-presence edges. The loop goroutine is the sole writer of the
// believed state; the shell only flips the enabled flag and stops the loop.
//
// Invariant: once Stop returns, the believed state is false and, if it was
// true, exactly one unmute has been attempted (fail-safe).
type Muter struct {
	cfg        config.Config
	scanner    Scanner
	actuator   Actuator
	log        *logger.AppLogger
	statusFunc func(string)

	enabled atomic.Bool
	muted   atomic.Bool // believed mute state; written only by the loop

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewMuter(cfg config.Config, scanner Scanner, actuator Actuator, log *logger.AppLogger, statusFunc func(string)) *Muter {
	if statusFunc == nil {
		statusFunc = func(string) {}
	}
	return &Muter{
		cfg:        cfg,
		scanner:    scanner,
		actuator:   actuator,
		log:        log,
		statusFunc: statusFunc,
	}
}

// Start launches the controller loop in the paused state. Safe to call
// repeatedly; a running loop is left alone.
func (m *Muter) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stopChan = make(chan struct{})
	m.wg.Add(1)
	go m.loop()
	m.log.Debug("controller loop started (strategy=%s)", m.actuator.Name())
}

// Resume enables detection and muting.
func (m *Muter) Resume() {
	if m.enabled.CompareAndSwap(false, true) {
		m.log.Info("muter running")
	}
}

// Pause disables detection. The loop notices within one paused interval and
// performs the fail-safe unmute if it had muted the player.
func (m *Muter) Pause() {
	if m.enabled.CompareAndSwap(true, false) {
		m.log.Info("muter paused")
	}
}

// Enabled reports whether detection is currently active.
func (m *Muter) Enabled() bool { return m.enabled.Load() }

// Muted reports the believed mute state.
func (m *Muter) Muted() bool { return m.muted.Load() }

// Stop terminates the loop and waits for it to exit. The fail-safe unmute
// has completed by the time Stop returns, so callers may exit the process
// immediately afterwards.
func (m *Muter) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.enabled.Store(false)
	close(m.stopChan)
	m.wg.Wait()
	m.running = false
	m.log.Info("muter stopped")
	m.statusFunc("Status: Stopped")
}

func (m *Muter) loop() {
	defer m.wg.Done()
	defer m.failSafeUnmute()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-timer.C:
			timer.Reset(m.cycle())
		}
	}
}

// cycle performs one poll and returns how long to wait before the next one.
func (m *Muter) cycle() time.Duration {
	if !m.enabled.Load() {
		m.failSafeUnmute()
		m.statusFunc("Status: Paused")
		return m.cfg.Intervals.Paused.Duration
	}

	m.log.Debug("scanning screen for ads (muted=%v)", m.muted.Load())
	obs := m.scanner.Scan()

	// The player's own UI is ground truth: adopt an externally applied mute
	// change without fighting it (no actuator call).
	if obs.Icon != IconUnknown {
		observed := obs.Icon == IconMuted
		if observed != m.muted.Load() {
			m.log.Debug("mute state corrected from screen: %v -> %v", m.muted.Load(), observed)
			m.muted.Store(observed)
		}
	}

	if obs.AdVisible {
		if !m.muted.Load() {
			m.log.Info("ad detected via %q at (%d, %d) — muting", obs.AdName, obs.AdPos.X, obs.AdPos.Y)
			if m.actuator.ApplyMute(true) {
				m.muted.Store(true)
			} else {
				m.log.Warn("mute not applied; retrying next cycle")
			}
		}
		m.statusFunc("Status: Ad active")
		return m.cfg.Intervals.AdActive.Duration
	}

	m.log.Debug("no ad on screen")
	if m.muted.Load() {
		m.log.Info("ad gone — unmuting")
		if m.actuator.ApplyMute(false) {
			m.muted.Store(false)
		} else {
			m.log.Warn("unmute not applied; retrying next cycle")
		}
	}
	m.statusFunc("Status: Watching for ads...")
	return m.cfg.Intervals.Idle.Duration
}

// failSafeUnmute clears the believed mute state on pause or shutdown. The
// believed state goes to false regardless of actuator success: the muter
// must never stay logically muted-by-us once it is no longer watching.
func (m *Muter) failSafeUnmute() {
	if !m.muted.Load() {
		return
	}
	m.log.Info("restoring audio before going quiet")
	if !m.actuator.ApplyMute(false) {
		m.log.Warn("fail-safe unmute not confirmed by actuator")
	}
	m.muted.Store(false)
}
