package engine

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/mangoba/admute/internal/config"
	"github.com/mangoba/admute/internal/logger"
)

// fakeScanner replays a fixed sequence of observations, then repeats the
// last one.
type fakeScanner struct {
	obs []Observation
	i   int
}

func (f *fakeScanner) Scan() Observation {
	if len(f.obs) == 0 {
		return Observation{Icon: IconUnknown}
	}
	if f.i >= len(f.obs) {
		return f.obs[len(f.obs)-1]
	}
	o := f.obs[f.i]
	f.i++
	return o
}

type fakeActuator struct {
	fail        bool
	muteCalls   int
	unmuteCalls int
}

func (f *fakeActuator) Name() string { return "fake" }

func (f *fakeActuator) ApplyMute(mute bool) bool {
	if mute {
		f.muteCalls++
	} else {
		f.unmuteCalls++
	}
	return !f.fail
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Intervals.AdActive = config.Duration{Duration: time.Millisecond}
	cfg.Intervals.Idle = config.Duration{Duration: time.Millisecond}
	cfg.Intervals.Paused = config.Duration{Duration: time.Millisecond}
	return cfg
}

func newTestMuter(scanner Scanner, act Actuator) *Muter {
	return NewMuter(testConfig(), scanner, act, logger.New(false, nil), nil)
}

func ad(name string) Observation {
	return Observation{AdVisible: true, AdName: name, Icon: IconUnknown}
}

func noAd() Observation {
	return Observation{Icon: IconUnknown}
}

func TestMuterMutesOnAdEdgesOnly(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("adA.png"), ad("adA.png"), noAd(), noAd()}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	// Cycle 1: ad appears — one mute, cadence switches to fast
	interval := m.cycle()
	is.Equal(act.muteCalls, 1)                            // one mute on the appear edge
	is.True(m.Muted())                                    // believed state follows the mute
	is.Equal(interval, m.cfg.Intervals.AdActive.Duration) // fast re-check while ad plays

	// Cycle 2: ad still present — no redundant call
	m.cycle()
	is.Equal(act.muteCalls, 1) // self-loop must not re-mute

	// Cycle 3: ad gone — one unmute, cadence switches to slow
	interval = m.cycle()
	is.Equal(act.unmuteCalls, 1)
	is.True(!m.Muted())
	is.Equal(interval, m.cfg.Intervals.Idle.Duration)

	// Cycle 4: still no ad — nothing happens
	m.cycle()
	is.Equal(act.muteCalls, 1)
	is.Equal(act.unmuteCalls, 1)
}

func TestMuterRetriesFailedMute(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("a.png")}}
	act := &fakeActuator{fail: true}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	m.cycle()
	is.Equal(act.muteCalls, 1)
	is.True(!m.Muted()) // believed state unchanged on failure

	m.cycle()
	is.Equal(act.muteCalls, 2) // same transition retried

	act.fail = false
	m.cycle()
	is.Equal(act.muteCalls, 3)
	is.True(m.Muted())
}

func TestMuterRetriesFailedUnmute(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("a.png"), noAd(), noAd()}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	m.cycle() // mute succeeds
	act.fail = true
	m.cycle()
	is.Equal(act.unmuteCalls, 1)
	is.True(m.Muted()) // still believed muted after a failed unmute

	act.fail = false
	m.cycle()
	is.Equal(act.unmuteCalls, 2)
	is.True(!m.Muted())
}

func TestMuterAdoptsObservedStateWithoutActuator(t *testing.T) {
	is := is.New(t)

	// Player already shows muted while an ad is on screen: the controller
	// agrees instead of issuing its own mute.
	scanner := &fakeScanner{obs: []Observation{{AdVisible: true, AdName: "a.png", Icon: IconMuted}}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	m.cycle()
	is.True(m.Muted())         // observed value adopted
	is.Equal(act.muteCalls, 0) // without any actuator call
}

func TestMuterAdoptsObservedUnmute(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{{Icon: IconUnmuted}}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)
	m.muted.Store(true)

	m.cycle()
	is.True(!m.Muted())          // screen says unmuted, believed follows
	is.Equal(act.unmuteCalls, 0) // the unmute branch is skipped entirely
}

func TestMuterUnknownIconNeverReconciles(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{noAd(), noAd(), noAd()}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	for i := 0; i < 3; i++ {
		m.cycle()
	}
	is.True(!m.Muted())
	is.Equal(act.muteCalls, 0)
	is.Equal(act.unmuteCalls, 0)
}

func TestMuterPauseRunsFailSafeOnce(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("a.png")}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	m.cycle()
	is.True(m.Muted())

	m.Pause()
	interval := m.cycle()
	is.Equal(act.unmuteCalls, 1) // exactly one unmute on the disable edge
	is.True(!m.Muted())
	is.Equal(interval, m.cfg.Intervals.Paused.Duration)

	m.cycle()
	is.Equal(act.unmuteCalls, 1) // paused cycles stay quiet
}

func TestMuterPauseFailSafeIgnoresActuatorFailure(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("a.png")}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)
	m.enabled.Store(true)

	m.cycle()
	act.fail = true
	m.Pause()
	m.cycle()
	is.Equal(act.unmuteCalls, 1)
	is.True(!m.Muted()) // believed state cleared even though the call failed
}

func TestMuterStopUnmutesBeforeReturning(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{obs: []Observation{ad("a.png")}}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)

	m.Start()
	m.Resume()

	deadline := time.Now().Add(2 * time.Second)
	for !m.Muted() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	is.True(m.Muted()) // loop muted on the ad

	m.Stop()
	is.True(!m.Muted())
	is.Equal(act.unmuteCalls, 1) // fail-safe ran exactly once before Stop returned

	m.Stop() // idempotent
	is.Equal(act.unmuteCalls, 1)
}

func TestMuterStartStopWithoutMuteMakesNoCalls(t *testing.T) {
	is := is.New(t)

	scanner := &fakeScanner{}
	act := &fakeActuator{}
	m := newTestMuter(scanner, act)

	m.Start()
	m.Stop()
	is.Equal(act.muteCalls, 0)
	is.Equal(act.unmuteCalls, 0)
}
