package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/mangoba/admute/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admute.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	is.NoErr(err)
	is.Equal(cfg.Process, "spotify")
	is.Equal(cfg.Strategy, constants.StrategyPulse)
	is.Equal(cfg.Intervals.AdActive.Duration, constants.AdActiveScanInterval)
	is.Equal(cfg.Intervals.Idle.Duration, constants.IdleScanInterval)
}

func TestLoadOverridesDefaults(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, `
process = "vlc"
strategy = "click"
display = 1
debug = true

[intervals]
ad_active = "250ms"
idle = "10s"
paused = "100ms"
`)
	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Process, "vlc")
	is.Equal(cfg.Strategy, constants.StrategyClick)
	is.Equal(cfg.Display, 1)
	is.True(cfg.Debug)
	is.Equal(cfg.Intervals.AdActive.Duration, 250*time.Millisecond)
	is.Equal(cfg.Intervals.Idle.Duration, 10*time.Second)
	is.Equal(cfg.Intervals.Paused.Duration, 100*time.Millisecond)
	is.Equal(cfg.AssetsDir, "assets") // untouched fields keep defaults
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	is := is.New(t)

	_, err := Load(writeConfig(t, `strategy = "telepathy"`))
	is.True(err != nil)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	is := is.New(t)

	_, err := Load(writeConfig(t, "[intervals]\nidle = \"fast\"\n"))
	is.True(err != nil)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	cfg := Default()
	is.NoErr(Validate(cfg))

	bad := cfg
	bad.Process = ""
	is.True(Validate(bad) != nil)

	bad = cfg
	bad.Intervals.Idle = Duration{}
	is.True(Validate(bad) != nil)

	bad = cfg
	bad.Display = -1
	is.True(Validate(bad) != nil)
}
