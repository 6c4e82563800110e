package chart

import (
	"testing"
	"time"

	"bazi/internal/core/ephemeris"
	"bazi/internal/core/ephemeris/vsop87"
	"bazi/internal/core/solarterm"
	"bazi/internal/platform/config"
	"bazi/internal/platform/testkit"
)

func TestFromConfig(t *testing.T) {
	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)

	e := New(reg, FromConfig(config.New().Prefix("BAZI_CFGTEST_"), reg)...)
	if e.DefaultBackend() != "vsop87" || e.nudge != solarterm.DefaultNudge {
		t.Fatalf("defaults: backend=%q nudge=%s", e.DefaultBackend(), e.nudge)
	}

	t.Setenv("BAZI_CFGTEST_EPHEMERIS", "VSOP87-Direct")
	t.Setenv("BAZI_CFGTEST_NUDGE", "10ms")
	e = New(reg, FromConfig(config.New().Prefix("BAZI_CFGTEST_"), reg)...)
	if e.DefaultBackend() != "vsop87-direct" || e.nudge != 10*time.Millisecond {
		t.Fatalf("env: backend=%q nudge=%s", e.DefaultBackend(), e.nudge)
	}
}

func TestFromConfigRejectsUnknownBackend(t *testing.T) {
	reg := ephemeris.NewRegistry()
	vsop87.Register(reg)
	t.Setenv("BAZI_CFGTEST_EPHEMERIS", "jpl")
	testkit.MustPanic(t, func() { FromConfig(config.New().Prefix("BAZI_CFGTEST_"), reg) })
}
