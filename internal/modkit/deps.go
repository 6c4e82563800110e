// Package modkit provides module wiring and core deps
package modkit

import (
	"bazi/internal/core/chart"
	"bazi/internal/platform/config"
	"bazi/internal/platform/logger"
)

// Deps holds what the API shares with every module. The zero value is
// usable; modules that compute charts check HasEngine.
type Deps struct {
	Log    *logger.Logger
	Cfg    config.Conf
	Engine *chart.Engine
}

// HasEngine reports whether a chart engine was wired
func (d Deps) HasEngine() bool { return d.Engine != nil }

// Logger returns the wired logger tagged with component, or the named root logger
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
