// internal/config/config.go
package config

import "github.com/cncplugins/atci-keepout/internal/geom"

// Flags are the persistent feature toggles. At rest they pack into one byte.
type Flags struct {
	PluginEnabled       bool
	MonitorRackPresence bool
	MonitorTCMacro      bool
}

// Settings is the persistent plugin record. Bounds are stored verbatim and
// unordered: the min/max relationship is NOT guaranteed at rest; the runtime
// zone cache normalizes on every load/save.
type Settings struct {
	XMin float32
	YMin float32
	XMax float32
	YMax float32

	Flags Flags
}

// ---- DEFAULTS ----

// Default is the fixed factory record: a 10..50mm square, everything off.
// Written whenever the stored record is absent, corrupt or explicitly reset.
func Default() Settings {
	return Settings{
		XMin: 10,
		YMin: 10,
		XMax: 50,
		YMax: 50,
	}
}

// Rect returns the raw (possibly crossed) stored bounds.
func (s Settings) Rect() geom.Rect {
	return geom.Rect{
		XMin: float64(s.XMin),
		YMin: float64(s.YMin),
		XMax: float64(s.XMax),
		YMax: float64(s.YMax),
	}
}
