// internal/zone/zone.go
package zone

import "github.com/cncplugins/atci-keepout/internal/geom"

// Source records the most recent cause of an enablement change.
type Source uint8

const (
	SourceStartup Source = iota
	SourceRack
	SourceCommand
	SourceMacro
)

func (s Source) String() string {
	switch s {
	case SourceStartup:
		return "startup"
	case SourceRack:
		return "rack"
	case SourceCommand:
		return "command"
	case SourceMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// State is the runtime zone state. It is never persisted and is rebuilt from
// the stored configuration on every load, save and restore.
type State struct {
	// Bounds is the normalized keepout rectangle: XMin <= XMax, YMin <= YMax
	// always hold here regardless of the stored order.
	Bounds geom.Rect

	// Enabled is independent of the persistent plugin-enabled flag;
	// enforcement is active only when both are set.
	Enabled bool
	Source  Source

	// LastPinState is the last observed rack-presence input (after the
	// active-low inversion).
	LastPinState bool

	// MacroRunning is set between the tool-selected and tool-changed hooks
	// of a tool-change macro.
	MacroRunning bool
}

// Set applies an enablement transition. Last write wins: there is no
// priority between sources. A call that changes neither the flag nor the
// source is a no-op.
func (s *State) Set(enabled bool, src Source) {
	if s.Enabled != enabled || s.Source != src {
		s.Enabled = enabled
		s.Source = src
	}
}

// Rebuild recomputes the normalized bounds cache from raw stored bounds.
func (s *State) Rebuild(raw geom.Rect) {
	s.Bounds = raw.Normalized()
}

// ActiveWith reports whether enforcement is live given the persistent
// plugin-enabled flag.
func (s *State) ActiveWith(pluginEnabled bool) bool {
	return pluginEnabled && s.Enabled
}
