// internal/report/report.go
package report

import (
	"fmt"
	"io"

	"github.com/cncplugins/atci-keepout/internal/geom"
	"github.com/cncplugins/atci-keepout/internal/sensors"
	"github.com/cncplugins/atci-keepout/internal/zone"
)

// Report fragments appended to the host's reporting channels. Formats are
// protocol-locked: UIs parse these strings.

// eol terminates full report lines; realtime fragments are embedded in the
// host's status line and carry no terminator.
const eol = "\r\n"

// View is everything the reporter reads. It owns none of it.
type View struct {
	Bounds        geom.Rect
	Enabled       bool
	Source        zone.Source
	MonitorRack   bool
	LastPinState  bool
	Sensors       sensors.Snapshot
}

// sourceLetter maps provenance to its realtime flag letter. One distinct
// letter per source: S startup, R rack, M manual (operator command),
// T tool-change macro.
func sourceLetter(s zone.Source) byte {
	switch s {
	case zone.SourceRack:
		return 'R'
	case zone.SourceCommand:
		return 'M'
	case zone.SourceMacro:
		return 'T'
	default:
		return 'S'
	}
}

// Flags builds the ordered realtime flag string. Empty is legal when
// nothing is set (the source letter is always present, so in practice the
// string is never empty; order beyond the source letter: E I B L P Z).
func Flags(v View) string {
	buf := make([]byte, 0, 8)

	buf = append(buf, sourceLetter(v.Source))
	if v.Enabled {
		buf = append(buf, 'E')
	}
	if v.MonitorRack && v.LastPinState {
		buf = append(buf, 'I')
	}
	if v.Sensors.Drawbar {
		buf = append(buf, 'B')
	}
	if v.Sensors.ToolSensor {
		buf = append(buf, 'L')
	}
	if v.Sensors.Pressure {
		buf = append(buf, 'P')
	}
	if v.Sensors.InsideZone {
		buf = append(buf, 'Z')
	}

	return string(buf)
}

// Realtime appends the |ATCI:<flags> fragment to a realtime status report.
func Realtime(w io.Writer, v View) {
	fmt.Fprintf(w, "|ATCI:%s", Flags(v))
}

// Params appends the normalized bounds to the parameter-dump report, fixed
// order max-x, min-x, max-y, min-y, two decimals.
func Params(w io.Writer, bounds geom.Rect) {
	fmt.Fprintf(w, "[ATCI:%.2f,%.2f,%.2f,%.2f]%s",
		bounds.XMax,
		bounds.XMin,
		bounds.YMax,
		bounds.YMin,
		eol)
}

// Plugin appends the plugin identification line to the options report.
func Plugin(w io.Writer, name, version string) {
	fmt.Fprintf(w, "[PLUGIN:%s v%s]%s", name, version, eol)
}
