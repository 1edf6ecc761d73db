// internal/sensors/sensors.go
package sensors

import "github.com/cncplugins/atci-keepout/internal/hal"

// Snapshot holds the last observed sensor states plus the inside-zone
// marker. Owned by the poller, read by the reporter.
type Snapshot struct {
	RackPresent bool
	Drawbar     bool
	ToolSensor  bool
	Pressure    bool

	// InsideZone uses the exact technical containment test, boundary
	// included. NOT the tolerance-buffered tests used by enforcement:
	// sitting at Y0.00 with the zone starting at Y0.00 counts as inside.
	InsideZone bool
}

// Inputs binds the four discrete inputs. All are active-low at the hardware
// boundary; the poller inverts. A nil input reads as not asserted.
type Inputs struct {
	Rack       hal.DigitalInput
	Drawbar    hal.DigitalInput
	ToolSensor hal.DigitalInput
	Pressure   hal.DigitalInput
}

// asserted inverts the active-low level. Read errors degrade to
// not-asserted; the poller retries on the next cycle anyway.
func asserted(in hal.DigitalInput) bool {
	if in == nil {
		return false
	}
	level, err := in.Read()
	if err != nil {
		return false
	}
	return !level
}
