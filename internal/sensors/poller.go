// internal/sensors/poller.go
package sensors

import (
	"time"

	"github.com/cncplugins/atci-keepout/internal/config"
	"github.com/cncplugins/atci-keepout/internal/geom"
	"github.com/cncplugins/atci-keepout/internal/hal"
	"github.com/cncplugins/atci-keepout/internal/zone"
)

// Poll cadence. The rack transition is debounced only by this cadence; no
// additional filtering.
const (
	Period     = 100 * time.Millisecond
	StartDelay = time.Second
)

// Poller is the recurring sensor task. It re-arms itself on the cooperative
// scheduler and runs on the host's single logical thread, so it mutates the
// shared state without locks.
type Poller struct {
	inputs Inputs
	pos    hal.PositionSource
	sched  hal.Scheduler

	settings *config.Settings
	state    *zone.State

	snap Snapshot
}

func New(inputs Inputs, pos hal.PositionSource, sched hal.Scheduler, settings *config.Settings, state *zone.State) *Poller {
	return &Poller{
		inputs:   inputs,
		pos:      pos,
		sched:    sched,
		settings: settings,
		state:    state,
	}
}

// Arm schedules the first poll after the startup delay. The task then
// re-arms itself indefinitely; disabling rack monitoring only suppresses the
// rack branch, the auxiliary sensors keep being serviced.
func (p *Poller) Arm() {
	p.sched.Schedule(StartDelay, p.poll)
}

// Snapshot returns the last completed cycle's view.
func (p *Poller) Snapshot() Snapshot {
	return p.snap
}

func (p *Poller) poll() {
	p.PollOnce()
	p.sched.Schedule(Period, p.poll)
}

// PollOnce performs exactly one poll cycle without re-arming. Split out for
// tests and for hosts that drive the cadence themselves.
func (p *Poller) PollOnce() {
	if p.settings.Flags.MonitorRackPresence {
		present := asserted(p.inputs.Rack)
		if present != p.state.LastPinState {
			p.state.LastPinState = present
			p.state.Set(present, zone.SourceRack)
		}
		p.snap.RackPresent = present
	}

	p.snap.Drawbar = asserted(p.inputs.Drawbar)
	p.snap.ToolSensor = asserted(p.inputs.ToolSensor)
	p.snap.Pressure = asserted(p.inputs.Pressure)

	pos, ok := p.pos.Position()
	if ok && len(pos) > hal.AxisY {
		p.snap.InsideZone = p.state.Bounds.Contains(geom.Point{
			X: pos[hal.AxisX],
			Y: pos[hal.AxisY],
		})
	} else {
		// no position available: cannot be inside
		p.snap.InsideZone = false
	}
}
