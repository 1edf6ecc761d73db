// internal/keepout/plugin.go
package keepout

import (
	"errors"
	"io"

	"github.com/cncplugins/atci-keepout/internal/config"
	"github.com/cncplugins/atci-keepout/internal/hal"
	"github.com/cncplugins/atci-keepout/internal/mcode"
	"github.com/cncplugins/atci-keepout/internal/report"
	"github.com/cncplugins/atci-keepout/internal/sensors"
	"github.com/cncplugins/atci-keepout/internal/zone"
)

const (
	PluginName    = "ATC keepout"
	PluginVersion = "0.4.0"
)

// Plugin is the keepout enforcement core. All of its handlers run on the
// host's single cooperative thread of control: no locks, no blocking.
type Plugin struct {
	store hal.Store
	msg   hal.Messenger
	pos   hal.PositionSource
	sched hal.Scheduler

	inputs sensors.Inputs

	settings config.Settings
	state    zone.State
	poller   *sensors.Poller
}

// Deps are the host collaborators the plugin attaches to.
type Deps struct {
	Store     hal.Store
	Messenger hal.Messenger
	Position  hal.PositionSource
	Scheduler hal.Scheduler
	Inputs    sensors.Inputs
}

func New(d Deps) (*Plugin, error) {
	if d.Store == nil {
		return nil, errors.New("keepout: store required")
	}
	if d.Messenger == nil {
		return nil, errors.New("keepout: messenger required")
	}
	if d.Position == nil {
		return nil, errors.New("keepout: position source required")
	}
	if d.Scheduler == nil {
		return nil, errors.New("keepout: scheduler required")
	}

	p := &Plugin{
		store:  d.Store,
		msg:    d.Messenger,
		pos:    d.Position,
		sched:  d.Scheduler,
		inputs: d.Inputs,
	}
	p.poller = sensors.New(d.Inputs, d.Position, d.Scheduler, &p.settings, &p.state)
	return p, nil
}

// Attach loads settings, hooks every chain on the dispatch table, registers
// the settings entries and arms the poller. Mirrors the startup order of the
// original firmware init: load, travel hooks, M-code chain, reports, tool
// hooks, settings registration, poll arm, init message.
func (p *Plugin) Attach(d *hal.Dispatch, reg hal.SettingRegistry) {
	p.Load()

	d.InterceptTravelCheck(p.checkTravel)
	d.InterceptTravelApply(p.applyTravel)

	d.InterceptMCode(func(next hal.MCodeHandler) hal.MCodeHandler {
		return mcode.New(p, p.msg, next)
	})

	d.InterceptOptionsReport(p.optionsReport)
	d.InterceptRealtimeReport(p.realtimeReport)
	d.InterceptNGCParamsReport(p.paramsReport)

	d.InterceptToolSelected(p.toolSelected)
	d.InterceptToolChanged(p.toolChanged)

	if reg != nil {
		reg.Register(config.Descriptors(), hal.SettingHooks{
			Load:    p.Load,
			Save:    p.Save,
			Restore: p.Restore,
		})
	}

	p.poller.Arm()

	p.msg.Message(hal.MessageInfo, PluginName+" plugin v"+PluginVersion+" initialized")
}

// active reports whether enforcement currently applies: both the persistent
// plugin-enabled flag and the runtime flag must be set.
func (p *Plugin) active() bool {
	return p.state.ActiveWith(p.settings.Flags.PluginEnabled)
}

// Settings returns the current persistent record.
func (p *Plugin) Settings() config.Settings { return p.settings }

// State exposes the runtime zone state for reporters and tests.
func (p *Plugin) State() *zone.State { return &p.state }

// Snapshot returns the poller's last sensor view.
func (p *Plugin) Snapshot() sensors.Snapshot { return p.poller.Snapshot() }

// SetRuntimeEnabled applies an operator-commanded enablement change
// (mcode.Controller).
func (p *Plugin) SetRuntimeEnabled(on bool) {
	p.state.Set(on, zone.SourceCommand)
}

// ---- SETTINGS LIFECYCLE ----

// Load reads the persistent record, restoring defaults when it is absent or
// corrupt, and rebuilds the runtime state. Startup always enables the
// runtime flag regardless of the previous session.
func (p *Plugin) Load() {
	s, err := config.Read(p.store)
	if err != nil {
		p.Restore()
		return
	}
	p.settings = s
	p.state.Rebuild(p.settings.Rect())
	p.state.Set(true, zone.SourceStartup)
	p.state.MacroRunning = false
}

// Save normalizes the runtime bounds cache and writes the record verbatim.
func (p *Plugin) Save() {
	p.state.Rebuild(p.settings.Rect())
	if err := config.Write(p.store, p.settings); err != nil {
		p.msg.Message(hal.MessageWarning, "ATCI: settings write failed")
	}
}

// Restore writes fixed defaults and resets the runtime state.
func (p *Plugin) Restore() {
	p.settings = config.Default()
	p.state.Rebuild(p.settings.Rect())
	p.state.Enabled = true
	p.state.Source = zone.SourceStartup
	p.state.LastPinState = false
	p.state.MacroRunning = false
	if err := config.Write(p.store, p.settings); err != nil {
		p.msg.Message(hal.MessageWarning, "ATCI: settings write failed")
	}
}

// SetBounds updates the stored bounds (settings surface write path) and
// persists immediately.
func (p *Plugin) SetBounds(xMin, yMin, xMax, yMax float32) {
	p.settings.XMin = xMin
	p.settings.YMin = yMin
	p.settings.XMax = xMax
	p.settings.YMax = yMax
	p.Save()
}

// SetFlags updates the persistent flags and persists immediately.
func (p *Plugin) SetFlags(f config.Flags) {
	p.settings.Flags = f
	p.Save()
}

// ---- TOOL CHANGE HOOKS ----

// toolSelected fires when a tool-change macro starts: enforcement is
// force-disabled so automated tool changes are never blocked by the zone.
func (p *Plugin) toolSelected(next hal.ToolHookFunc) hal.ToolHookFunc {
	return func(tool int) {
		if p.settings.Flags.MonitorTCMacro {
			p.state.MacroRunning = true
			p.state.Set(false, zone.SourceMacro)
		}
		next(tool)
	}
}

// toolChanged fires when the macro completes: enablement re-derives from the
// rack sensor's current reading.
func (p *Plugin) toolChanged(next hal.ToolHookFunc) hal.ToolHookFunc {
	return func(tool int) {
		if p.settings.Flags.MonitorTCMacro {
			p.state.MacroRunning = false
			present := rackPresent(p.inputs.Rack)
			p.state.Set(present, zone.SourceRack)
		}
		next(tool)
	}
}

// rackPresent reads the rack-presence input with active-low inversion.
func rackPresent(in hal.DigitalInput) bool {
	if in == nil {
		return false
	}
	level, err := in.Read()
	if err != nil {
		return false
	}
	return !level
}

// ---- REPORT HOOKS ----

func (p *Plugin) view() report.View {
	return report.View{
		Bounds:       p.state.Bounds,
		Enabled:      p.state.Enabled,
		Source:       p.state.Source,
		MonitorRack:  p.settings.Flags.MonitorRackPresence,
		LastPinState: p.state.LastPinState,
		Sensors:      p.poller.Snapshot(),
	}
}

func (p *Plugin) realtimeReport(next hal.ReportFunc) hal.ReportFunc {
	return func(w io.Writer) {
		report.Realtime(w, p.view())
		next(w)
	}
}

func (p *Plugin) paramsReport(next hal.ReportFunc) hal.ReportFunc {
	return func(w io.Writer) {
		report.Params(w, p.state.Bounds)
		next(w)
	}
}

func (p *Plugin) optionsReport(next hal.ReportFunc) hal.ReportFunc {
	return func(w io.Writer) {
		next(w)
		report.Plugin(w, PluginName, PluginVersion)
	}
}
