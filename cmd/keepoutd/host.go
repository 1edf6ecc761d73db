// cmd/keepoutd/host.go
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/cncplugins/atci-keepout/internal/hal"
)

// plannerStub stands in for the host firmware's motion planner. Position is
// unavailable until homed, then advances only through allowed or clamped
// moves, which is exactly what the enforcement core observes on real
// hardware.
type plannerStub struct {
	pos   hal.Position
	homed bool
}

func newPlannerStub(axes int) *plannerStub {
	return &plannerStub{pos: make(hal.Position, axes)}
}

func (p *plannerStub) Position() (hal.Position, bool) {
	if !p.homed {
		return nil, false
	}
	return p.pos, true
}

func (p *plannerStub) home() {
	for i := range p.pos {
		p.pos[i] = 0
	}
	p.homed = true
}

// target returns a copy of the current position with the given axis words
// applied, the shape of a parsed motion block.
func (p *plannerStub) target(words map[int]float64) hal.Position {
	t := make(hal.Position, len(p.pos))
	copy(t, p.pos)
	for axis, v := range words {
		if axis < len(t) {
			t[axis] = v
		}
	}
	return t
}

// logMessenger delivers operator messages through logrus.
type logMessenger struct {
	log *logrus.Logger
}

func (m *logMessenger) Message(kind hal.MessageKind, text string) {
	if kind == hal.MessageWarning {
		m.log.Warn(text)
		return
	}
	m.log.Info(text)
}

// memRegistry is an in-process settings registry: it records the plugin's
// descriptors and hooks so console commands can drive them.
type memRegistry struct {
	settings []hal.SettingDescriptor
	hooks    hal.SettingHooks
}

func (r *memRegistry) Register(settings []hal.SettingDescriptor, hooks hal.SettingHooks) {
	r.settings = settings
	r.hooks = hooks
}
