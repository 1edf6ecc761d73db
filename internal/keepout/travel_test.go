// internal/keepout/travel_test.go
package keepout

import (
	"errors"
	"testing"
	"time"

	"github.com/cncplugins/atci-keepout/internal/config"
	"github.com/cncplugins/atci-keepout/internal/hal"
)

// ---- fakes ----

type fakeStore struct {
	data    []byte
	readErr error
	writes  int
}

func (f *fakeStore) Read(p []byte) error {
	if f.readErr != nil {
		return f.readErr
	}
	if len(f.data) != len(p) {
		return errors.New("no record")
	}
	copy(p, f.data)
	return nil
}

func (f *fakeStore) Write(p []byte) error {
	f.data = append([]byte(nil), p...)
	f.writes++
	return nil
}

type fakeMessenger struct {
	warnings []string
	infos    []string
}

func (m *fakeMessenger) Message(kind hal.MessageKind, text string) {
	if kind == hal.MessageWarning {
		m.warnings = append(m.warnings, text)
		return
	}
	m.infos = append(m.infos, text)
}

func (m *fakeMessenger) lastWarning() string {
	if len(m.warnings) == 0 {
		return ""
	}
	return m.warnings[len(m.warnings)-1]
}

type fakePos struct {
	pos hal.Position
	ok  bool
}

func (f *fakePos) Position() (hal.Position, bool) { return f.pos, f.ok }

type fakeSched struct{ armed int }

func (f *fakeSched) Schedule(time.Duration, func()) { f.armed++ }

type fakeInput struct {
	level bool
	err   error
}

func (f *fakeInput) Read() (bool, error) { return f.level, f.err }

type rig struct {
	plugin   *Plugin
	dispatch *hal.Dispatch
	store    *fakeStore
	msg      *fakeMessenger
	pos      *fakePos
	rack     *fakeInput

	checkDelegated bool
	applyDelegated bool
}

// newRig attaches a plugin over a recording terminal handler so delegation
// down the chain is observable. The stored record has the default 10..50
// zone with the plugin persistently enabled, plus any mutation applied.
func newRig(t *testing.T, mutate func(*config.Settings)) *rig {
	t.Helper()

	s := config.Default()
	s.Flags.PluginEnabled = true
	if mutate != nil {
		mutate(&s)
	}

	r := &rig{
		store: &fakeStore{data: config.Marshal(s)},
		msg:   &fakeMessenger{},
		pos:   &fakePos{ok: true, pos: hal.Position{0, 0, 0}},
		rack:  &fakeInput{level: true},
	}

	var err error
	r.plugin, err = New(Deps{
		Store:     r.store,
		Messenger: r.msg,
		Position:  r.pos,
		Scheduler: &fakeSched{},
		Inputs:    sensorInputs(r.rack),
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	r.dispatch = hal.NewDispatch()
	r.dispatch.InterceptTravelCheck(func(next hal.TravelCheckFunc) hal.TravelCheckFunc {
		return func(target hal.Position) bool {
			r.checkDelegated = true
			return next(target)
		}
	})
	r.dispatch.InterceptTravelApply(func(next hal.TravelApplyFunc) hal.TravelApplyFunc {
		return func(target, position hal.Position) {
			r.applyDelegated = true
			next(target, position)
		}
	})

	r.plugin.Attach(r.dispatch, nil)
	return r
}

func (r *rig) at(x, y float64) {
	r.pos.pos = hal.Position{x, y, 0}
	r.pos.ok = true
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

// ---- check path ----

func TestCheck_InactiveDelegates(t *testing.T) {
	r := newRig(t, func(s *config.Settings) { s.Flags.PluginEnabled = false })
	r.at(0, 0)

	if !r.dispatch.CheckTravel(hal.Position{30, 30, 0}) {
		t.Fatalf("inactive enforcement must not reject")
	}
	if !r.checkDelegated {
		t.Fatalf("inactive enforcement must delegate to the next link")
	}
	if len(r.msg.warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", r.msg.warnings)
	}
}

func TestCheck_RuntimeDisabledDelegates(t *testing.T) {
	r := newRig(t, nil)
	r.plugin.SetRuntimeEnabled(false)
	r.at(0, 0)

	if !r.dispatch.CheckTravel(hal.Position{30, 30, 0}) {
		t.Fatalf("runtime-disabled enforcement must not reject")
	}
	if !r.checkDelegated {
		t.Fatalf("expected delegation")
	}
}

func TestCheck_TargetDeepInside_StartOutside(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 0)

	if r.dispatch.CheckTravel(hal.Position{30, 30, 0}) {
		t.Fatalf("target deep inside must be rejected")
	}
	if r.msg.lastWarning() != msgTargetInZone {
		t.Fatalf("want %q, got %q", msgTargetInZone, r.msg.lastWarning())
	}
}

func TestCheck_TargetDeepInside_StartTrapped(t *testing.T) {
	r := newRig(t, nil)
	r.at(30, 30)

	if r.dispatch.CheckTravel(hal.Position{31, 31, 0}) {
		t.Fatalf("move inside the zone must be rejected")
	}
	if r.msg.lastWarning() != msgInsideZone {
		t.Fatalf("want %q, got %q", msgInsideZone, r.msg.lastWarning())
	}
}

func TestCheck_TrapBlocksAnyMove(t *testing.T) {
	r := newRig(t, nil)
	r.at(30, 30) // deep inside

	// even a move straight out of the zone is rejected while trapped
	if r.dispatch.CheckTravel(hal.Position{100, 100, 0}) {
		t.Fatalf("trapped start must reject any move")
	}
	if r.msg.lastWarning() != msgInsideZone {
		t.Fatalf("want %q, got %q", msgInsideZone, r.msg.lastWarning())
	}
}

func TestCheck_CrossingFromOutside(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 30)

	if r.dispatch.CheckTravel(hal.Position{60, 30, 0}) {
		t.Fatalf("crossing move must be rejected")
	}
	if r.msg.lastWarning() != msgCrossing {
		t.Fatalf("want %q, got %q", msgCrossing, r.msg.lastWarning())
	}
}

func TestCheck_OnBoundaryGoingDeeper(t *testing.T) {
	r := newRig(t, nil)
	r.at(10, 30) // technically inside, not deep

	if r.dispatch.CheckTravel(hal.Position{30, 30, 0}) {
		t.Fatalf("move from boundary into the zone must be rejected")
	}
	// touching the boundary surfaces the recovery guidance
	if r.msg.lastWarning() != msgInsideZone {
		t.Fatalf("want %q, got %q", msgInsideZone, r.msg.lastWarning())
	}
}

func TestCheck_HarmlessMoveDelegates(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 0)

	if !r.dispatch.CheckTravel(hal.Position{5, 5, 0}) {
		t.Fatalf("move clear of the zone must pass")
	}
	if !r.checkDelegated {
		t.Fatalf("clear move must delegate to the next link")
	}
	if len(r.msg.warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", r.msg.warnings)
	}
}

func TestCheck_TangentialDepartureAllowed(t *testing.T) {
	r := newRig(t, nil)
	r.at(10, 30) // on the boundary

	if !r.dispatch.CheckTravel(hal.Position{0, 30, 0}) {
		t.Fatalf("moving off the boundary away from the zone must pass")
	}
}

// ---- apply path ----

func TestApply_InactiveDelegates(t *testing.T) {
	r := newRig(t, func(s *config.Settings) { s.Flags.PluginEnabled = false })
	r.at(0, 0)

	target := hal.Position{30, 30, 0}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if !r.applyDelegated {
		t.Fatalf("inactive enforcement must delegate")
	}
	if target[hal.AxisX] != 30 || target[hal.AxisY] != 30 {
		t.Fatalf("inactive enforcement must not touch the target: %v", target)
	}
}

func TestApply_TrappedZeroesMove(t *testing.T) {
	r := newRig(t, nil)
	r.at(30, 30)

	target := hal.Position{100, 100, 9}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if target[hal.AxisX] != 30 || target[hal.AxisY] != 30 || target[2] != 0 {
		t.Fatalf("trapped start must overwrite target with position, got %v", target)
	}
	if r.msg.lastWarning() != msgInsideZone {
		t.Fatalf("want %q, got %q", msgInsideZone, r.msg.lastWarning())
	}
}

func TestApply_ClipsToBoundary(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 0)

	target := hal.Position{30, 30, 7}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if !near(target[hal.AxisX], 10) || !near(target[hal.AxisY], 10) {
		t.Fatalf("expected clip near (10,10), got (%v,%v)", target[0], target[1])
	}
	if target[2] != 7 {
		t.Fatalf("non-planar axis must keep its commanded value, got %v", target[2])
	}
	if r.msg.lastWarning() != msgBlockedAtWall {
		t.Fatalf("want %q, got %q", msgBlockedAtWall, r.msg.lastWarning())
	}
}

func TestApply_BoundaryStartFallsBackToBlock(t *testing.T) {
	r := newRig(t, nil)
	r.at(10, 30) // on boundary: no clip point exists (t0 == 0)

	target := hal.Position{30, 30, 0}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if target[hal.AxisX] != 10 || target[hal.AxisY] != 30 {
		t.Fatalf("expected block at (10,30), got (%v,%v)", target[0], target[1])
	}
	if r.msg.lastWarning() != msgInsideZone {
		t.Fatalf("want %q, got %q", msgInsideZone, r.msg.lastWarning())
	}
}

func TestApply_ShortVectorClipsCarriedAxisOnly(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 30)

	// single-axis host vector: only X is commanded, Y reads as origin
	target := hal.Position{60}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if len(target) != 1 {
		t.Fatalf("target length must be preserved, got %v", target)
	}
	if !near(target[hal.AxisX], 10) {
		t.Fatalf("expected X clipped to 10, got %v", target[hal.AxisX])
	}
	if r.msg.lastWarning() != msgBlockedAtWall {
		t.Fatalf("want %q, got %q", msgBlockedAtWall, r.msg.lastWarning())
	}
}

func TestApply_HarmlessMoveDelegates(t *testing.T) {
	r := newRig(t, nil)
	r.at(0, 0)

	target := hal.Position{5, 5, 0}
	r.dispatch.ApplyTravel(target, r.pos.pos)

	if !r.applyDelegated {
		t.Fatalf("clear move must delegate")
	}
	if target[hal.AxisX] != 5 || target[hal.AxisY] != 5 {
		t.Fatalf("clear move must not be modified: %v", target)
	}
}

func TestApply_GatingIgnoresGeometry(t *testing.T) {
	// enforcement off: even a move dead-center into the zone passes through
	r := newRig(t, func(s *config.Settings) { s.Flags.PluginEnabled = false })
	r.at(30, 30)

	target := hal.Position{40, 40, 0}
	r.dispatch.ApplyTravel(target, r.pos.pos)
	if target[hal.AxisX] != 40 {
		t.Fatalf("gated-off enforcement must have no effect: %v", target)
	}
}
