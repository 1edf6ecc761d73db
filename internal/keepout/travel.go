// internal/keepout/travel.go
package keepout

import (
	"github.com/cncplugins/atci-keepout/internal/geom"
	"github.com/cncplugins/atci-keepout/internal/hal"
)

/*
   TOLERANCE BUFFER
   The tool only counts as trapped (blocking ALL movement) when it sits
   deeper than this inside the zone, so a tool parked exactly on the
   boundary is not locked in place.
*/
const Tolerance = 0.5

// Exact message strings expected by UIs.
const (
	msgInsideZone    = "ATCI: You are currently inside the keepout zone. Disable keepout before Jogging to safety"
	msgBlockedAtWall = "ATCI: Jog move blocked at keepout boundary."
	msgCrossing      = "ATCI: Move crosses keepout zone"
	msgTargetInZone  = "ATCI: Target inside region"
)

// startClass is the tolerance classification of the start position.
type startClass struct {
	deepInside        bool // strictly more than Tolerance past every boundary
	technicallyInside bool // within bounds, boundary lines included
}

func (p *Plugin) classify(pt geom.Point) startClass {
	return startClass{
		deepInside:        p.state.Bounds.ContainsInset(pt, Tolerance),
		technicallyInside: p.state.Bounds.Contains(pt),
	}
}

// planeXY extracts the XY components of an axis vector. Hosts may start
// with no position available; the original firmware treated that as origin.
func planeXY(pos hal.Position) geom.Point {
	var pt geom.Point
	if len(pos) > hal.AxisX {
		pt.X = pos[hal.AxisX]
	}
	if len(pos) > hal.AxisY {
		pt.Y = pos[hal.AxisY]
	}
	return pt
}

// checkTravel is the interactive jog validation path. Purely advisory:
// reject and let the operator retry. Moves the zone does not concern itself
// with delegate to the next link.
func (p *Plugin) checkTravel(next hal.TravelCheckFunc) hal.TravelCheckFunc {
	return func(target hal.Position) bool {
		if !p.active() {
			return next(target)
		}

		to := planeXY(target)
		var from geom.Point
		if pos, ok := p.pos.Position(); ok {
			from = planeXY(pos)
		}

		start := p.classify(from)
		targetDeepInside := p.state.Bounds.ContainsInset(to, Tolerance)

		if targetDeepInside {
			// Message context: already in the zone versus about to walk in.
			if start.deepInside || start.technicallyInside {
				p.msg.Message(hal.MessageWarning, msgInsideZone)
			} else {
				p.msg.Message(hal.MessageWarning, msgTargetInZone)
			}
			return false
		}

		if geom.SegmentIntersects(from, to, p.state.Bounds) {
			/*
			   Message priority: when sitting on the line and trying to go
			   deeper, report the inside-zone message so the UI shows the
			   recovery helper rather than a plain crossing warning.
			*/
			if start.deepInside || start.technicallyInside {
				p.msg.Message(hal.MessageWarning, msgInsideZone)
			} else {
				p.msg.Message(hal.MessageWarning, msgCrossing)
			}
			return false
		}

		return next(target)
	}
}

// applyTravel is the planned-motion clamping path. It mutates target in
// place so automated programs get a safe reduced trajectory instead of an
// ungraceful halt; the exception is a tool already trapped deep inside,
// which is blocked outright to prevent deeper penetration.
func (p *Plugin) applyTravel(next hal.TravelApplyFunc) hal.TravelApplyFunc {
	return func(target, position hal.Position) {
		if !p.active() {
			next(target, position)
			return
		}

		from := planeXY(position)
		to := planeXY(target)
		start := p.classify(from)

		// Hard trap: deep inside blocks unconditionally.
		if start.deepInside {
			p.msg.Message(hal.MessageWarning, msgInsideZone)
			copy(target, position)
			return
		}

		targetDeepInside := p.state.Bounds.ContainsInset(to, Tolerance)
		intersects := geom.SegmentIntersects(from, to, p.state.Bounds)

		if targetDeepInside || intersects {
			if start.technicallyInside {
				p.msg.Message(hal.MessageWarning, msgInsideZone)
			} else {
				p.msg.Message(hal.MessageWarning, msgBlockedAtWall)
			}

			if entry, ok := geom.ClipEntry(from, to, p.state.Bounds); ok {
				// Motion proceeds up to the boundary; axes outside the
				// plane keep their commanded values. Short vectors only
				// receive the components they carry.
				if len(target) > hal.AxisX {
					target[hal.AxisX] = entry.X
				}
				if len(target) > hal.AxisY {
					target[hal.AxisY] = entry.Y
				}
			} else {
				// No usable entry point: fall back to blocking.
				copy(target, position)
			}
			return
		}

		next(target, position)
	}
}
