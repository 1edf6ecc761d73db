// internal/geom/geom_test.go
package geom

import (
	"math"
	"testing"
)

var zone = Rect{XMin: 10, YMin: 10, XMax: 50, YMax: 50}

func TestNormalized_CrossedBounds(t *testing.T) {
	r := Rect{XMin: 50, YMin: 50, XMax: 10, YMax: 10}.Normalized()
	if r.XMin > r.XMax || r.YMin > r.YMax {
		t.Fatalf("bounds not normalized: %+v", r)
	}
	if r != zone {
		t.Fatalf("expected %+v, got %+v", zone, r)
	}
}

func TestNormalized_DegenerateZeroArea(t *testing.T) {
	r := Rect{XMin: 20, YMin: 20, XMax: 20, YMax: 20}.Normalized()
	if r.XMin != 20 || r.XMax != 20 {
		t.Fatalf("degenerate bounds changed: %+v", r)
	}
}

func TestContains_BoundaryCountsAsInside(t *testing.T) {
	if !zone.Contains(Point{X: 10, Y: 30}) {
		t.Fatalf("point on boundary must count as inside")
	}
	if zone.Contains(Point{X: 9.99, Y: 30}) {
		t.Fatalf("point outside must not count as inside")
	}
}

func TestContainsInset_ToleranceBand(t *testing.T) {
	const tol = 0.5

	// on the line: never inset-inside
	if zone.ContainsInset(Point{X: 10, Y: 30}, tol) {
		t.Fatalf("boundary point must not be deep inside")
	}
	// within the tolerance band
	if zone.ContainsInset(Point{X: 10.5, Y: 30}, tol) {
		t.Fatalf("point at exactly tol past boundary must not be deep inside")
	}
	// past the band
	if !zone.ContainsInset(Point{X: 10.6, Y: 30.6}, tol) {
		t.Fatalf("point past tol on every edge must be deep inside")
	}
}

func TestSegmentIntersects_FullyOutside(t *testing.T) {
	if SegmentIntersects(Point{X: 0, Y: 0}, Point{X: 5, Y: 60}, zone) {
		t.Fatalf("segment fully left of the zone must not intersect")
	}
	if SegmentIntersects(Point{X: 0, Y: 60}, Point{X: 60, Y: 60}, zone) {
		t.Fatalf("segment above the zone must not intersect")
	}
}

func TestSegmentIntersects_Crossing(t *testing.T) {
	if !SegmentIntersects(Point{X: 0, Y: 0}, Point{X: 60, Y: 60}, zone) {
		t.Fatalf("diagonal through the zone must intersect")
	}
	if !SegmentIntersects(Point{X: 0, Y: 30}, Point{X: 60, Y: 30}, zone) {
		t.Fatalf("horizontal through the zone must intersect")
	}
}

func TestSegmentIntersects_CornerTouchNotIntersecting(t *testing.T) {
	// x+y=20 touches only the (10,10) corner: zero-length overlap.
	if SegmentIntersects(Point{X: 0, Y: 20}, Point{X: 20, Y: 0}, zone) {
		t.Fatalf("corner touch must not count as intersecting")
	}
}

func TestSegmentIntersects_EndpointOnEdgeNotIntersecting(t *testing.T) {
	// ends exactly on the x=10 edge without crossing it
	if SegmentIntersects(Point{X: 0, Y: 30}, Point{X: 10, Y: 30}, zone) {
		t.Fatalf("segment ending on the boundary must not count as intersecting")
	}
}

func TestSegmentIntersects_TangentialDepartureFromBoundary(t *testing.T) {
	// starting on the boundary and moving away must not be flagged
	if SegmentIntersects(Point{X: 10, Y: 30}, Point{X: 0, Y: 30}, zone) {
		t.Fatalf("departure from the boundary must not count as intersecting")
	}
}

func TestSegmentIntersects_StartInsideAnyMove(t *testing.T) {
	if !SegmentIntersects(Point{X: 30, Y: 30}, Point{X: 100, Y: 100}, zone) {
		t.Fatalf("segment leaving from inside must intersect")
	}
	// zero-length move inside still has a non-empty interval
	if !SegmentIntersects(Point{X: 30, Y: 30}, Point{X: 30, Y: 30}, zone) {
		t.Fatalf("zero-length segment inside must intersect")
	}
}

func TestClipEntry_OnBoundaryLine(t *testing.T) {
	entry, ok := ClipEntry(Point{X: 0, Y: 0}, Point{X: 30, Y: 30}, zone)
	if !ok {
		t.Fatalf("expected a clip point")
	}
	if math.Abs(entry.X-10) > 1e-9 || math.Abs(entry.Y-10) > 1e-9 {
		t.Fatalf("expected entry near (10,10), got (%v,%v)", entry.X, entry.Y)
	}

	onEdge := math.Abs(entry.X-zone.XMin) < 1e-9 || math.Abs(entry.X-zone.XMax) < 1e-9 ||
		math.Abs(entry.Y-zone.YMin) < 1e-9 || math.Abs(entry.Y-zone.YMax) < 1e-9
	if !onEdge {
		t.Fatalf("clip point must lie on a boundary line: (%v,%v)", entry.X, entry.Y)
	}
}

func TestClipEntry_WithinSegmentRange(t *testing.T) {
	a := Point{X: 0, Y: 30}
	b := Point{X: 60, Y: 30}
	entry, ok := ClipEntry(a, b, zone)
	if !ok {
		t.Fatalf("expected a clip point")
	}
	// entry must lie between a and b
	if entry.X < a.X || entry.X > b.X {
		t.Fatalf("clip point outside segment range: %v", entry.X)
	}
	if math.Abs(entry.X-zone.XMin) > 1e-9 {
		t.Fatalf("expected entry on x=%v, got %v", zone.XMin, entry.X)
	}
}

func TestClipEntry_StartInsideReturnsNone(t *testing.T) {
	if _, ok := ClipEntry(Point{X: 30, Y: 30}, Point{X: 60, Y: 60}, zone); ok {
		t.Fatalf("start inside must yield no clip point")
	}
}

func TestClipEntry_StartOnBoundaryReturnsNone(t *testing.T) {
	// t0 == 0: origin already at entry, caller falls back to blocking
	if _, ok := ClipEntry(Point{X: 10, Y: 30}, Point{X: 30, Y: 30}, zone); ok {
		t.Fatalf("start on boundary must yield no clip point")
	}
}

func TestClipEntry_NoCrossingReturnsNone(t *testing.T) {
	if _, ok := ClipEntry(Point{X: 0, Y: 0}, Point{X: 5, Y: 5}, zone); ok {
		t.Fatalf("segment that never reaches the zone must yield no clip point")
	}
}
