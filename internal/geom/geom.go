// internal/geom/geom.go
package geom

// Pure 2D segment-vs-rectangle math. No state, no IO.

// Point is a position in the XY work plane.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Callers that need the min/max invariant
// must go through Normalized; stored bounds are allowed to be crossed.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// Normalized returns the rectangle with XMin <= XMax and YMin <= YMax.
func (r Rect) Normalized() Rect {
	if r.XMin > r.XMax {
		r.XMin, r.XMax = r.XMax, r.XMin
	}
	if r.YMin > r.YMax {
		r.YMin, r.YMax = r.YMax, r.YMin
	}
	return r
}

// Contains reports whether p is inside the rectangle, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax &&
		p.Y >= r.YMin && p.Y <= r.YMax
}

// ContainsInset reports whether p is strictly more than inset past every
// boundary. With a positive inset a point on or near an edge does not count.
func (r Rect) ContainsInset(p Point, inset float64) bool {
	return p.X > r.XMin+inset && p.X < r.XMax-inset &&
		p.Y > r.YMin+inset && p.Y < r.YMax-inset
}

// clipParams runs the Liang-Barsky half-plane walk for the segment a->b.
// It maintains the admissible parameter interval [t0,t1], starting at [0,1].
// ok is false when a half-plane rejects the segment outright (parallel to an
// edge and outside it, or the interval collapses past its ends).
func clipParams(a, b Point, r Rect) (t0, t1 float64, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	t0, t1 = 0, 1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - r.XMin, r.XMax - a.X, a.Y - r.YMin, r.YMax - a.Y}

	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			// entering across this edge
			if t > t1 {
				return 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			// leaving across this edge
			if t < t0 {
				return 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return t0, t1, true
}

// SegmentIntersects reports whether the segment a->b passes through the
// rectangle. Strict inequality on the interval means a segment that only
// touches the boundary (t0 == t1) is NOT an intersection, so a move starting
// exactly on an edge and leaving tangentially is not flagged.
func SegmentIntersects(a, b Point, r Rect) bool {
	t0, t1, ok := clipParams(a, b, r)
	return ok && t0 < t1
}

// ClipEntry returns the first boundary crossing along the segment a->b.
// When the admissible interval's entry point satisfies t0 > 0 the crossing
// lies strictly inside the segment and is returned. t0 <= 0 means a is
// already at or past entry (starting inside): no clip point exists and the
// caller must fall back to blocking.
func ClipEntry(a, b Point, r Rect) (Point, bool) {
	t0, _, ok := clipParams(a, b, r)
	if !ok || t0 <= 0 {
		return Point{}, false
	}
	return Point{
		X: a.X + t0*(b.X-a.X),
		Y: a.Y + t0*(b.Y-a.Y),
	}, true
}
